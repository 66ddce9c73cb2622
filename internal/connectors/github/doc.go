// Package github produces report tables from GitHub repositories.
//
// # Pull requests
//
// [PullRequestSource] lists pull requests merged into a base branch since a
// given date and renders them as a table with columns PR, Title, Author and
// Merged. The PR column links to the pull request on github.com.
//
// # Authentication
//
// Personal access tokens and OAuth access tokens are both accepted through
// [NewClientWithToken]. Public repositories work with any valid token;
// private repositories need the 'repo' scope.
//
// # Rate limiting
//
// Requests are throttled proactively at [ProactiveRate] per second and
// pause until the reported reset time when fewer than [MinBuffer] requests
// remain in the hourly quota.
package github
