package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// pageSize is the number of pull requests requested per page.
	pageSize = 100
)

// Client wraps the go-github client with request pacing.
type Client struct {
	gh       *gh.Client
	throttle *throttle
}

// NewClientWithToken creates a GitHub client with a static access token.
// Works for both PAT and OAuth access tokens.
func NewClientWithToken(ctx context.Context, token string) *Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout

	return &Client{
		gh:       gh.NewClient(tc),
		throttle: newThrottle(),
	}
}

// NewClientWithHTTPClient creates a GitHub client with a custom http.Client.
func NewClientWithHTTPClient(httpClient *http.Client) *Client {
	return &Client{
		gh:       gh.NewClient(httpClient),
		throttle: newThrottle(),
	}
}

// ListPullRequests lists pull requests for a repository, following pages
// until done reports true for a page or the listing is exhausted.
func (c *Client) ListPullRequests(
	ctx context.Context, owner, repo string, opts *gh.PullRequestListOptions,
	done func(page []*gh.PullRequest) bool,
) ([]*gh.PullRequest, error) {
	var allPRs []*gh.PullRequest

	for {
		select {
		case <-ctx.Done():
			return allPRs, ctx.Err()
		default:
		}

		if err := c.throttle.wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		prs, resp, err := c.gh.PullRequests.List(ctx, owner, repo, opts)
		if err != nil {
			return nil, c.wrapError(err, "list pull requests")
		}

		c.throttle.observe(resp)
		allPRs = append(allPRs, prs...)

		if resp.NextPage == 0 || (done != nil && done(prs)) {
			break
		}
		opts.Page = resp.NextPage
	}

	return allPRs, nil
}

// Quota returns the allowance reported by the most recent response.
func (c *Client) Quota() Quota {
	return c.throttle.snapshot()
}

// wrapError converts go-github errors to our error types.
func (c *Client) wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   rateLimitErr.Rate.Reset.Time,
			Remaining: rateLimitErr.Rate.Remaining,
			Limit:     rateLimitErr.Rate.Limit,
		}
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		apiErr := &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
		}
		if ghErr.Response.Request != nil && ghErr.Response.Request.URL != nil {
			apiErr.URL = ghErr.Response.Request.URL.String()
		}
		return apiErr
	}

	return fmt.Errorf("%s: %w", operation, err)
}
