package domain

import (
	"strings"
	"time"
)

// RemotePage is a page on the remote content platform.
type RemotePage struct {
	// ID is the stable platform identifier.
	ID string

	// SpaceKey identifies the space holding the page.
	SpaceKey string

	Title string

	// Version is incremented by the remote on every successful update.
	// An update must be based on the latest value or it is rejected.
	Version int

	// Body is the page content in storage format.
	// Empty when the remote did not return it.
	Body string

	// ParentID is the id of the parent page, if known.
	ParentID string
}

// Credentials holds what one content client needs to reach the remote API.
// The client owns its copy for its lifetime and never persists it.
type Credentials struct {
	// BaseURL is the site root, e.g. https://example.atlassian.net/wiki.
	BaseURL string

	Username string

	// APIToken is used as the basic-auth password.
	APIToken string
}

// IsComplete returns true if every field is set.
func (c Credentials) IsComplete() bool {
	return strings.TrimSpace(c.BaseURL) != "" &&
		strings.TrimSpace(c.Username) != "" &&
		strings.TrimSpace(c.APIToken) != ""
}

// ConfluenceSettings is the connection and placement configuration.
type ConfluenceSettings struct {
	Credentials

	// Space is the default space key for new pages.
	Space string

	// ParentID is the default parent page for new pages. Optional.
	ParentID string

	// Timeout bounds each HTTP request.
	Timeout time.Duration

	// RateLimit is the maximum requests per second sent to the remote.
	RateLimit float64
}

// Default connection values.
const (
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5.0
)

// Settings aggregates all configuration for the application.
type Settings struct {
	Confluence ConfluenceSettings

	// GitHubToken authenticates pull-request table sources. Optional.
	GitHubToken string

	// GoogleAPIKey authenticates Google Sheets table sources. Optional.
	GoogleAPIKey string
}

// DefaultSettings returns settings with defaults applied.
func DefaultSettings() Settings {
	return Settings{
		Confluence: ConfluenceSettings{
			Timeout:   DefaultTimeout,
			RateLimit: DefaultRateLimit,
		},
	}
}
