// Package confluence provides a ContentClient for the Confluence REST API.
package confluence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/custodia-labs/confrep/internal/core/domain"
	"github.com/custodia-labs/confrep/internal/core/ports/driven"
	"github.com/custodia-labs/confrep/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.ContentClient = (*Client)(nil)

// Default configuration values.
const (
	DefaultTimeout   = domain.DefaultTimeout
	DefaultRateLimit = domain.DefaultRateLimit
)

// Config holds configuration for the Confluence client.
type Config struct {
	// BaseURL is the site root, e.g. https://example.atlassian.net/wiki.
	BaseURL string

	Username string
	APIToken string

	// Timeout bounds each request (default: 30s).
	Timeout time.Duration

	// RateLimit is the maximum requests per second (default: 5).
	RateLimit float64

	// HTTPClient overrides the client built from Timeout. Optional.
	HTTPClient *http.Client
}

// ConfigFromSettings builds a client configuration from application settings.
func ConfigFromSettings(s domain.ConfluenceSettings) Config {
	return Config{
		BaseURL:   s.BaseURL,
		Username:  s.Username,
		APIToken:  s.APIToken,
		Timeout:   s.Timeout,
		RateLimit: s.RateLimit,
	}
}

// Client talks to the Confluence content API. It never retries.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	username    string
	apiToken    string
	rateLimiter *RateLimiter
}

// NewClient creates a Confluence client. All credentials must be present.
func NewClient(cfg Config) (*Client, error) {
	creds := domain.Credentials{BaseURL: cfg.BaseURL, Username: cfg.Username, APIToken: cfg.APIToken}
	if !creds.IsComplete() {
		return nil, fmt.Errorf("confluence credentials: %w", domain.ErrNotConfigured)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = DefaultRateLimit
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		username:    cfg.Username,
		apiToken:    cfg.APIToken,
		rateLimiter: NewRateLimiter(cfg.RateLimit),
	}, nil
}

// PageURL returns the browser URL for a page.
func (c *Client) PageURL(id string) string {
	return c.baseURL + "/pages/viewpage.action?pageId=" + url.QueryEscape(id)
}

// Create makes a new page in space. parentID may be empty.
func (c *Client) Create(ctx context.Context, space, title, parentID, body string) (*domain.RemotePage, error) {
	payload := contentRequest{
		Type:  contentTypePage,
		Title: title,
		Space: &spaceRef{Key: space},
		Body:  newStorageBody(body),
	}
	if parentID != "" {
		payload.Ancestors = []ancestor{{ID: parentID}}
	}

	var out content
	resp, err := c.do(ctx, http.MethodPost, contentPath, nil, payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, c.remoteError("create page", resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	page := out.toDomain()
	if page.SpaceKey == "" {
		page.SpaceKey = space
	}
	if page.ParentID == "" {
		page.ParentID = parentID
	}
	logger.Debug("confluence: created page %s (%q) in %s", page.ID, page.Title, page.SpaceKey)
	return page, nil
}

// Get retrieves a page with its body and current version.
func (c *Client) Get(ctx context.Context, id string) (*domain.RemotePage, error) {
	query := url.Values{"expand": {expandPage}}
	resp, err := c.do(ctx, http.MethodGet, pagePath(id), query, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, &domain.NotFoundError{ID: id, Remote: c.remoteError("get page", resp)}
	default:
		return nil, c.remoteError("get page", resp)
	}

	var out content
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return out.toDomain(), nil
}

// Update replaces title and body, submitting currentVersion+1.
func (c *Client) Update(ctx context.Context, id, title, body string, currentVersion int) (*domain.RemotePage, error) {
	payload := contentRequest{
		ID:      id,
		Type:    contentTypePage,
		Title:   title,
		Body:    newStorageBody(body),
		Version: &version{Number: currentVersion + 1},
	}

	resp, err := c.do(ctx, http.MethodPut, pagePath(id), nil, payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, &domain.NotFoundError{ID: id, Remote: c.remoteError("update page", resp)}
	case http.StatusConflict:
		return nil, &domain.ConflictError{ID: id, Version: currentVersion, Remote: c.remoteError("update page", resp)}
	default:
		return nil, c.remoteError("update page", resp)
	}

	var out content
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	page := out.toDomain()
	if page.Body == "" {
		page.Body = body
	}
	logger.Debug("confluence: updated page %s to version %d", page.ID, page.Version)
	return page, nil
}

// Delete removes a page and returns the raw HTTP status code.
func (c *Client) Delete(ctx context.Context, id string) (int, error) {
	resp, err := c.do(ctx, http.MethodDelete, pagePath(id), nil, nil)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	logger.Debug("confluence: delete page %s returned %d", id, resp.StatusCode)
	return resp.StatusCode, nil
}

// FindByTitle looks up a page by exact title within a space.
func (c *Client) FindByTitle(ctx context.Context, space, title string) (*domain.RemotePage, error) {
	query := url.Values{
		"spaceKey": {space},
		"title":    {title},
		"type":     {contentTypePage},
		"expand":   {expandLookup},
		"limit":    {searchLimit},
	}
	resp, err := c.do(ctx, http.MethodGet, contentPath, query, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		rErr := c.remoteError("find page", resp)
		if resp.StatusCode == http.StatusNotFound {
			return nil, &domain.NotFoundError{ID: space + "/" + title, Remote: rErr}
		}
		return nil, rErr
	}

	var out contentList
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(out.Results) == 0 {
		return nil, &domain.NotFoundError{ID: space + "/" + title}
	}

	page := out.Results[0].toDomain()
	if page.SpaceKey == "" {
		page.SpaceKey = space
	}
	return page, nil
}

// do sends one request. Network failures are returned as
// *domain.TransportError; any HTTP response is returned to the caller.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any) (*http.Response, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.username, c.apiToken)
	req.Header.Set(headerAccept, mediaTypeJSON)
	if payload != nil {
		req.Header.Set(headerContentType, mediaTypeJSON)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, &domain.TransportError{Op: method, URL: endpoint, Err: err}
	}

	logger.Debug("confluence: %s %s", method, endpoint)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Op: method, URL: endpoint, Err: err}
	}
	return resp, nil
}

// remoteError builds a RemoteError from a non-success response.
func (c *Client) remoteError(op string, resp *http.Response) *domain.RemoteError {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	return &domain.RemoteError{
		Op:         op,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(data)),
		RetryAfter: c.rateLimiter.Observe(resp),
	}
}

func pagePath(id string) string {
	return contentPath + "/" + url.PathEscape(id)
}
