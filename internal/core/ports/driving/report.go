package driving

import (
	"context"

	"github.com/custodia-labs/confrep/internal/core/domain"
)

// ReportService builds report bodies from content units and publishes them.
type ReportService interface {
	// Render emits every unit in order and validates the concatenation.
	// It performs no network I/O.
	Render(units []domain.ContentUnit) (string, error)

	// Publish creates a page, or updates an existing page with the same
	// title according to the request's overwrite policy.
	Publish(ctx context.Context, req PublishRequest) (*domain.PublishResult, error)

	// Update re-fetches a page and replaces or appends to its body.
	Update(ctx context.Context, req UpdateRequest) (*domain.PublishResult, error)

	// Get retrieves a page with body and version.
	Get(ctx context.Context, pageID string) (*domain.RemotePage, error)

	// Delete removes a page and returns the raw status code.
	Delete(ctx context.Context, pageID string) (int, error)
}

// PublishRequest describes a create-or-overwrite workflow.
type PublishRequest struct {
	Space    string
	Title    string
	ParentID string

	Units []domain.ContentUnit

	// Body is pre-rendered storage markup appended after Units.
	// Used by callers that already hold markup (e.g. a file).
	Body string

	// Policy applies when a page with Title already exists.
	Policy domain.OverwritePolicy

	// Decide is consulted when Policy is AskCaller.
	Decide domain.DecisionFunc

	// Mode selects replace or append when overwriting. Defaults to replace.
	Mode domain.UpdateMode
}

// UpdateRequest describes an update of a known page.
type UpdateRequest struct {
	PageID string

	// Title renames the page when set. Otherwise the current title is kept.
	Title string

	Units []domain.ContentUnit
	Body  string

	// Mode defaults to append.
	Mode domain.UpdateMode
}
