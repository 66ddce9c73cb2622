package driven

import (
	"context"

	"github.com/custodia-labs/confrep/internal/core/domain"
)

// ContentClient performs remote operations on pages.
// Each call is a single blocking request; implementations never retry.
//
// Errors follow the domain taxonomy: *domain.TransportError for network
// failures, *domain.NotFoundError, *domain.ConflictError, and
// *domain.RemoteError for any other non-success status.
type ContentClient interface {
	// Create makes a new page in space. parentID may be empty.
	Create(ctx context.Context, space, title, parentID, body string) (*domain.RemotePage, error)

	// Get retrieves a page with its body and current version.
	Get(ctx context.Context, id string) (*domain.RemotePage, error)

	// Update replaces title and body, submitting currentVersion+1.
	// Returns *domain.ConflictError if currentVersion is stale.
	Update(ctx context.Context, id, title, body string, currentVersion int) (*domain.RemotePage, error)

	// Delete removes a page and returns the raw HTTP status code.
	// Only transport failures produce an error.
	Delete(ctx context.Context, id string) (int, error)

	// FindByTitle looks up a page by exact title within a space.
	// Returns *domain.NotFoundError when no page matches.
	FindByTitle(ctx context.Context, space, title string) (*domain.RemotePage, error)
}
