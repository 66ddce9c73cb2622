package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/confrep/internal/core/domain"
)

// PullRequestQuery selects merged pull requests for a report table.
type PullRequestQuery struct {
	Owner string
	Repo  string

	// Base is the branch the pull requests were merged into. Empty means any.
	Base string

	// Since excludes pull requests merged before this time.
	Since time.Time
}

// PullRequestSource produces a table of merged pull requests.
type PullRequestSource interface {
	MergedPullRequests(ctx context.Context, query PullRequestQuery) (*domain.Table, error)
}

// SheetSource produces a table from a spreadsheet range.
type SheetSource interface {
	// ReadRange reads an A1-notation range. When header is true the first
	// row becomes the table header.
	ReadRange(ctx context.Context, spreadsheetID, readRange string, header bool) (*domain.Table, error)
}
