package github

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/confrep/internal/core/domain"
	"github.com/custodia-labs/confrep/internal/core/ports/driven"
	"github.com/custodia-labs/confrep/internal/logger"
	"github.com/custodia-labs/confrep/internal/markup"
)

// Ensure PullRequestSource implements the interface.
var _ driven.PullRequestSource = (*PullRequestSource)(nil)

// mergedDateLayout formats the Merged column.
const mergedDateLayout = "2006-01-02"

// PullRequestColumns is the header of a merged pull-request table.
var PullRequestColumns = []string{"PR", "Title", "Author", "Merged"}

// PullRequestSource renders merged pull requests as report tables.
type PullRequestSource struct {
	client *Client
}

// NewPullRequestSource creates a source backed by client.
func NewPullRequestSource(client *Client) *PullRequestSource {
	return &PullRequestSource{client: client}
}

// MergedPullRequests lists pull requests merged into query.Base since
// query.Since, newest first. The PR cell is a hyperlink; text cells are
// escaped because table cells are emitted verbatim.
func (s *PullRequestSource) MergedPullRequests(
	ctx context.Context, query driven.PullRequestQuery,
) (*domain.Table, error) {
	if strings.TrimSpace(query.Owner) == "" || strings.TrimSpace(query.Repo) == "" {
		return nil, ErrInvalidQuery
	}

	opts := &gh.PullRequestListOptions{
		State:     "closed",
		Base:      query.Base,
		Sort:      "updated",
		Direction: "desc",
		ListOptions: gh.ListOptions{
			PerPage: pageSize,
		},
	}

	// Pages are sorted by update time and a merge always precedes the
	// last update, so paging stops once a page ends before Since.
	var done func([]*gh.PullRequest) bool
	if !query.Since.IsZero() {
		done = func(page []*gh.PullRequest) bool {
			if len(page) == 0 {
				return true
			}
			return page[len(page)-1].GetUpdatedAt().Time.Before(query.Since)
		}
	}

	prs, err := s.client.ListPullRequests(ctx, query.Owner, query.Repo, opts, done)
	if err != nil {
		return nil, fmt.Errorf("list pull requests: %w", err)
	}
	if q := s.client.Quota(); q.Limit > 0 {
		logger.Debug("GitHub quota: %d of %d left", q.Remaining, q.Limit)
	}

	table := &domain.Table{
		Title:  fmt.Sprintf("Merged pull requests: %s/%s", query.Owner, query.Repo),
		Header: PullRequestColumns,
		Rows:   make([][]string, 0, len(prs)),
	}
	if query.Base != "" {
		table.Title += " (" + query.Base + ")"
	}

	for _, pr := range prs {
		if pr.MergedAt == nil {
			continue
		}
		merged := pr.GetMergedAt().Time
		if !query.Since.IsZero() && merged.Before(query.Since) {
			continue
		}
		table.Rows = append(table.Rows, pullRequestRow(pr))
	}

	return table, nil
}

// pullRequestRow builds one table row.
func pullRequestRow(pr *gh.PullRequest) []string {
	number := "#" + strconv.Itoa(pr.GetNumber())
	link := number
	if u := pr.GetHTMLURL(); u != "" {
		link = fmt.Sprintf(`<a href="%s">%s</a>`, markup.EscapeText(u), number)
	}
	return []string{
		link,
		markup.EscapeText(pr.GetTitle()),
		markup.EscapeText(pr.GetUser().GetLogin()),
		pr.GetMergedAt().Format(mergedDateLayout),
	}
}
