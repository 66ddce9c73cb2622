package reportdef

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/confrep/internal/connectors/filesystem"
	"github.com/custodia-labs/confrep/internal/core/domain"
	"github.com/custodia-labs/confrep/internal/core/ports/driven"
	"github.com/custodia-labs/confrep/internal/logger"
)

// Resolver turns definition blocks into content units, pulling tables and
// images from their sources.
type Resolver struct {
	// Sheets serves blocks with a sheet reference. Optional.
	Sheets driven.SheetSource

	// PullRequests serves blocks with a pull_requests reference. Optional.
	PullRequests driven.PullRequestSource
}

// Units resolves every block of def in order.
func (r *Resolver) Units(ctx context.Context, def *Definition) ([]domain.ContentUnit, error) {
	return r.blocks(ctx, def.dir, def.Blocks, "block")
}

func (r *Resolver) blocks(ctx context.Context, dir string, blocks []Block, path string) ([]domain.ContentUnit, error) {
	units := make([]domain.ContentUnit, 0, len(blocks))
	for i := range blocks {
		where := fmt.Sprintf("%s[%d]", path, i)
		unit, err := r.block(ctx, dir, &blocks[i], where)
		if err != nil {
			return nil, fmt.Errorf("%s (%s): %w", where, blocks[i].Kind, err)
		}
		units = append(units, unit)
	}
	return units, nil
}

//nolint:gocyclo // One case per block kind.
func (r *Resolver) block(ctx context.Context, dir string, b *Block, where string) (domain.ContentUnit, error) {
	switch domain.UnitKind(b.Kind) {
	case domain.KindHeading:
		return domain.Heading{Level: orDefault(b.Level, 1), Text: b.Text}, nil
	case domain.KindParagraph:
		return domain.Paragraph{Text: b.Text}, nil
	case domain.KindList:
		style := domain.ListBullet
		if b.Numbered {
			style = domain.ListNumbered
		}
		return domain.List{Style: style, Items: b.Items}, nil
	case domain.KindTable:
		return r.table(ctx, dir, b)
	case domain.KindImage:
		img, err := filesystem.ReadImage(filesystem.ResolvePath(b.Path, dir), b.Title)
		if err != nil {
			return nil, err
		}
		img.TitleLevel = b.TitleLevel
		img.Alt = b.Alt
		return *img, nil
	case domain.KindStatus:
		return domain.Status{Text: b.Text, Colour: domain.StatusColour(b.Colour), Subtle: b.Subtle}, nil
	case domain.KindMessage:
		return domain.Message{Type: domain.MessageType(b.Type), Title: b.Title, Body: b.Text}, nil
	case domain.KindMention:
		return domain.Mention{AccountID: b.Account}, nil
	case domain.KindLink:
		return domain.Link{URL: b.URL, Text: b.Text, PageTitle: b.Page, SpaceKey: b.SpaceKey}, nil
	case domain.KindActionItem:
		due, err := parseDate(b.Due)
		if err != nil {
			return nil, err
		}
		return domain.ActionItem{Assignee: b.Account, Due: due, Description: b.Text, Done: b.Done}, nil
	case domain.KindDecision:
		date, err := parseDate(b.Date)
		if err != nil {
			return nil, err
		}
		return domain.Decision{Text: b.Text, Date: date}, nil
	case domain.KindCodeSnippet:
		return domain.CodeSnippet{Language: b.Language, Title: b.Title, Code: b.Code, LineNumbers: b.LineNumbers}, nil
	case domain.KindTableOfContents:
		return domain.TableOfContents{MinLevel: b.MinLevel, MaxLevel: b.MaxLevel}, nil
	case domain.KindChildPagesList:
		return domain.ChildPagesList{Depth: b.Depth, Sort: b.Sort, All: b.All}, nil
	case domain.KindTaskReport:
		return domain.TaskReport{
			Spaces: b.Spaces, Labels: b.Labels, Assignees: b.Assignees,
			Status: b.State, PageSize: b.PageSize,
		}, nil
	case domain.KindPagePropertiesReport:
		return domain.PagePropertiesReport{
			CQL: b.CQL, Headings: b.Headings, FirstColumn: b.FirstColumn, SortBy: b.SortBy,
		}, nil
	case domain.KindChangeHistory:
		return domain.ChangeHistory{Limit: b.Limit}, nil
	case domain.KindContributionsSummary:
		return domain.ContributionsSummary{
			GroupBy: b.GroupBy, Columns: b.Columns, Order: b.Order,
			Limit: b.Limit, Spaces: b.Spaces, Labels: b.Labels,
		}, nil
	case domain.KindIframe:
		return domain.Iframe{URL: b.URL, Width: b.Width, Height: b.Height, Border: b.Border, Scrolling: b.Scrolling}, nil
	case domain.KindDivider:
		return domain.Divider{}, nil
	case domain.KindQuote:
		return domain.Quote{Text: b.Text}, nil
	case domain.KindDate:
		date, err := parseDate(b.Date)
		if err != nil {
			return nil, err
		}
		return domain.Date{Value: date}, nil
	case domain.KindAnchor:
		return domain.Anchor{Name: b.Name}, nil
	case domain.KindEmoticon:
		return domain.Emoticon{Name: b.Name}, nil
	case domain.KindMarkdown:
		return domain.Markdown{Source: b.Text}, nil
	case domain.KindJiraIssues:
		return domain.JiraIssues{JQL: b.JQL, ServerID: b.ServerID, Columns: b.Columns, MaxIssues: b.MaxIssues}, nil
	case domain.KindExpand:
		body, err := r.blocks(ctx, dir, b.Blocks, where+".block")
		if err != nil {
			return nil, err
		}
		return domain.Expand{Title: b.Title, Body: body}, nil
	case domain.KindLayout:
		return r.layout(ctx, dir, b, where)
	default:
		return nil, fmt.Errorf("%w: block kind %q", domain.ErrUnsupportedType, b.Kind)
	}
}

// table loads a table from whichever source the block names.
func (r *Resolver) table(ctx context.Context, dir string, b *Block) (domain.ContentUnit, error) {
	var (
		table *domain.Table
		err   error
	)

	switch {
	case len(b.Rows) > 0:
		table = &domain.Table{Header: b.Columns, Rows: b.Rows}
	case b.CSV != "":
		table, err = filesystem.ReadCSV(filesystem.ResolvePath(b.CSV, dir), b.Header)
	case b.Sheet != nil:
		if r.Sheets == nil {
			return nil, fmt.Errorf("%w: google.api_key is required for sheet tables", domain.ErrNotConfigured)
		}
		logger.Debug("reading sheet %s range %s", b.Sheet.SpreadsheetID, b.Sheet.Range)
		table, err = r.Sheets.ReadRange(ctx, b.Sheet.SpreadsheetID, b.Sheet.Range, b.Sheet.Header)
	case b.PullRequests != nil:
		if r.PullRequests == nil {
			return nil, fmt.Errorf("%w: github.token is required for pull request tables", domain.ErrNotConfigured)
		}
		var since time.Time
		if since, err = parseDate(b.PullRequests.Since); err != nil {
			return nil, err
		}
		logger.Debug("listing merged pull requests for %s/%s", b.PullRequests.Owner, b.PullRequests.Repo)
		table, err = r.PullRequests.MergedPullRequests(ctx, driven.PullRequestQuery{
			Owner: b.PullRequests.Owner,
			Repo:  b.PullRequests.Repo,
			Base:  b.PullRequests.Base,
			Since: since,
		})
	default:
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, errTableSource)
	}
	if err != nil {
		return nil, err
	}

	// The block's title and columns override whatever the source produced.
	if b.Title != "" {
		table.Title = b.Title
	}
	if len(b.Columns) > 0 {
		table.Header = b.Columns
	}
	table.TitleLevel = b.TitleLevel
	return *table, nil
}

func (r *Resolver) layout(ctx context.Context, dir string, b *Block, where string) (domain.ContentUnit, error) {
	layout := domain.Layout{Sections: make([]domain.LayoutSection, 0, len(b.Sections))}
	for i, s := range b.Sections {
		section := domain.LayoutSection{
			Type:  domain.LayoutType(s.Type),
			Cells: make([][]domain.ContentUnit, 0, len(s.Cells)),
		}
		for j, c := range s.Cells {
			units, err := r.blocks(ctx, dir, c.Blocks, fmt.Sprintf("%s.section[%d].cell[%d].block", where, i, j))
			if err != nil {
				return nil, err
			}
			section.Cells = append(section.Cells, units)
		}
		layout.Sections = append(layout.Sections, section)
	}
	return layout, nil
}

// parseDate parses an optional YYYY-MM-DD date. Empty yields the zero time.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q: %w", domain.ErrInvalidInput, s, err)
	}
	return t, nil
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
