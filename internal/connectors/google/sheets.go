package google

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/custodia-labs/confrep/internal/core/domain"
	"github.com/custodia-labs/confrep/internal/core/ports/driven"
	"github.com/custodia-labs/confrep/internal/markup"
)

// Ensure SheetSource implements the interface.
var _ driven.SheetSource = (*SheetSource)(nil)

// SheetSource reads spreadsheet ranges into report tables.
type SheetSource struct {
	svc   *sheets.Service
	pacer *pacer
}

// NewSheetsService creates a Sheets API service authenticated with an API
// key. Extra options are appended, so tests can override the endpoint and
// HTTP client.
func NewSheetsService(ctx context.Context, apiKey string, opts ...option.ClientOption) (*sheets.Service, error) {
	all := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := sheets.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return svc, nil
}

// NewSheetSource wraps a Sheets API service.
func NewSheetSource(svc *sheets.Service) *SheetSource {
	return &SheetSource{
		svc:   svc,
		pacer: newPacer(),
	}
}

// ReadRange reads an A1-notation range. When header is true the first row
// becomes the table header. Short rows are padded to the widest row since
// the API omits trailing empty cells. Values are escaped because table
// cells are emitted verbatim.
func (s *SheetSource) ReadRange(
	ctx context.Context, spreadsheetID, readRange string, header bool,
) (*domain.Table, error) {
	if strings.TrimSpace(spreadsheetID) == "" || strings.TrimSpace(readRange) == "" {
		return nil, fmt.Errorf("%w: spreadsheet id and range are required", domain.ErrInvalidInput)
	}

	if err := s.pacer.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	resp, err := s.svc.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		s.pacer.backoff(err)
		return nil, fmt.Errorf("read range %s: %w", readRange, WrapError(err))
	}

	rows := toCells(resp.Values)

	table := &domain.Table{}
	if header && len(rows) > 0 {
		table.Header = rows[0]
		rows = rows[1:]
	}
	table.Rows = rows
	return table, nil
}

// toCells converts API values to escaped strings of uniform width.
func toCells(values [][]any) [][]string {
	width := 0
	for _, row := range values {
		if len(row) > width {
			width = len(row)
		}
	}

	out := make([][]string, 0, len(values))
	for _, row := range values {
		cells := make([]string, width)
		for i, v := range row {
			cells[i] = markup.EscapeText(fmt.Sprint(v))
		}
		out = append(out, cells)
	}
	return out
}
