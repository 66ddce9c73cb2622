package filesystem

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/custodia-labs/confrep/internal/core/domain"
	"github.com/custodia-labs/confrep/internal/markup"
)

// ReadCSV loads a CSV file as a table. When header is true the first record
// becomes the header. Cells are escaped because table cells are emitted
// verbatim. Records may have differing lengths.
func ReadCSV(path string, header bool) (*domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	return parseCSV(f, header)
}

func parseCSV(r io.Reader, header bool) (*domain.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	table := &domain.Table{}
	first := true
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: csv: %w", domain.ErrInvalidInput, err)
		}

		cells := make([]string, len(record))
		for i, v := range record {
			cells[i] = markup.EscapeText(v)
		}

		if first && header {
			table.Header = cells
		} else {
			table.Rows = append(table.Rows, cells)
		}
		first = false
	}
	return table, nil
}

// ReadImage loads a PNG, JPEG or GIF file as an image unit.
func ReadImage(path, title string) (*domain.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	img, err := markup.ImageFromBytes(data, title)
	if err != nil {
		return nil, fmt.Errorf("image %s: %w", path, err)
	}
	return &img, nil
}
