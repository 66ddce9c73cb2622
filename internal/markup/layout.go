package markup

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/confrep/internal/core/domain"
)

// Layout renders a multi-column layout. Every section must hold exactly as
// many cells as its type defines.
func Layout(l domain.Layout) (string, error) {
	if len(l.Sections) == 0 {
		return "", fmt.Errorf("%w: layout has no sections", domain.ErrInvalidInput)
	}

	var b strings.Builder
	b.WriteString("<ac:layout>")
	for i, section := range l.Sections {
		want := section.Type.Cells()
		if want == 0 {
			return "", fmt.Errorf("%w: section %d: unknown layout type %q", domain.ErrInvalidInput, i, section.Type)
		}
		if len(section.Cells) != want {
			return "", fmt.Errorf("%w: section %d: %s needs %d cells, got %d",
				domain.ErrInvalidInput, i, section.Type, want, len(section.Cells))
		}

		b.WriteString(`<ac:layout-section ac:type="` + string(section.Type) + `">`)
		for j, cell := range section.Cells {
			body, err := RenderAll(cell...)
			if err != nil {
				return "", fmt.Errorf("section %d cell %d: %w", i, j, err)
			}
			b.WriteString("<ac:layout-cell>" + body + "</ac:layout-cell>")
		}
		b.WriteString("</ac:layout-section>")
	}
	b.WriteString("</ac:layout>")

	return b.String(), nil
}
