package markup

import (
	"strings"

	"github.com/custodia-labs/confrep/internal/core/domain"
)

// Table renders a table with an optional title heading.
//
// Cell values are NOT escaped. Markup inside a cell, such as a link or a
// status macro, is passed through to the page as-is. This also means a cell
// containing a bare "<" or "&" produces a body that fails Check; sanitise
// untrusted data before building the table. Only characters XML forbids
// outright are dropped (see Sanitize).
func Table(t domain.Table) string {
	var b strings.Builder
	b.WriteString(heading(titleLevel(t.TitleLevel), t.Title))
	b.WriteString(`<table class="confluenceTable">`)

	if len(t.Header) > 0 {
		b.WriteString("<thead><tr>")
		for _, cell := range t.Header {
			b.WriteString("<th>" + Sanitize(cell) + "</th>")
		}
		b.WriteString("</tr></thead>")
	}

	b.WriteString("<tbody>")
	for _, row := range t.Rows {
		b.WriteString("<tr>")
		for _, cell := range row {
			b.WriteString("<td>" + Sanitize(cell) + "</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")

	return b.String()
}

// titleLevel defaults unset title sizes to the largest heading.
func titleLevel(level int) int {
	if level == 0 {
		return 1
	}
	return level
}
