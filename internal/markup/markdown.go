package markup

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/custodia-labs/confrep/internal/core/domain"
)

// md converts Markdown to XHTML. Raw HTML in the source is dropped, so the
// output is always well-formed.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(gmhtml.WithXHTML()),
)

// Markdown converts a Markdown block into storage markup. The output is
// sanitized too, since numeric references like "&#7;" decode to control
// characters.
func Markdown(m domain.Markdown) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(Sanitize(m.Source)), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return Sanitize(string(bytes.TrimSpace(buf.Bytes()))), nil
}
