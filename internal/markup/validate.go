package markup

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/custodia-labs/confrep/internal/core/domain"
)

// Bodies are fragments with several top-level elements and undeclared
// ac:/ri: prefixes, so they are parsed inside a synthetic root.
const (
	rootOpen = `<confrep-body xmlns:ac="http://atlassian.com/content" ` +
		`xmlns:ri="http://atlassian.com/resource/identifier" ` +
		`xmlns:at="http://atlassian.com/template">`
	rootClose = `</confrep-body>`
)

// Check parses body strictly as storage markup. It returns a
// *domain.MalformedContentError describing the first problem found, or nil.
// This is a syntactic check only: macro names and parameters are not
// verified against the platform.
func Check(body string) error {
	dec := xml.NewDecoder(strings.NewReader(rootOpen + body + rootClose))
	dec.Strict = true
	dec.Entity = xml.HTMLEntity

	depth := 0
	closed := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return malformed(dec, err)
		}
		if closed {
			return &domain.MalformedContentError{Line: line(dec), Reason: "content after end of body"}
		}

		switch tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
			if depth == 0 {
				closed = true
			}
		case xml.ProcInst:
			return &domain.MalformedContentError{Line: line(dec), Reason: "processing instruction not allowed"}
		case xml.Directive:
			return &domain.MalformedContentError{Line: line(dec), Reason: "directive not allowed"}
		}
	}

	if !closed {
		return &domain.MalformedContentError{Line: line(dec), Reason: "unexpected end of body"}
	}
	return nil
}

// Validate reports whether body is well-formed storage markup.
func Validate(body string) bool {
	return Check(body) == nil
}

func malformed(dec *xml.Decoder, err error) error {
	var syntax *xml.SyntaxError
	if errors.As(err, &syntax) {
		return &domain.MalformedContentError{Line: syntax.Line, Reason: syntax.Msg}
	}
	return &domain.MalformedContentError{Line: line(dec), Reason: err.Error()}
}

func line(dec *xml.Decoder) int {
	l, _ := dec.InputPos()
	return l
}
