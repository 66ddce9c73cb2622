package markup

import (
	"html"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Sanitize returns s as text XML accepts: invalid UTF-8 becomes U+FFFD and
// runes outside the XML 1.0 Char range, such as most C0 controls, are
// dropped. Markup in s is left alone.
func Sanitize(s string) string {
	if utf8.ValidString(s) && strings.IndexFunc(s, notXMLChar) < 0 {
		return s
	}
	s = strings.ToValidUTF8(s, "\uFFFD")
	return strings.Map(func(r rune) rune {
		if notXMLChar(r) {
			return -1
		}
		return r
	}, s)
}

// EscapeText sanitizes s and escapes it for element text or attribute
// values.
func EscapeText(s string) string {
	return html.EscapeString(Sanitize(s))
}

func notXMLChar(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return false
	case r >= 0x20 && r <= 0xD7FF:
		return false
	case r >= 0xE000 && r <= 0xFFFD:
		return false
	case r >= 0x10000 && r <= utf8.MaxRune:
		return false
	default:
		return true
	}
}

func escape(s string) string {
	return EscapeText(s)
}

// cdata wraps s in a CDATA section. Any "]]>" inside s is split across two
// sections so the terminator never appears early.
func cdata(s string) string {
	return "<![CDATA[" + strings.ReplaceAll(Sanitize(s), "]]>", "]]]]><![CDATA[>") + "]]>"
}

var mimeImage = regexp.MustCompile(`^image/[a-z0-9.+-]+$`)

// clampLevel keeps heading levels within 1..6. Zero means level 1.
func clampLevel(level int) int {
	switch {
	case level < 1:
		return 1
	case level > 6:
		return 6
	default:
		return level
	}
}

// heading renders <hN>text</hN>, or nothing when text is empty.
func heading(level int, text string) string {
	if text == "" {
		return ""
	}
	n := strconv.Itoa(clampLevel(level))
	return "<h" + n + ">" + escape(text) + "</h" + n + ">"
}

func itoa(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func boolParam(b bool) string {
	if !b {
		return ""
	}
	return "true"
}
