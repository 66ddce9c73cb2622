package markup

import (
	"strings"
	"time"

	"github.com/custodia-labs/confrep/internal/core/domain"
)

// dateLayout is the datetime attribute format the platform expects.
const dateLayout = "2006-01-02"

// Heading renders a section heading.
func Heading(h domain.Heading) string {
	return heading(h.Level, h.Text)
}

// Paragraph renders a block of plain text.
func Paragraph(p domain.Paragraph) string {
	return "<p>" + escape(p.Text) + "</p>"
}

// List renders a bullet or numbered list. An empty list renders nothing.
func List(l domain.List) string {
	if len(l.Items) == 0 {
		return ""
	}

	tag := "ul"
	if l.Style == domain.ListNumbered {
		tag = "ol"
	}

	var b strings.Builder
	b.WriteString("<" + tag + ">")
	for _, item := range l.Items {
		b.WriteString("<li>" + escape(item) + "</li>")
	}
	b.WriteString("</" + tag + ">")
	return b.String()
}

// Link renders an external hyperlink, or a page link when PageTitle is set.
func Link(l domain.Link) string {
	if l.PageTitle != "" {
		var b strings.Builder
		b.WriteString(`<ac:link><ri:page ri:content-title="` + escape(l.PageTitle) + `"`)
		if l.SpaceKey != "" {
			b.WriteString(` ri:space-key="` + escape(l.SpaceKey) + `"`)
		}
		b.WriteString(" />")
		if l.Text != "" {
			b.WriteString("<ac:plain-text-link-body>" + cdata(l.Text) + "</ac:plain-text-link-body>")
		}
		b.WriteString("</ac:link>")
		return b.String()
	}

	text := l.Text
	if text == "" {
		text = l.URL
	}
	return `<a href="` + escape(l.URL) + `">` + escape(text) + "</a>"
}

// Mention renders a user mention.
func Mention(m domain.Mention) string {
	return `<ac:link><ri:user ri:account-id="` + escape(m.AccountID) + `" /></ac:link>`
}

// Divider renders a horizontal rule.
func Divider(domain.Divider) string {
	return "<hr />"
}

// Quote renders a block quotation.
func Quote(q domain.Quote) string {
	return "<blockquote><p>" + escape(q.Text) + "</p></blockquote>"
}

// Date renders an inline date lozenge. A zero date renders nothing.
func Date(d domain.Date) string {
	return timeElement(d.Value)
}

// Emoticon renders a platform emoticon by name.
func Emoticon(e domain.Emoticon) string {
	return `<ac:emoticon ac:name="` + escape(e.Name) + `" />`
}

func timeElement(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return `<time datetime="` + t.Format(dateLayout) + `" />`
}
