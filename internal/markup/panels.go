package markup

import (
	"strings"

	"github.com/custodia-labs/confrep/internal/core/domain"
)

// ActionItem renders a single task with assignee mention and due date.
func ActionItem(a domain.ActionItem) string {
	status := "incomplete"
	if a.Done {
		status = "complete"
	}

	var body strings.Builder
	if a.Assignee != "" {
		body.WriteString(Mention(domain.Mention{AccountID: a.Assignee}))
		body.WriteString(" ")
	}
	body.WriteString(escape(a.Description))
	if due := timeElement(a.Due); due != "" {
		body.WriteString(" ")
		body.WriteString(due)
	}

	return "<ac:task-list><ac:task>" +
		"<ac:task-status>" + status + "</ac:task-status>" +
		"<ac:task-body>" + body.String() + "</ac:task-body>" +
		"</ac:task></ac:task-list>"
}

// Decision renders a decided item. Editors that do not understand the
// extension fall back to a plain list.
func Decision(d domain.Decision) string {
	text := escape(d.Text)
	if due := timeElement(d.Date); due != "" {
		text += " " + due
	}

	return `<ac:adf-extension><ac:adf-node type="decision-list">` +
		`<ac:adf-node type="decision-item"><ac:adf-attribute key="state">DECIDED</ac:adf-attribute>` +
		`<ac:adf-content>` + text + `</ac:adf-content>` +
		`</ac:adf-node></ac:adf-node>` +
		`<ac:adf-fallback><ul class="decision-list"><li>` + text + `</li></ul></ac:adf-fallback>` +
		`</ac:adf-extension>`
}

// panelMacros maps message severities onto the platform's panel macros.
var panelMacros = map[domain.MessageType]string{
	domain.MessageInfo:    "info",
	domain.MessageNote:    "note",
	domain.MessageSuccess: "tip",
	domain.MessageWarning: "warning",
}

// Message renders a coloured panel. Unknown severities render as info.
func Message(m domain.Message) string {
	body := "<p>" + escape(m.Body) + "</p>"

	if m.Type == domain.MessageError {
		fallback := macro("warning", []param{{name: "title", value: m.Title}}, richText(body))
		var b strings.Builder
		b.WriteString(`<ac:adf-extension><ac:adf-node type="panel">`)
		b.WriteString(`<ac:adf-attribute key="panel-type">error</ac:adf-attribute>`)
		b.WriteString(`<ac:adf-content>`)
		if m.Title != "" {
			b.WriteString("<p><strong>" + escape(m.Title) + "</strong></p>")
		}
		b.WriteString(body)
		b.WriteString(`</ac:adf-content></ac:adf-node>`)
		b.WriteString(`<ac:adf-fallback>` + fallback + `</ac:adf-fallback>`)
		b.WriteString(`</ac:adf-extension>`)
		return b.String()
	}

	name, ok := panelMacros[m.Type]
	if !ok {
		name = "info"
	}
	return macro(name, []param{{name: "title", value: m.Title}}, richText(body))
}
