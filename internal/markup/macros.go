package markup

import (
	"strings"

	"github.com/custodia-labs/confrep/internal/core/domain"
)

// param is one ac:parameter of a structured macro.
type param struct {
	name  string
	value string

	// raw values are inserted without escaping (resource identifiers).
	raw bool
}

// macro builds an ac:structured-macro. Parameters with an empty value are
// omitted. body is inserted verbatim after the parameters.
func macro(name string, params []param, body string) string {
	var b strings.Builder
	b.WriteString(`<ac:structured-macro ac:name="` + escape(name) + `" ac:schema-version="1">`)
	for _, p := range params {
		if p.value == "" {
			continue
		}
		b.WriteString(`<ac:parameter ac:name="` + escape(p.name) + `">`)
		if p.raw {
			b.WriteString(p.value)
		} else {
			b.WriteString(escape(p.value))
		}
		b.WriteString("</ac:parameter>")
	}
	b.WriteString(body)
	b.WriteString("</ac:structured-macro>")
	return b.String()
}

func richText(body string) string {
	return "<ac:rich-text-body>" + body + "</ac:rich-text-body>"
}

func joined(values []string) string {
	return strings.Join(values, ",")
}

// Status renders an inline status lozenge. Unknown colours fall back to grey.
func Status(s domain.Status) string {
	colour := s.Colour
	if !colour.IsValid() {
		colour = domain.StatusGrey
	}
	return macro("status", []param{
		{name: "colour", value: string(colour)},
		{name: "title", value: s.Text},
		{name: "subtle", value: boolParam(s.Subtle)},
	}, "")
}

// CodeSnippet renders a code block. The source is kept verbatim in CDATA.
func CodeSnippet(c domain.CodeSnippet) string {
	return macro("code", []param{
		{name: "language", value: c.Language},
		{name: "title", value: c.Title},
		{name: "linenumbers", value: boolParam(c.LineNumbers)},
	}, "<ac:plain-text-body>"+cdata(c.Code)+"</ac:plain-text-body>")
}

// TableOfContents renders a table of contents macro.
func TableOfContents(t domain.TableOfContents) string {
	return macro("toc", []param{
		{name: "minLevel", value: itoa(t.MinLevel)},
		{name: "maxLevel", value: itoa(t.MaxLevel)},
	}, "")
}

// ChildPagesList renders the children display macro.
func ChildPagesList(c domain.ChildPagesList) string {
	return macro("children", []param{
		{name: "all", value: boolParam(c.All)},
		{name: "depth", value: itoa(c.Depth)},
		{name: "sort", value: c.Sort},
	}, "")
}

// TaskReport renders a task report macro.
func TaskReport(t domain.TaskReport) string {
	return macro("tasks-report-macro", []param{
		{name: "spaces", value: joined(t.Spaces)},
		{name: "labels", value: joined(t.Labels)},
		{name: "assignees", value: joined(t.Assignees)},
		{name: "status", value: t.Status},
		{name: "pageSize", value: itoa(t.PageSize)},
	}, "")
}

// PagePropertiesReport renders a page properties report macro.
func PagePropertiesReport(p domain.PagePropertiesReport) string {
	return macro("detailssummary", []param{
		{name: "cql", value: p.CQL},
		{name: "headings", value: joined(p.Headings)},
		{name: "firstcolumn", value: p.FirstColumn},
		{name: "sortBy", value: p.SortBy},
	}, "")
}

// ChangeHistory renders the page history macro.
func ChangeHistory(c domain.ChangeHistory) string {
	return macro("change-history", []param{
		{name: "limit", value: itoa(c.Limit)},
	}, "")
}

// ContributionsSummary renders a contributors summary macro.
func ContributionsSummary(c domain.ContributionsSummary) string {
	return macro("contributors-summary", []param{
		{name: "groupby", value: c.GroupBy},
		{name: "columns", value: joined(c.Columns)},
		{name: "order", value: c.Order},
		{name: "limit", value: itoa(c.Limit)},
		{name: "spaces", value: joined(c.Spaces)},
		{name: "labels", value: joined(c.Labels)},
	}, "")
}

// Iframe renders an embedded external page.
func Iframe(f domain.Iframe) string {
	border := "hide"
	if f.Border {
		border = "show"
	}
	scrolling := "no"
	if f.Scrolling {
		scrolling = "yes"
	}
	return macro("iframe", []param{
		{name: "src", value: `<ri:url ri:value="` + escape(f.URL) + `" />`, raw: true},
		{name: "width", value: itoa(f.Width)},
		{name: "height", value: itoa(f.Height)},
		{name: "frameborder", value: border},
		{name: "scrolling", value: scrolling},
	}, "")
}

// Anchor renders a named link target.
func Anchor(a domain.Anchor) string {
	return macro("anchor", []param{{name: "", value: a.Name}}, "")
}

// JiraIssues renders a Jira issues macro.
func JiraIssues(j domain.JiraIssues) string {
	return macro("jira", []param{
		{name: "serverId", value: j.ServerID},
		{name: "jqlQuery", value: j.JQL},
		{name: "columns", value: joined(j.Columns)},
		{name: "maximumIssues", value: itoa(j.MaxIssues)},
	}, "")
}

// expand wraps already-rendered content in a collapsible section.
func expand(title, body string) string {
	return macro("expand", []param{{name: "title", value: title}}, richText(body))
}
