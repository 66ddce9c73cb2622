package markup

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/confrep/internal/core/domain"
)

// Render converts a single content unit into storage markup.
func Render(unit domain.ContentUnit) (string, error) {
	switch u := unit.(type) {
	case nil:
		return "", fmt.Errorf("%w: nil content unit", domain.ErrInvalidInput)
	case domain.Image:
		return Image(u)
	case domain.Table:
		return Table(u), nil
	case domain.ActionItem:
		return ActionItem(u), nil
	case domain.Decision:
		return Decision(u), nil
	case domain.Status:
		return Status(u), nil
	case domain.Message:
		return Message(u), nil
	case domain.Mention:
		return Mention(u), nil
	case domain.Link:
		return Link(u), nil
	case domain.Heading:
		return Heading(u), nil
	case domain.Paragraph:
		return Paragraph(u), nil
	case domain.List:
		return List(u), nil
	case domain.Layout:
		return Layout(u)
	case domain.Expand:
		return Expand(u)
	case domain.CodeSnippet:
		return CodeSnippet(u), nil
	case domain.TableOfContents:
		return TableOfContents(u), nil
	case domain.ChildPagesList:
		return ChildPagesList(u), nil
	case domain.TaskReport:
		return TaskReport(u), nil
	case domain.PagePropertiesReport:
		return PagePropertiesReport(u), nil
	case domain.ChangeHistory:
		return ChangeHistory(u), nil
	case domain.ContributionsSummary:
		return ContributionsSummary(u), nil
	case domain.Iframe:
		return Iframe(u), nil
	case domain.Divider:
		return Divider(u), nil
	case domain.Quote:
		return Quote(u), nil
	case domain.Date:
		return Date(u), nil
	case domain.Anchor:
		return Anchor(u), nil
	case domain.Emoticon:
		return Emoticon(u), nil
	case domain.Markdown:
		return Markdown(u)
	case domain.JiraIssues:
		return JiraIssues(u), nil
	default:
		return "", fmt.Errorf("%w: %T", domain.ErrUnsupportedType, unit)
	}
}

// RenderAll renders units in order and concatenates the results with no
// separator. The first failing unit aborts the render.
func RenderAll(units ...domain.ContentUnit) (string, error) {
	var b strings.Builder
	for i, unit := range units {
		out, err := Render(unit)
		if err != nil {
			return "", fmt.Errorf("unit %d: %w", i, err)
		}
		b.WriteString(out)
	}
	return b.String(), nil
}

// Expand renders a collapsible section holding nested units.
func Expand(e domain.Expand) (string, error) {
	body, err := RenderAll(e.Body...)
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", e.Title, err)
	}
	return expand(e.Title, body), nil
}
