package reportdef

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/custodia-labs/confrep/internal/core/domain"
)

// dateLayout is the form of every date field in a definition.
const dateLayout = "2006-01-02"

var (
	errTableSource = errors.New("exactly one of rows, csv, sheet or pull_requests is required")
	errLinkTarget  = errors.New("one of url or page is required")
)

// kinds lists the block kinds a definition may use.
var kinds = []any{
	string(domain.KindHeading),
	string(domain.KindParagraph),
	string(domain.KindList),
	string(domain.KindTable),
	string(domain.KindImage),
	string(domain.KindStatus),
	string(domain.KindMessage),
	string(domain.KindMention),
	string(domain.KindLink),
	string(domain.KindActionItem),
	string(domain.KindDecision),
	string(domain.KindCodeSnippet),
	string(domain.KindTableOfContents),
	string(domain.KindChildPagesList),
	string(domain.KindTaskReport),
	string(domain.KindPagePropertiesReport),
	string(domain.KindChangeHistory),
	string(domain.KindContributionsSummary),
	string(domain.KindIframe),
	string(domain.KindDivider),
	string(domain.KindQuote),
	string(domain.KindDate),
	string(domain.KindAnchor),
	string(domain.KindEmoticon),
	string(domain.KindMarkdown),
	string(domain.KindJiraIssues),
	string(domain.KindExpand),
	string(domain.KindLayout),
}

var (
	colours = []any{
		string(domain.StatusGrey), string(domain.StatusRed), string(domain.StatusYellow),
		string(domain.StatusGreen), string(domain.StatusBlue), string(domain.StatusPurple),
	}
	messageTypes = []any{
		string(domain.MessageInfo), string(domain.MessageNote), string(domain.MessageSuccess),
		string(domain.MessageWarning), string(domain.MessageError),
	}
	layoutTypes = []any{
		string(domain.LayoutSingle), string(domain.LayoutTwoEqual), string(domain.LayoutTwoLeftSidebar),
		string(domain.LayoutTwoRightSidebar), string(domain.LayoutThreeEqual), string(domain.LayoutThreeWithSidebars),
	}
	textKinds = map[string]bool{
		string(domain.KindHeading):   true,
		string(domain.KindParagraph): true,
		string(domain.KindStatus):    true,
		string(domain.KindQuote):     true,
		string(domain.KindMarkdown):  true,
		string(domain.KindDecision):  true,
		string(domain.KindMessage):   true,
	}
)

// Validate checks the definition and every block in it.
func (d Definition) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Title, validation.Required),
		validation.Field(&d.Overwrite, validation.In(
			string(domain.AlwaysOverwrite), string(domain.NeverOverwrite), string(domain.AskCaller))),
		validation.Field(&d.Mode, validation.In(string(domain.ModeReplace), string(domain.ModeAppend))),
		validation.Field(&d.Blocks, validation.Required),
	)
}

// Validate checks the fields the block's kind needs.
func (b Block) Validate() error {
	kind := func(k domain.UnitKind) bool { return b.Kind == string(k) }

	return validation.ValidateStruct(&b,
		validation.Field(&b.Kind, validation.Required, validation.In(kinds...)),
		validation.Field(&b.Text, validation.When(textKinds[b.Kind], validation.Required)),
		validation.Field(&b.Level, validation.Min(0), validation.Max(6)),
		validation.Field(&b.TitleLevel, validation.Min(0), validation.Max(6)),
		validation.Field(&b.Items, validation.When(kind(domain.KindList), validation.Required)),
		validation.Field(&b.Rows, validation.When(kind(domain.KindTable), validation.By(b.tableSource))),
		validation.Field(&b.Path, validation.When(kind(domain.KindImage), validation.Required)),
		validation.Field(&b.Colour, validation.When(kind(domain.KindStatus), validation.In(colours...))),
		validation.Field(&b.Type, validation.When(kind(domain.KindMessage), validation.In(messageTypes...))),
		validation.Field(&b.Account, validation.When(kind(domain.KindMention) || kind(domain.KindActionItem), validation.Required)),
		validation.Field(&b.Due, validation.Date(dateLayout)),
		validation.Field(&b.Date, validation.When(kind(domain.KindDate), validation.Required), validation.Date(dateLayout)),
		validation.Field(&b.URL, validation.When(kind(domain.KindIframe), validation.Required),
			validation.When(kind(domain.KindLink), validation.By(b.linkTarget)), urlRule(b.Kind)),
		validation.Field(&b.Code, validation.When(kind(domain.KindCodeSnippet), validation.Required)),
		validation.Field(&b.Name, validation.When(kind(domain.KindAnchor) || kind(domain.KindEmoticon), validation.Required)),
		validation.Field(&b.JQL, validation.When(kind(domain.KindJiraIssues), validation.Required)),
		validation.Field(&b.Sheet),
		validation.Field(&b.PullRequests),
		validation.Field(&b.Blocks, validation.When(kind(domain.KindExpand), validation.Required)),
		validation.Field(&b.Sections, validation.When(kind(domain.KindLayout), validation.Required)),
	)
}

func (b Block) tableSource(any) error {
	n := 0
	if len(b.Rows) > 0 {
		n++
	}
	if b.CSV != "" {
		n++
	}
	if b.Sheet != nil {
		n++
	}
	if b.PullRequests != nil {
		n++
	}
	if n != 1 {
		return errTableSource
	}
	return nil
}

func (b Block) linkTarget(any) error {
	if b.URL == "" && b.Page == "" {
		return errLinkTarget
	}
	return nil
}

// urlRule only checks URL syntax for kinds that take an external URL.
func urlRule(kind string) validation.Rule {
	return validation.When(kind == string(domain.KindIframe) || kind == string(domain.KindLink), is.URL)
}

// Validate checks the sheet reference.
func (s SheetRef) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.SpreadsheetID, validation.Required),
		validation.Field(&s.Range, validation.Required),
	)
}

// Validate checks the pull-request reference.
func (p PullRequestRef) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Owner, validation.Required),
		validation.Field(&p.Repo, validation.Required),
		validation.Field(&p.Since, validation.Date(dateLayout)),
	)
}

// Validate checks the section type and cell count.
func (s Section) Validate() error {
	want := domain.LayoutType(s.Type).Cells()
	return validation.ValidateStruct(&s,
		validation.Field(&s.Type, validation.Required, validation.In(layoutTypes...)),
		validation.Field(&s.Cells, validation.When(want > 0, validation.Length(want, want))),
	)
}

// Validate checks the blocks inside a cell.
func (c Cell) Validate() error {
	return validation.ValidateStruct(&c, validation.Field(&c.Blocks))
}
