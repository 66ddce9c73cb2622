package domain

import "time"

// UnitKind identifies the variant of a ContentUnit.
type UnitKind string

// Supported content unit kinds.
const (
	KindImage                UnitKind = "image"
	KindTable                UnitKind = "table"
	KindActionItem           UnitKind = "action_item"
	KindDecision             UnitKind = "decision"
	KindStatus               UnitKind = "status"
	KindMessage              UnitKind = "message"
	KindMention              UnitKind = "mention"
	KindLink                 UnitKind = "link"
	KindHeading              UnitKind = "heading"
	KindParagraph            UnitKind = "paragraph"
	KindList                 UnitKind = "list"
	KindLayout               UnitKind = "layout"
	KindExpand               UnitKind = "expand"
	KindCodeSnippet          UnitKind = "code"
	KindTableOfContents      UnitKind = "toc"
	KindChildPagesList       UnitKind = "children"
	KindTaskReport           UnitKind = "task_report"
	KindPagePropertiesReport UnitKind = "page_properties_report"
	KindChangeHistory        UnitKind = "change_history"
	KindContributionsSummary UnitKind = "contributions_summary"
	KindIframe               UnitKind = "iframe"
	KindDivider              UnitKind = "divider"
	KindQuote                UnitKind = "quote"
	KindDate                 UnitKind = "date"
	KindAnchor               UnitKind = "anchor"
	KindEmoticon             UnitKind = "emoticon"
	KindMarkdown             UnitKind = "markdown"
	KindJiraIssues           UnitKind = "jira_issues"
)

// String returns the string representation.
func (k UnitKind) String() string {
	return string(k)
}

// ContentUnit is one semantic block of report content prior to rendering.
// The set of implementations is closed; see the Kind constants.
type ContentUnit interface {
	Kind() UnitKind
}

// Image is a chart or picture embedded in the page.
type Image struct {
	// Data is the encoded image (PNG, JPEG or GIF bytes).
	Data []byte

	// MIMEType of Data. Defaults to image/png when empty.
	MIMEType string

	// Title is rendered as a heading above the image when set.
	Title string

	// TitleLevel is the heading level for Title (1-6, default 1).
	TitleLevel int

	// Alt text. Falls back to Title.
	Alt string
}

// Table is an ordered grid of cells.
// Cell values are emitted verbatim: embedded markup passes through.
type Table struct {
	Title      string
	TitleLevel int

	// Header cells, rendered as <th>. Optional.
	Header []string

	Rows [][]string
}

// ActionItem is a task assigned to a user with a due date.
type ActionItem struct {
	// Assignee is the platform account id of the user.
	Assignee    string
	Due         time.Time
	Description string
	Done        bool
}

// Decision records a decision taken on a given date.
type Decision struct {
	Text string
	Date time.Time
}

// StatusColour is one of the lozenge colours the platform supports.
type StatusColour string

// Status lozenge colours.
const (
	StatusGrey   StatusColour = "Grey"
	StatusRed    StatusColour = "Red"
	StatusYellow StatusColour = "Yellow"
	StatusGreen  StatusColour = "Green"
	StatusBlue   StatusColour = "Blue"
	StatusPurple StatusColour = "Purple"
)

// IsValid returns true if the colour is recognised.
func (c StatusColour) IsValid() bool {
	switch c {
	case StatusGrey, StatusRed, StatusYellow, StatusGreen, StatusBlue, StatusPurple:
		return true
	default:
		return false
	}
}

// Status is an inline coloured status lozenge.
type Status struct {
	Text   string
	Colour StatusColour
	Subtle bool
}

// MessageType is the severity of a message panel.
type MessageType string

// Message panel severities.
const (
	MessageInfo    MessageType = "info"
	MessageNote    MessageType = "note"
	MessageSuccess MessageType = "success"
	MessageWarning MessageType = "warning"
	MessageError   MessageType = "error"
)

// IsValid returns true if the message type is recognised.
func (t MessageType) IsValid() bool {
	switch t {
	case MessageInfo, MessageNote, MessageSuccess, MessageWarning, MessageError:
		return true
	default:
		return false
	}
}

// Message is a coloured panel with optional title.
type Message struct {
	Type  MessageType
	Title string
	Body  string
}

// Mention references a user.
type Mention struct {
	AccountID string
}

// Link is either an external hyperlink (URL) or a link to another page
// (PageTitle, optionally in SpaceKey).
type Link struct {
	URL       string
	Text      string
	PageTitle string
	SpaceKey  string
}

// Heading is a section heading, level 1 (largest) to 6.
type Heading struct {
	Level int
	Text  string
}

// Paragraph is a block of plain text.
type Paragraph struct {
	Text string
}

// ListStyle selects between unordered and ordered lists.
type ListStyle int

// List styles.
const (
	ListBullet ListStyle = iota
	ListNumbered
)

// List is a bullet or numbered list of plain-text items.
type List struct {
	Style ListStyle
	Items []string
}

// LayoutType is a section arrangement understood by the platform.
type LayoutType string

// Layout section types.
const (
	LayoutSingle            LayoutType = "single"
	LayoutTwoEqual          LayoutType = "two_equal"
	LayoutTwoLeftSidebar    LayoutType = "two_left_sidebar"
	LayoutTwoRightSidebar   LayoutType = "two_right_sidebar"
	LayoutThreeEqual        LayoutType = "three_equal"
	LayoutThreeWithSidebars LayoutType = "three_with_sidebars"
)

// Cells returns how many cells a section of this type holds.
// Returns 0 for unknown types.
func (t LayoutType) Cells() int {
	switch t {
	case LayoutSingle:
		return 1
	case LayoutTwoEqual, LayoutTwoLeftSidebar, LayoutTwoRightSidebar:
		return 2
	case LayoutThreeEqual, LayoutThreeWithSidebars:
		return 3
	default:
		return 0
	}
}

// LayoutSection is one row of a multi-column layout.
// Each cell holds nested content units.
type LayoutSection struct {
	Type  LayoutType
	Cells [][]ContentUnit
}

// Layout arranges content into sections of columns.
type Layout struct {
	Sections []LayoutSection
}

// Expand is a collapsible section.
type Expand struct {
	Title string
	Body  []ContentUnit
}

// CodeSnippet is a code block with syntax highlighting.
type CodeSnippet struct {
	Language    string
	Title       string
	Code        string
	LineNumbers bool
}

// TableOfContents lists the headings of the page.
type TableOfContents struct {
	MinLevel int
	MaxLevel int
}

// ChildPagesList displays the children of the page.
type ChildPagesList struct {
	// Depth limits nesting. Zero means the platform default.
	Depth int
	// Sort is one of "title", "creation", "modified".
	Sort string
	// All includes all descendants.
	All bool
}

// TaskReport lists tasks across pages.
type TaskReport struct {
	Spaces    []string
	Labels    []string
	Assignees []string
	// Status is "complete" or "incomplete". Empty means both.
	Status   string
	PageSize int
}

// PagePropertiesReport summarises page properties across pages.
type PagePropertiesReport struct {
	CQL         string
	Headings    []string
	FirstColumn string
	SortBy      string
}

// ChangeHistory shows the page's version history.
type ChangeHistory struct {
	Limit int
}

// ContributionsSummary shows who contributed to pages.
type ContributionsSummary struct {
	// GroupBy is "contributors" or "pages".
	GroupBy string
	Columns []string
	Order   string
	Limit   int
	Spaces  []string
	Labels  []string
}

// Iframe embeds an external page.
type Iframe struct {
	URL       string
	Width     int
	Height    int
	Border    bool
	Scrolling bool
}

// Divider is a horizontal rule.
type Divider struct{}

// Quote is a block quotation.
type Quote struct {
	Text string
}

// Date is an inline date lozenge.
type Date struct {
	Value time.Time
}

// Anchor is a named link target within the page.
type Anchor struct {
	Name string
}

// Emoticon is a platform emoticon such as "smile" or "tick".
type Emoticon struct {
	Name string
}

// Markdown is a block of Markdown source converted to markup.
type Markdown struct {
	Source string
}

// JiraIssues embeds a Jira issue query.
type JiraIssues struct {
	JQL       string
	ServerID  string
	Columns   []string
	MaxIssues int
}

// Kind implementations.

func (Image) Kind() UnitKind                { return KindImage }
func (Table) Kind() UnitKind                { return KindTable }
func (ActionItem) Kind() UnitKind           { return KindActionItem }
func (Decision) Kind() UnitKind             { return KindDecision }
func (Status) Kind() UnitKind               { return KindStatus }
func (Message) Kind() UnitKind              { return KindMessage }
func (Mention) Kind() UnitKind              { return KindMention }
func (Link) Kind() UnitKind                 { return KindLink }
func (Heading) Kind() UnitKind              { return KindHeading }
func (Paragraph) Kind() UnitKind            { return KindParagraph }
func (List) Kind() UnitKind                 { return KindList }
func (Layout) Kind() UnitKind               { return KindLayout }
func (Expand) Kind() UnitKind               { return KindExpand }
func (CodeSnippet) Kind() UnitKind          { return KindCodeSnippet }
func (TableOfContents) Kind() UnitKind      { return KindTableOfContents }
func (ChildPagesList) Kind() UnitKind       { return KindChildPagesList }
func (TaskReport) Kind() UnitKind           { return KindTaskReport }
func (PagePropertiesReport) Kind() UnitKind { return KindPagePropertiesReport }
func (ChangeHistory) Kind() UnitKind        { return KindChangeHistory }
func (ContributionsSummary) Kind() UnitKind { return KindContributionsSummary }
func (Iframe) Kind() UnitKind               { return KindIframe }
func (Divider) Kind() UnitKind              { return KindDivider }
func (Quote) Kind() UnitKind                { return KindQuote }
func (Date) Kind() UnitKind                 { return KindDate }
func (Anchor) Kind() UnitKind               { return KindAnchor }
func (Emoticon) Kind() UnitKind             { return KindEmoticon }
func (Markdown) Kind() UnitKind             { return KindMarkdown }
func (JiraIssues) Kind() UnitKind           { return KindJiraIssues }
