package reportdef

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/confrep/internal/core/domain"
)

// Definition is a report described in a TOML file.
//
//	title = "Weekly status"
//	space = "ENG"
//
//	[[block]]
//	kind = "heading"
//	text = "Summary"
type Definition struct {
	Title    string `toml:"title"`
	Space    string `toml:"space"`
	ParentID string `toml:"parent_id"`

	// Overwrite is the default policy when a page with Title exists.
	// Command-line flags take precedence.
	Overwrite string `toml:"overwrite"`

	// Mode is the default update mode, "replace" or "append".
	Mode string `toml:"mode"`

	Blocks []Block `toml:"block"`

	// dir is the directory relative file paths are resolved against.
	dir string
}

// Dir returns the directory the definition was loaded from.
func (d *Definition) Dir() string {
	return d.dir
}

// Block is one content unit in a definition. Which fields apply depends
// on Kind; unused fields are ignored.
type Block struct {
	Kind string `toml:"kind"`

	Text       string `toml:"text"`
	Level      int    `toml:"level"`
	Title      string `toml:"title"`
	TitleLevel int    `toml:"title_level"`

	// list
	Items    []string `toml:"items"`
	Numbered bool     `toml:"numbered"`

	// table: exactly one of Rows, CSV, Sheet or PullRequests.
	Columns      []string        `toml:"columns"`
	Rows         [][]string      `toml:"rows"`
	CSV          string          `toml:"csv"`
	Header       bool            `toml:"header"`
	Sheet        *SheetRef       `toml:"sheet"`
	PullRequests *PullRequestRef `toml:"pull_requests"`

	// image
	Path string `toml:"path"`
	Alt  string `toml:"alt"`

	// status, message
	Colour string `toml:"colour"`
	Subtle bool   `toml:"subtle"`
	Type   string `toml:"type"`

	// mention, action_item
	Account string `toml:"account"`
	Due     string `toml:"due"`
	Done    bool   `toml:"done"`

	// decision, date
	Date string `toml:"date"`

	// link
	URL      string `toml:"url"`
	Page     string `toml:"page"`
	SpaceKey string `toml:"space"`

	// code
	Language    string `toml:"language"`
	Code        string `toml:"code"`
	LineNumbers bool   `toml:"line_numbers"`

	// toc
	MinLevel int `toml:"min_level"`
	MaxLevel int `toml:"max_level"`

	// children
	Depth int    `toml:"depth"`
	Sort  string `toml:"sort"`
	All   bool   `toml:"all"`

	// task_report, contributions_summary
	Spaces    []string `toml:"spaces"`
	Labels    []string `toml:"labels"`
	Assignees []string `toml:"assignees"`
	State     string   `toml:"state"`
	PageSize  int      `toml:"page_size"`
	GroupBy   string   `toml:"group_by"`
	Order     string   `toml:"order"`
	Limit     int      `toml:"limit"`

	// page_properties_report
	CQL         string   `toml:"cql"`
	Headings    []string `toml:"headings"`
	FirstColumn string   `toml:"first_column"`
	SortBy      string   `toml:"sort_by"`

	// iframe
	Width     int  `toml:"width"`
	Height    int  `toml:"height"`
	Border    bool `toml:"border"`
	Scrolling bool `toml:"scrolling"`

	// anchor, emoticon
	Name string `toml:"name"`

	// jira_issues
	JQL       string `toml:"jql"`
	ServerID  string `toml:"server_id"`
	MaxIssues int    `toml:"max_issues"`

	// expand
	Blocks []Block `toml:"block"`

	// layout
	Sections []Section `toml:"section"`
}

// SheetRef selects a Google Sheets range.
type SheetRef struct {
	SpreadsheetID string `toml:"spreadsheet_id"`
	Range         string `toml:"range"`
	Header        bool   `toml:"header"`
}

// PullRequestRef selects merged GitHub pull requests.
type PullRequestRef struct {
	Owner string `toml:"owner"`
	Repo  string `toml:"repo"`
	Base  string `toml:"base"`

	// Since is a date in YYYY-MM-DD form.
	Since string `toml:"since"`
}

// Section is one layout row.
type Section struct {
	Type  string `toml:"type"`
	Cells []Cell `toml:"cell"`
}

// Cell is one layout column.
type Cell struct {
	Blocks []Block `toml:"block"`
}

// Load reads and validates a definition file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definition: %w", err)
	}

	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	def.dir = filepath.Dir(abs)
	return def, nil
}

// Parse decodes and validates a definition. Unknown keys are rejected so
// that typos surface instead of silently dropping content.
func Parse(data []byte) (*Definition, error) {
	var def Definition

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&def); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, strict.String())
		}
		return nil, fmt.Errorf("%w: parse definition: %w", domain.ErrInvalidInput, err)
	}

	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return &def, nil
}
