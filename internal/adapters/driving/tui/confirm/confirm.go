// Package confirm provides the interactive overwrite prompt shown when a
// report is published over an existing page.
package confirm

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/confrep/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/confrep/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/confrep/internal/core/domain"
)

// Model asks whether an existing page may be overwritten.
type Model struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	page *domain.RemotePage
	url  string

	// yes is the highlighted choice.
	yes       bool
	done      bool
	confirmed bool
}

// New creates a prompt for page. url is shown when non-empty.
// The highlight starts on the safe choice.
func New(s *styles.Styles, km *keymap.KeyMap, page *domain.RemotePage, url string) *Model {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if page == nil {
		page = &domain.RemotePage{}
	}

	h := help.New()
	h.Styles.ShortKey = s.Label.Width(0)
	h.Styles.ShortDesc = s.Muted

	return &Model{
		styles: s,
		keymap: km,
		help:   h,
		page:   page,
		url:    url,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Yes):
			return m.finish(true)
		case key.Matches(msg, m.keymap.No), key.Matches(msg, m.keymap.Quit):
			return m.finish(false)
		case key.Matches(msg, m.keymap.Toggle):
			m.yes = !m.yes
			return m, nil
		case key.Matches(msg, m.keymap.Submit):
			return m.finish(m.yes)
		}
	}

	return m, nil
}

func (m *Model) finish(confirmed bool) (tea.Model, tea.Cmd) {
	m.done = true
	m.confirmed = confirmed
	return m, tea.Quit
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.styles.Title.Render("A page with this title already exists. Overwrite it?"))
	b.WriteString("\n\n")
	b.WriteString(m.field("Title", m.page.Title))
	b.WriteString(m.field("Space", m.page.SpaceKey))
	b.WriteString(m.field("Page ID", m.page.ID))
	b.WriteString(m.field("Version", fmt.Sprintf("%d", m.page.Version)))
	if m.url != "" {
		b.WriteString(m.field("URL", m.url))
	}
	b.WriteString("\n")

	yes := m.styles.Button.Render("Overwrite")
	no := m.styles.Button.Render("Keep")
	if m.yes {
		yes = m.styles.Danger.Render("Overwrite")
	} else {
		no = m.styles.Selected.Render("Keep")
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, no, yes))
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.help.View(m.keymap)))

	return m.styles.Border.Render(b.String()) + "\n"
}

func (m *Model) field(label, value string) string {
	return m.styles.Label.Render(label) + m.styles.Normal.Render(value) + "\n"
}

// Done reports whether a choice has been made.
func (m *Model) Done() bool {
	return m.done
}

// Confirmed reports whether the user chose to overwrite.
func (m *Model) Confirmed() bool {
	return m.done && m.confirmed
}

// Run shows the prompt on out, reading keys from in, and blocks until the
// user decides or ctx is cancelled. Cancellation declines.
func Run(ctx context.Context, in io.Reader, out io.Writer, page *domain.RemotePage, url string) (bool, error) {
	m := New(nil, nil, page, url)

	p := tea.NewProgram(m,
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return false, fmt.Errorf("overwrite prompt: %w", err)
	}

	result, ok := final.(*Model)
	if !ok {
		return false, nil
	}
	return result.Confirmed(), nil
}
