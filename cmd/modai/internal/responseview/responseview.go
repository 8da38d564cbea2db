// Package responseview displays an "ask" answer read-only.
package responseview

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/germanamz/modai/cmd/modai/internal/styles"
)

type keyMap struct {
	Copy  key.Binding
	Close key.Binding
}

var keys = keyMap{
	Copy:  key.NewBinding(key.WithKeys("c", "y"), key.WithHelp("c", "copy")),
	Close: key.NewBinding(key.WithKeys("q", "esc", "enter", "ctrl+c"), key.WithHelp("q", "close")),
}

// CopyFunc writes text to the system clipboard.
type CopyFunc func(text string) error

// Model shows a model's answer rendered as markdown.
type Model struct {
	model    string
	text     string
	viewport viewport.Model
	copy     CopyFunc
	notice   string
	closed   bool
}

// New returns a viewer for text produced by model.
func New(model, text string) Model {
	m := Model{
		model:    model,
		text:     text,
		viewport: viewport.New(80, 20),
		copy:     clipboard.WriteAll,
	}
	m.viewport.SetContent(RenderMarkdown(text, 78))
	return m
}

// WithCopy replaces the clipboard writer.
func (m Model) WithCopy(f CopyFunc) Model {
	m.copy = f
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = max(msg.Width-2, 20)
		m.viewport.Height = max(msg.Height-4, 3)
		m.viewport.SetContent(RenderMarkdown(m.text, m.viewport.Width-2))
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Close):
			m.closed = true
			return m, tea.Quit
		case key.Matches(msg, keys.Copy):
			if err := m.copy(m.text); err != nil {
				m.notice = styles.ErrorStyle.Render("copy failed: " + err.Error())
			} else {
				m.notice = styles.SuccessStyle.Render("copied to clipboard")
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.closed {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(styles.TitleStyle.Render("Modai: " + m.model))
	sb.WriteString("\n")
	sb.WriteString(styles.FocusedBorder.Render(m.viewport.View()))
	sb.WriteString("\n")
	sb.WriteString(styles.HintStyle.Render("c copy · q close · ↑/↓ scroll"))
	if m.notice != "" {
		sb.WriteString("  ")
		sb.WriteString(m.notice)
	}
	return sb.String()
}

// RenderMarkdown converts markdown to terminal output wrapped at width. On any
// renderer error the text is returned unchanged.
func RenderMarkdown(text string, width int) string {
	if width <= 0 {
		width = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}
