// Package collectorview is the terminal rendering of the custom-instructions
// prompt: a row of role chips above a text area.
package collectorview

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/germanamz/modai/cmd/modai/internal/styles"
	"github.com/germanamz/modai/pkg/collector"
)

const noChip = -1

type keyMap struct {
	Replace  key.Binding
	Ask      key.Binding
	NextChip key.Binding
	PrevChip key.Binding
	Choose   key.Binding
	Cancel   key.Binding
}

var keys = keyMap{
	Replace:  shortcutBinding(collector.Replace),
	Ask:      shortcutBinding(collector.Ask),
	NextChip: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "roles")),
	PrevChip: key.NewBinding(key.WithKeys("shift+tab")),
	Choose:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "use role")),
	Cancel:   key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
}

// shortcutBinding mirrors the form's submit keys so help text cannot drift
// from what HandleKey accepts.
func shortcutBinding(intent collector.Intent) key.Binding {
	ks := collector.ShortcutKeys(intent)
	return key.NewBinding(key.WithKeys(ks...), key.WithHelp(ks[0], intent.String()))
}

// Model wraps a collector.Form. The form is shared with the caller, which
// reads the outcome once the program exits.
type Model struct {
	form     *collector.Form
	textarea textarea.Model
	chip     int
	width    int
}

// New returns a Model editing form.
func New(form *collector.Form) Model {
	ta := textarea.New()
	ta.Placeholder = "Describe what to do with the text..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(5)
	ta.SetWidth(72)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.Prompt = ""
	ta.SetValue(form.Text())
	ta.Focus()

	return Model{form: form, textarea: ta, chip: noChip, width: 76}
}

// Form returns the underlying form.
func (m Model) Form() *collector.Form { return m.form }

func (m Model) Init() tea.Cmd { return textarea.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.textarea.SetWidth(max(msg.Width-4, 10))
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Cancel) {
		m.form.Cancel()
		return m, tea.Quit
	}

	// Shortcuts never reach the text area, even when the submission is
	// refused for blank text.
	if m.form.HandleKey(msg.String()) {
		if m.form.Done() {
			return m, tea.Quit
		}
		return m, nil
	}

	chips := len(m.form.Suggestions())
	switch {
	case key.Matches(msg, keys.NextChip) && chips > 0:
		m.chip++
		if m.chip >= chips {
			m.chip = noChip
		}
		m.syncFocus()
		return m, nil
	case key.Matches(msg, keys.PrevChip) && chips > 0:
		m.chip--
		if m.chip < noChip {
			m.chip = chips - 1
		}
		m.syncFocus()
		return m, nil
	case key.Matches(msg, keys.Choose) && m.chip != noChip:
		m.form.Choose(m.form.Suggestions()[m.chip].Label)
		m.textarea.SetValue(m.form.Text())
		m.chip = noChip
		m.syncFocus()
		return m, nil
	}

	if m.chip != noChip {
		m.chip = noChip
		m.syncFocus()
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	m.form.SetText(m.textarea.Value())
	return m, cmd
}

func (m *Model) syncFocus() {
	if m.chip == noChip {
		m.textarea.Focus()
		return
	}
	m.textarea.Blur()
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(styles.TitleStyle.Render("Custom instructions"))
	sb.WriteString("\n")

	if row := m.chipRows(); row != "" {
		sb.WriteString(row)
		sb.WriteString("\n")
	}

	sb.WriteString(styles.FocusedBorder.Render(m.textarea.View()))
	sb.WriteString("\n")
	sb.WriteString(styles.HintStyle.Render(hint()))

	return sb.String()
}

// chipRows lays the chips out left to right, wrapping before a chip that
// would overflow the terminal width.
func (m Model) chipRows() string {
	suggestions := m.form.Suggestions()
	if len(suggestions) == 0 {
		return ""
	}

	var (
		rows    []string
		line    []string
		lineLen int
	)

	for i, s := range suggestions {
		style := styles.ChipStyle
		if i == m.chip {
			style = styles.ChipFocusedStyle
		}

		w := ChipWidth(s.Label)
		if lineLen > 0 && lineLen+w > m.width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, line...))
			line, lineLen = nil, 0
		}

		line = append(line, style.Render(s.Label))
		lineLen += w
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, line...))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// ChipWidth is the rendered cell width of a chip: label, padding and border.
func ChipWidth(label string) int {
	return runewidth.StringWidth(label) + 4
}

func hint() string {
	parts := make([]string, 0, 5)
	for _, b := range []key.Binding{keys.Replace, keys.Ask, keys.NextChip, keys.Choose, keys.Cancel} {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}
