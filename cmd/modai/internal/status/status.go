// Package status renders the indefinite "thinking" indicator shown while a
// model call is in flight.
package status

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/germanamz/modai/cmd/modai/internal/styles"
)

// DoneMsg stops the indicator.
type DoneMsg struct{}

// Model is a spinner followed by a one-line message.
type Model struct {
	spinner spinner.Model
	msg     string
	width   int
	done    bool
}

// New returns an indicator showing msg.
func New(msg string) Model {
	return Model{
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(styles.SpinnerStyle)),
		msg:     msg,
		width:   80,
	}
}

func (m Model) Init() tea.Cmd { return m.spinner.Tick }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case DoneMsg:
		m.done = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + styles.StatusStyle.Render(Fit(m.msg, m.width-2))
}

// Fit truncates s to width terminal cells, marking the cut with an ellipsis.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
