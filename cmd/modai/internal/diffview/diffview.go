// Package diffview shows a proposed edit as a word diff and asks the user to
// accept or discard it.
package diffview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/germanamz/modai/cmd/modai/internal/styles"
	"github.com/germanamz/modai/pkg/diff"
	"github.com/germanamz/modai/pkg/review"
)

type keyMap struct {
	Accept  key.Binding
	Discard key.Binding
}

var keys = keyMap{
	Accept:  key.NewBinding(key.WithKeys("y", "a", "enter"), key.WithHelp("y", "accept")),
	Discard: key.NewBinding(key.WithKeys("n", "d", "esc", "ctrl+c", "q"), key.WithHelp("n", "discard")),
}

// Model is the review dialog.
type Model struct {
	proposal *review.Proposal
	viewport viewport.Model
	plain    bool
	decision review.Decision
	decided  bool
	ready    bool
}

// New returns a review dialog for p. When plain is set the diff uses
// [-removed-]{+added+} markers instead of colour.
func New(p *review.Proposal, plain bool) Model {
	vp := viewport.New(80, 20)
	m := Model{proposal: p, viewport: vp, plain: plain}
	m.viewport.SetContent(m.content())
	return m
}

// Decision returns the verdict. It is Discard until the user accepts.
func (m Model) Decision() review.Decision { return m.decision }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = max(msg.Width-2, 20)
		m.viewport.Height = max(msg.Height-6, 3)
		m.viewport.SetContent(m.content())
		m.ready = true
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Accept):
			m.decision, m.decided = review.Accept, true
			return m, tea.Quit
		case key.Matches(msg, keys.Discard):
			m.decision, m.decided = review.Discard, true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.decided {
		return ""
	}

	stats := m.proposal.Stats()
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.TitleStyle.Render("Review changes "),
		styles.AddedStyle.Render(fmt.Sprintf("+%d", stats.Added)),
		" ",
		styles.RemovedStyle.Strikethrough(false).Render(fmt.Sprintf("-%d", stats.Removed)),
		styles.DimStyle.Render(" words"),
	)

	footer := styles.HintStyle.Render(fmt.Sprintf("%s %s · %s %s · ↑/↓ scroll",
		keys.Accept.Help().Key, keys.Accept.Help().Desc,
		keys.Discard.Help().Key, keys.Discard.Help().Desc))

	return header + "\n" + styles.ReviewBorder.Render(m.viewport.View()) + "\n" + footer
}

func (m Model) content() string {
	text := Render(m.proposal.Segments, m.plain)
	if m.viewport.Width > 0 {
		text = lipgloss.NewStyle().Width(m.viewport.Width).Render(text)
	}
	return text
}

// Render formats segments for the terminal. Styles are applied line by line
// so background colours do not bleed across line breaks.
func Render(segs []diff.Segment, plain bool) string {
	var sb strings.Builder
	for _, s := range segs {
		if plain {
			sb.WriteString(plainSegment(s))
			continue
		}

		style := styles.UnchangedStyle
		switch s.Kind {
		case diff.Added:
			style = styles.AddedStyle
		case diff.Removed:
			style = styles.RemovedStyle
		}

		for i, line := range strings.Split(s.Text, "\n") {
			if i > 0 {
				sb.WriteString("\n")
			}
			if line != "" {
				sb.WriteString(style.Render(line))
			}
		}
	}
	return sb.String()
}

func plainSegment(s diff.Segment) string {
	switch s.Kind {
	case diff.Added:
		return "{+" + s.Text + "+}"
	case diff.Removed:
		return "[-" + s.Text + "-]"
	default:
		return s.Text
	}
}
