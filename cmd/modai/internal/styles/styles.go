package styles

import "github.com/charmbracelet/lipgloss"

// GitHub terminal light theme palette.
var (
	ColorFg      = lipgloss.Color("#24292f") // primary foreground
	ColorMuted   = lipgloss.Color("#656d76") // muted/dim text
	ColorAccent  = lipgloss.Color("#0969da") // accent blue
	ColorError   = lipgloss.Color("#cf222e") // error red
	ColorSuccess = lipgloss.Color("#1a7f37") // success green
	ColorWarning = lipgloss.Color("#9a6700") // warning amber
	ColorMagenta = lipgloss.Color("#8250df") // purple/magenta

	ColorAddedBg   = lipgloss.Color("#dafbe1")
	ColorRemovedBg = lipgloss.Color("#ffebe9")
)

// Centralized style definitions for the TUI.
var (
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorFg)
	DimStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	HintStyle  = lipgloss.NewStyle().Foreground(ColorMuted)

	// Diff segments.
	AddedStyle     = lipgloss.NewStyle().Foreground(ColorSuccess).Background(ColorAddedBg)
	RemovedStyle   = lipgloss.NewStyle().Foreground(ColorError).Background(ColorRemovedBg).Strikethrough(true)
	UnchangedStyle = lipgloss.NewStyle().Foreground(ColorFg)

	// Suggestion chips.
	ChipStyle        = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(ColorMuted)
	ChipFocusedStyle = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(ColorAccent).Bold(true)

	// Panels.
	FocusedBorder = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorAccent)
	ReviewBorder  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorWarning)

	// Spinner / notices.
	SpinnerStyle = lipgloss.NewStyle().Foreground(ColorMagenta)
	StatusStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	NoticeStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	SuccessStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess)
	ErrorStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorError)
)
