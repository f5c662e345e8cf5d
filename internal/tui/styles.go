package tui

import "github.com/charmbracelet/lipgloss"

// Style variables for the search screen.
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("45")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(16)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	progressBarStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("45"))

	progressMsgStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				Italic(true)

	summaryValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("220")).
				Bold(true)

	tableHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				Bold(true).
				Underline(true)

	marginPositiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	marginNeutralStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	marginNegativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)
