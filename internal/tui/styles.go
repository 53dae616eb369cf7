package tui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("99")  // Purple
	successColor = lipgloss.Color("42")  // Green
	warningColor = lipgloss.Color("226") // Yellow
	errorColor   = lipgloss.Color("196") // Red
	mutedColor   = lipgloss.Color("245") // Gray
	accentColor  = lipgloss.Color("212") // Pink

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			PaddingRight(2)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			Underline(true).
			PaddingRight(2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				PaddingRight(2)

	itemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(accentColor).
				Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	doneStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Strikethrough(true)

	handleStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	draggingStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Reverse(true)

	deleteStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	dirtyStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	progressDoneStyle = lipgloss.NewStyle().
				Foreground(successColor)

	errorBannerStyle = lipgloss.NewStyle().
				Foreground(errorColor).
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(errorColor).
				Padding(0, 1)

	successBannerStyle = lipgloss.NewStyle().
				Foreground(successColor).
				Bold(true).
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(successColor).
				Padding(0, 1)

	confirmBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(warningColor).
			Padding(1, 3)

	dialogBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2)

	footerStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)
)
