package tui

import "github.com/charmbracelet/lipgloss"

var (
	blue  = lipgloss.Color("#2563EB")
	green = lipgloss.Color("#16A34A")
	red   = lipgloss.Color("#DC2626")
	gray  = lipgloss.Color("#6B7280")
	light = lipgloss.Color("#D1D5DB")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(blue)
	subtitleStyle = lipgloss.NewStyle().Foreground(gray)
	headingStyle  = lipgloss.NewStyle().Bold(true).MarginTop(1)
	mutedStyle    = lipgloss.NewStyle().Foreground(gray)
	errorStyle    = lipgloss.NewStyle().Foreground(red)
	countStyle    = lipgloss.NewStyle().Foreground(blue).Bold(true)
	actionStyle   = lipgloss.NewStyle().Foreground(green)
	buttonStyle   = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#FFFFFF")).Background(blue)
	disabledStyle = buttonStyle.Background(gray)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(light).
			Padding(0, 1)
	selectedCardStyle = cardStyle.BorderForeground(blue)
	answerStyle       = lipgloss.NewStyle().PaddingLeft(2).BorderLeft(true).BorderStyle(lipgloss.NormalBorder()).BorderForeground(light)
	emptyStyle        = lipgloss.NewStyle().Padding(1, 2).Foreground(gray)
)
