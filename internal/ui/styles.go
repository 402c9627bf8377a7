package ui

import "github.com/charmbracelet/lipgloss"

const (
	cardFg      = "#E6E6E6"
	cardBorder  = "#6C6C6C"
	hoverBorder = "#FF8C00"
	background  = "#101010"
	railBg      = "#1C1C1C"
	railFg      = "#BBBBBB"
	railActive  = "#FF8C00"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"})

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"})

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"})

	railStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(railFg)).
			Background(lipgloss.Color(railBg))

	railActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(background)).
			Background(lipgloss.Color(railActive))

	drawerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(hoverBorder)).
			Padding(1, 2)
)
