package tui

import "github.com/charmbracelet/lipgloss"

// Palette
const (
	ColorNavy   = lipgloss.Color("#1F3A5F")
	ColorBlue   = lipgloss.Color("#4A90D9")
	ColorWhite  = lipgloss.Color("#F5F5F5")
	ColorGray   = lipgloss.Color("#7A7A7A")
	ColorAmber  = lipgloss.Color("#E0A030")
	ColorRed    = lipgloss.Color("#D9534F")
	ColorGreen  = lipgloss.Color("#5CB85C")
	ColorShadow = lipgloss.Color("#3A3A3A")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorWhite).Background(ColorNavy).Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorShadow).
			Padding(1, 2)

	quoteStyle   = lipgloss.NewStyle().Foreground(ColorWhite).Italic(true)
	authorStyle  = lipgloss.NewStyle().Foreground(ColorBlue).Bold(true)
	roleStyle    = lipgloss.NewStyle().Foreground(ColorGray)
	ratingStyle  = lipgloss.NewStyle().Foreground(ColorAmber)
	dimStyle     = lipgloss.NewStyle().Foreground(ColorGray)
	errorStyle   = lipgloss.NewStyle().Foreground(ColorRed)
	playingStyle = lipgloss.NewStyle().Foreground(ColorGreen)
	pausedStyle  = lipgloss.NewStyle().Foreground(ColorAmber)
)
