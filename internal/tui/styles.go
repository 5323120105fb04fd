package tui

import "github.com/charmbracelet/lipgloss"

// Color constants for the underwater palette.
const (
	primaryColor   = "#22D3EE" // Cyan
	secondaryColor = "#10B981" // Green
	warningColor   = "#F59E0B" // Amber
	errorColor     = "#EF4444" // Red
	dimColor       = "#6B7280" // Gray
	cardColor      = "#1F2937"
)

// Style variables for consistent TUI rendering.
var (
	// BoxStyle provides a rounded border box with primary color.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(primaryColor)).
			Padding(1, 2)

	// TitleStyle renders titles in primary color with bold.
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor)).
			Bold(true)

	// ClockStyle renders the lock screen clock.
	ClockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F9FAFB")).
			Bold(true).
			Padding(1, 0)

	// CardStyle renders one notification.
	CardStyle = lipgloss.NewStyle().
			Background(lipgloss.Color(cardColor)).
			Foreground(lipgloss.Color("#E5E7EB")).
			Padding(0, 1).
			MarginBottom(1)

	// CardTitleStyle renders the sender line of a notification.
	CardTitleStyle = lipgloss.NewStyle().
			Background(lipgloss.Color(cardColor)).
			Foreground(lipgloss.Color(primaryColor)).
			Bold(true)

	// DimStyle renders dim/muted text.
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(dimColor))

	// SuccessStyle renders success messages in green.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(secondaryColor))

	// ErrorStyle renders error messages in red.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(errorColor))

	// WarningStyle renders warning messages in amber.
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(warningColor))
)

// TierStyle renders text in a tier's colour.
func TierStyle(color string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Bold(true)
}
