package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color definitions using AdaptiveColor for automatic light/dark mode switching
var (
	SuccessColor = lipgloss.AdaptiveColor{
		Light: "#28A745", // Green
		Dark:  "#4CDD76",
	}

	ErrorColor = lipgloss.AdaptiveColor{
		Light: "#DC3545", // Red
		Dark:  "#FF6B7D",
	}

	WarningColor = lipgloss.AdaptiveColor{
		Light: "#FFC107", // Amber
		Dark:  "#FFD54F",
	}

	InfoColor = lipgloss.AdaptiveColor{
		Light: "#17A2B8", // Cyan
		Dark:  "#4DD0E1",
	}

	PathColor = lipgloss.AdaptiveColor{
		Light: "#6C757D", // Gray
		Dark:  "#A0A8B0",
	}
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	pathStyle = lipgloss.NewStyle().
			Foreground(PathColor).
			Italic(true)
)

// Path styles a filesystem path for inline display
func Path(p string) string {
	return pathStyle.Render(p)
}
