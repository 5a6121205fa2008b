package topics

import (
	"github.com/charmbracelet/lipgloss"
)

// Listing styles. AdaptiveColor keeps the output readable on both
// light and dark terminals; lipgloss drops the color entirely when
// stdout is not a terminal.
var (
	headingColor = lipgloss.AdaptiveColor{
		Light: "#212529",
		Dark:  "#F8F9FA",
	}

	mutedColor = lipgloss.AdaptiveColor{
		Light: "#6C757D",
		Dark:  "#ADB5BD",
	}

	titleStyle = lipgloss.NewStyle().
			Foreground(headingColor).
			Bold(true)

	itemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)
)
