package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Health bar colors, matching the tiers of health.Color.
var (
	ColorThriving = lipgloss.Color("#00ff00")
	ColorStable   = lipgloss.Color("#99e600")
	ColorFading   = lipgloss.Color("#ffbf00")
	ColorGhosted  = lipgloss.Color("#ff5500")
	ColorDead     = lipgloss.Color("#ff0000")
	ColorMuted    = lipgloss.Color("#888888")
	ColorPrimary  = lipgloss.Color("#b39ddb")
)

var (
	// StyleHeader is used for section headers.
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	// StyleMuted is used for de-emphasized text.
	StyleMuted = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleLabel is used for field labels.
	StyleLabel = lipgloss.NewStyle().
			Width(16)

	noColor bool
)

// SetNoColor disables or enables lipgloss styling.
func SetNoColor(disabled bool) {
	noColor = disabled
	if disabled {
		plain := lipgloss.NewStyle()
		StyleHeader = plain
		StyleMuted = plain
		StyleLabel = plain.Width(16)
	}
}

func barColor(score int) lipgloss.Color {
	switch {
	case score >= 80:
		return ColorThriving
	case score >= 60:
		return ColorStable
	case score >= 40:
		return ColorFading
	case score >= 20:
		return ColorGhosted
	default:
		return ColorDead
	}
}

// HealthBar renders score (0-100) as a bar width cells wide.
func HealthBar(score, width int) string {
	score = max(0, min(score, 100))
	filled := score * width / 100
	bar := strings.Repeat("█", filled)
	rest := strings.Repeat("░", width-filled)
	if noColor {
		return bar + rest
	}
	return lipgloss.NewStyle().Foreground(barColor(score)).Render(bar) + StyleMuted.Render(rest)
}
