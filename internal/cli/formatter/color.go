package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/calebmorris/pacer/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// RiskStyle returns the style for a risk level: green ok, yellow warn,
// red late, dim for not-yet-started.
func RiskStyle(risk domain.RiskLevel) lipgloss.Style {
	switch risk {
	case domain.RiskLate:
		return StyleRed
	case domain.RiskWarn:
		return StyleYellow
	case domain.RiskOK:
		return StyleGreen
	default:
		return StyleDim
	}
}

// RiskBadge returns a colored indicator such as "● LATE".
func RiskBadge(risk domain.RiskLevel) string {
	switch risk {
	case domain.RiskLate:
		return StyleRed.Render("● LATE")
	case domain.RiskWarn:
		return StyleYellow.Render("● WARN")
	case domain.RiskOK:
		return StyleGreen.Render("● OK")
	default:
		return StyleDim.Render("● NOT STARTED")
	}
}

// StatusPill renders a task status label.
func StatusPill(status domain.TaskStatus) string {
	switch status {
	case domain.TaskDone:
		return StyleGreen.Render("done")
	case domain.TaskArchived:
		return StyleDim.Render("archived")
	default:
		return StyleBlue.Render("open")
	}
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the dim style.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in the bold foreground style.
func Bold(text string) string {
	return StyleBold.Render(text)
}
