package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/bizbook/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// AmountStyle colors positive amounts green and negative ones red.
func AmountStyle(a domain.Amount) lipgloss.Style {
	switch a.Sign() {
	case 1:
		return StyleGreen
	case -1:
		return StyleRed
	default:
		return StyleDim
	}
}

// StageColor returns the color of a pipeline stage.
func StageColor(s domain.Stage) lipgloss.Color {
	switch s {
	case domain.StageLead:
		return ColorBlue
	case domain.StageProposal:
		return ColorPurple
	case domain.StageNegotiation:
		return ColorYellow
	case domain.StageWon:
		return ColorGreen
	case domain.StageLost:
		return ColorRed
	default:
		return ColorDim
	}
}

// StagePill returns a colored stage indicator such as "● Won".
func StagePill(s domain.Stage) string {
	return lipgloss.NewStyle().Foreground(StageColor(s)).Render("● " + string(s))
}

// TypeBadge returns "▲ revenue" or "▼ expense" in the matching color.
func TypeBadge(t domain.TransactionType) string {
	switch t {
	case domain.TypeRevenue:
		return StyleGreen.Render("▲ revenue")
	case domain.TypeExpense:
		return StyleRed.Render("▼ expense")
	default:
		return StyleDim.Render(string(t))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}

// Warning renders a yellow "warning:" line.
func Warning(text string) string {
	return StyleYellow.Render("warning: ") + text
}
