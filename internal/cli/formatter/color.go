package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/neuroplan/internal/domain"
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

// Predefined lipgloss styles.
var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// SentimentColor returns the style used for a message sentiment label.
func SentimentColor(s domain.Sentiment) lipgloss.Style {
	switch s {
	case domain.SentimentOverwhelmed:
		return StyleRed
	case domain.SentimentStressed, domain.SentimentDemotivated:
		return StyleYellow
	case domain.SentimentPositive:
		return StyleGreen
	default:
		return StyleDim
	}
}

// SentimentBadge renders a sentiment as "● stressed". Neutral renders empty.
func SentimentBadge(s domain.Sentiment) string {
	if s == "" || s == domain.SentimentNeutral {
		return ""
	}
	return SentimentColor(s).Render("● " + string(s))
}

// LevelBadge renders a goal level with increasing emphasis.
func LevelBadge(l domain.Level) string {
	switch l {
	case domain.LevelBeginner:
		return StyleGreen.Render("Beginner")
	case domain.LevelIntermediate:
		return StyleYellow.Render("Intermediate")
	case domain.LevelAdvanced:
		return StyleRed.Render("Advanced")
	default:
		return StyleDim.Render(string(l))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
