package report

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles defines the visual theme for terminal report output.
// Lipgloss automatically degrades to no-color when output is not a TTY.
type Styles struct {
	// Title is the report title line.
	Title lipgloss.Style

	// Header is used for card and chart headers.
	Header lipgloss.Style

	// SubHeader is used for secondary information lines.
	SubHeader lipgloss.Style

	// Score styles the headline score and rank.
	Score lipgloss.Style

	// TableHeader styles the header row of tables.
	TableHeader lipgloss.Style

	// TableCell styles regular table cells.
	TableCell lipgloss.Style

	// Pass styles passing tests and checklist entries.
	Pass lipgloss.Style

	// Fail styles failing tests and checklist entries.
	Fail lipgloss.Style

	// Warn styles middling coverage.
	Warn lipgloss.Style

	// Border is used for table borders.
	Border lipgloss.Style

	// Bar fills chart bars.
	Bar lipgloss.Style

	// Dialog frames the error dialog.
	Dialog lipgloss.Style

	// Error styles error messages.
	Error lipgloss.Style

	// Muted is used for de-emphasized text.
	Muted lipgloss.Style
}

// DefaultStyles returns the default color scheme for terminal reports.
func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		SubHeader: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Score:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75")),

		TableHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		TableCell:   lipgloss.NewStyle().PaddingRight(1),

		Pass: lipgloss.NewStyle().Foreground(lipgloss.Color("40")).Bold(true),
		Fail: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Warn: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),

		Border: lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
		Bar:    lipgloss.NewStyle().Foreground(lipgloss.Color("75")),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(0, 1),
		Error: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),

		Muted: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// CoverageStyle returns the style for a coverage percentage.
func (s Styles) CoverageStyle(pct float64) lipgloss.Style {
	switch {
	case pct >= 80:
		return s.Pass
	case pct >= 50:
		return s.Warn
	default:
		return s.Fail
	}
}

// Mark returns the styled pass/fail marker.
func (s Styles) Mark(passed bool) string {
	if passed {
		return s.Pass.Render("✓")
	}
	return s.Fail.Render("✗")
}
