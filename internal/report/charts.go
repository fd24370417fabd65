package report

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hotolab/exago-app/internal/sections"
)

// barWidth is the number of cells of a full chart bar.
const barWidth = 30

// maxLabel caps the label column of a chart.
const maxLabel = 36

type bar struct {
	label string
	value float64
	text  string
	style lipgloss.Style
}

// Charts renders the test duration and coverage charts of p.
func Charts(p *sections.Page) string {
	s := DefaultStyles()
	if !p.HasCharts() {
		return s.Muted.Render("No chart data.")
	}

	var parts []string
	if p.TestDurations != nil {
		bars := make([]bar, 0, len(p.TestDurations))
		peak := 0.0
		for _, r := range p.TestDurations {
			bars = append(bars, bar{label: r.Name, value: r.DurationSeconds, text: seconds(r.DurationSeconds), style: s.Bar})
			peak = math.Max(peak, r.DurationSeconds)
		}
		parts = append(parts, titled(s, "Test Duration by Package", barChart(bars, peak)))
	}
	if p.Coverage != nil {
		bars := make([]bar, 0, len(p.Coverage))
		for _, r := range p.Coverage {
			bars = append(bars, bar{label: r.Name, value: r.Coverage, text: r.Percent + "%", style: s.CoverageStyle(r.Coverage)})
		}
		parts = append(parts, titled(s, "Coverage by Package", barChart(bars, 100)))
	}
	return strings.Join(parts, "\n\n")
}

func barChart(bars []bar, peak float64) string {
	width := 0
	for _, b := range bars {
		width = max(width, min(lipgloss.Width(b.label), maxLabel))
	}

	lines := make([]string, 0, len(bars))
	for _, b := range bars {
		n := barLength(b.value, peak)
		lines = append(lines, padRight(truncate(b.label, maxLabel), width)+" "+
			b.style.Render(strings.Repeat("█", n))+strings.Repeat(" ", barWidth-n)+" "+b.text)
	}
	return strings.Join(lines, "\n")
}

// barLength scales value against peak. Non-zero values always get at
// least one cell.
func barLength(value, peak float64) int {
	if peak <= 0 || value <= 0 || math.IsNaN(value) {
		return 0
	}
	n := int(math.Round(value / peak * barWidth))
	return max(1, min(n, barWidth))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return "…" + string(r[len(r)-n+1:])
}

func padRight(s string, n int) string {
	if w := lipgloss.Width(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}

