package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/hotolab/exago-app/internal/results"
	"github.com/hotolab/exago-app/internal/sections"
)

// Options controls how a page is rendered.
type Options struct {
	// Charts renders the chart sections after the cards.
	Charts bool

	// BadgeURL is shown in the header when set.
	BadgeURL string

	// Now anchors the "Updated ... ago" line. Zero means time.Now.
	Now time.Time

	// ThirdParties renders dependency descriptors. Nil means
	// DefaultThirdParties.
	ThirdParties ThirdPartyRenderer

	// Version is stamped into JSON output.
	Version string
}

func (o Options) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

func (o Options) thirdParties() ThirdPartyRenderer {
	if o.ThirdParties == nil {
		return DefaultThirdParties
	}
	return o.ThirdParties
}

// WriteText writes the page as human-readable styled text to the
// writer. A project runner download error is shown as a dialog above
// the report.
func WriteText(w io.Writer, p *sections.Page, opts Options) error {
	var b strings.Builder
	if p.DownloadError != "" {
		b.WriteString(Dialog("Download failed", p.DownloadError, ""))
		b.WriteString("\n\n")
	}
	b.WriteString(Render(p, opts))
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// Render returns the header, the cards and, when opts.Charts is set,
// the charts of p.
func Render(p *sections.Page, opts Options) string {
	s := DefaultStyles()
	var b strings.Builder

	b.WriteString(Header(p, opts))

	if p.Empty() {
		b.WriteString("\n\n")
		b.WriteString(s.Muted.Render("No results to display."))
	}
	for _, card := range cards(p, opts, s) {
		b.WriteString("\n\n")
		b.WriteString(card)
	}

	if opts.Charts {
		b.WriteString("\n\n")
		b.WriteString(Charts(p))
	}
	return b.String()
}

// Header renders the title, the score, the badge and the update time.
func Header(p *sections.Page, opts Options) string {
	s := DefaultStyles()
	lines := []string{s.Title.Render(sections.Title(p.Name))}

	if p.Score != nil {
		line := "Score " + s.Score.Render(p.Score.Value)
		if p.Score.Rank != "" {
			line += "  Rank " + s.Score.Render(p.Score.Rank)
		}
		lines = append(lines, line)
	}
	if opts.BadgeURL != "" {
		lines = append(lines, s.SubHeader.Render("Badge "+opts.BadgeURL))
	}
	if !p.Date.IsZero() {
		lines = append(lines, s.SubHeader.Render("Updated "+humanize.RelTime(p.Date, opts.now(), "ago", "from now")))
	}
	return strings.Join(lines, "\n")
}

func cards(p *sections.Page, opts Options, s Styles) []string {
	var out []string
	if p.Tests != nil {
		out = append(out, titled(s, "Tests", testsTable(p.Tests, s)))
	}
	if p.Coverage != nil {
		out = append(out, titled(s, "Coverage", coverageTable(p.Coverage, s)))
	}
	if p.Checklist != nil {
		out = append(out, titled(s, "Checklist", checklistCard(p.Checklist, s)))
	}
	if p.ThirdParties != nil {
		out = append(out, titled(s, "Third Parties", thirdPartiesCard(p.ThirdParties, opts.thirdParties())))
	}
	if p.ScoreDetails != nil {
		out = append(out, titled(s, "Score Details", scoreTable(p.ScoreDetails, s)))
	}
	return out
}

func titled(s Styles, title, body string) string {
	return s.Header.Render("=== "+title+" ===") + "\n" + body
}

func newTable(s Styles, style func(row, col int) lipgloss.Style) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.TableHeader
			}
			if style != nil {
				return style(row, col)
			}
			return s.TableCell
		})
}

func seconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "s"
}

func testsTable(rows []sections.TestRow, s Styles) string {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		result := "PASS"
		if !r.Passed {
			result = "FAIL"
		}
		cells = append(cells, []string{r.Name, seconds(r.DurationSeconds), result})
	}
	t := newTable(s, func(row, col int) lipgloss.Style {
		if col == 2 && row >= 0 && row < len(rows) {
			if rows[row].Passed {
				return s.Pass
			}
			return s.Fail
		}
		return s.TableCell
	})
	return t.Headers("TEST", "DURATION", "PASSED").Rows(cells...).String()
}

func coverageTable(rows []sections.CoverageRow, s Styles) string {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{r.Name, r.Percent + "%"})
	}
	t := newTable(s, func(row, col int) lipgloss.Style {
		if col == 1 && row >= 0 && row < len(rows) {
			return s.CoverageStyle(rows[row].Coverage)
		}
		return s.TableCell
	})
	return t.Headers("PACKAGE", "COVERAGE").Rows(cells...).String()
}

func checklistCard(c *sections.ChecklistSection, s Styles) string {
	var parts []string
	for _, bucket := range c.Sections() {
		lines := []string{s.SubHeader.Render(bucket.Title)}
		if len(bucket.Items) == 0 {
			lines = append(lines, "  "+s.Muted.Render("none"))
		}
		for _, item := range bucket.Items {
			lines = append(lines, "  "+s.Mark(item.Passed)+" "+item.Desc)
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}
	return strings.Join(parts, "\n")
}

func thirdPartiesCard(deps []results.ThirdParty, r ThirdPartyRenderer) string {
	lines := r.RenderThirdParties(deps)
	for i, l := range lines {
		lines[i] = "  • " + l
	}
	return strings.Join(lines, "\n")
}

func scoreTable(rows []sections.ScoreRow, s Styles) string {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{r.Category, r.Description, r.Message, r.Score})
	}
	return newTable(s, nil).
		Headers("CATEGORY", "DESCRIPTION", "MESSAGE", "SCORE").
		Rows(cells...).
		String()
}

// Dialog renders a framed error message. footer, when set, is shown
// muted below the message.
func Dialog(title, message, footer string) string {
	s := DefaultStyles()
	body := s.Fail.Render(title) + "\n" + message
	if footer != "" {
		body += "\n\n" + s.Muted.Render(footer)
	}
	return s.Dialog.Render(body)
}

// Loading renders the loading screen. expected is the duration of the
// previous analysis, 0 when unknown.
func Loading(repository string, expected results.Seconds) string {
	s := DefaultStyles()
	lines := []string{
		s.Title.Render(sections.Title(repository)),
		"",
		"Loading results...",
	}
	if expected > 0 {
		lines = append(lines, s.Muted.Render(fmt.Sprintf("The last analysis took about %s.", expected.Duration())))
	}
	return strings.Join(lines, "\n")
}

// ErrorView renders the failed-load screen.
func ErrorView(repository string, err error) string {
	s := DefaultStyles()
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return strings.Join([]string{
		s.Title.Render(sections.Title(repository)),
		"",
		s.Error.Render("Something went wrong!"),
		msg,
	}, "\n")
}
