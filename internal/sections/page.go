package sections

import (
	"errors"
	"fmt"
	"time"

	"github.com/hotolab/exago-app/internal/results"
	"github.com/hotolab/exago-app/internal/score"
)

// Page is every section of one project report, ready to render.
// Nil fields are sections without data.
type Page struct {
	Name          string        `json:"name"`
	Date          time.Time     `json:"date"`
	Score         *ScoreSummary `json:"score,omitempty"`
	DownloadError string        `json:"download_error,omitempty"`

	Tests        []TestRow            `json:"tests,omitempty"`
	Coverage     []CoverageRow        `json:"coverage,omitempty"`
	Checklist    *ChecklistSection    `json:"checklist,omitempty"`
	ThirdParties []results.ThirdParty `json:"thirdparties,omitempty"`
	ScoreDetails []ScoreRow           `json:"score_details,omitempty"`

	// TestDurations feeds the per-package duration chart.
	TestDurations []PackageDurationRow `json:"test_durations,omitempty"`

	// SectionErrors lists sections left empty because their data
	// could not be formatted.
	SectionErrors []error `json:"-"`
}

// ScoreSummary is the headline score.
type ScoreSummary struct {
	Value string `json:"value"`
	Rank  string `json:"rank,omitempty"`
}

// Title returns the report title for a repository.
func Title(repository string) string {
	return "Code Quality Report for " + repository
}

// Empty reports whether no card section has data.
func (p *Page) Empty() bool {
	return p.Tests == nil && p.Coverage == nil && p.Checklist == nil &&
		p.ThirdParties == nil && p.ScoreDetails == nil
}

// HasCharts reports whether at least one chart has data.
func (p *Page) HasCharts() bool {
	return p.TestDurations != nil || p.Coverage != nil
}

// Build assembles every section of doc. A section whose values
// cannot be formatted is left empty and its error recorded in
// SectionErrors. A checklist with an unknown category fails the whole
// build.
func Build(doc *results.Document) (*Page, error) {
	if doc == nil {
		return nil, errors.New("no results document")
	}

	p := &Page{
		Name:          doc.Name,
		Date:          doc.Date,
		DownloadError: doc.DownloadError(),
		Tests:         TestList(doc),
		ThirdParties:  ThirdParties(doc),
		TestDurations: TestDurationByPackage(doc),
	}

	var err error
	if p.Checklist, err = Checklist(doc); err != nil {
		return nil, fmt.Errorf("checklist: %w", err)
	}

	if doc.Score != nil {
		if v, err := score.Format(doc.Score.Value); err != nil {
			p.SectionErrors = append(p.SectionErrors, fmt.Errorf("score: %w", err))
		} else {
			p.Score = &ScoreSummary{Value: v, Rank: doc.Score.Rank}
		}
	}
	if p.Coverage, err = CoverageByPackage(doc); err != nil {
		p.SectionErrors = append(p.SectionErrors, fmt.Errorf("coverage: %w", err))
	}
	if p.ScoreDetails, err = ScoreDetails(doc); err != nil {
		p.SectionErrors = append(p.SectionErrors, fmt.Errorf("score details: %w", err))
	}

	return p, nil
}
