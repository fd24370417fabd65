// Package sections shapes a results document into the rows of each
// report section.
//
// Every builder checks for data before formatting anything. A nil
// return means the section has nothing to show and must not be
// rendered; this holds identically whether the backing field is
// absent or empty. Builders keep no state and never modify the
// document, so calling them twice yields equal output.
package sections

import (
	"fmt"

	"github.com/hotolab/exago-app/internal/checklist"
	"github.com/hotolab/exago-app/internal/results"
	"github.com/hotolab/exago-app/internal/score"
)

// TestRow is one test function in the flattened test list.
type TestRow struct {
	Name            string  `json:"name"`
	DurationSeconds float64 `json:"duration_seconds"`
	Passed          bool    `json:"passed"`
}

// PackageDurationRow is the total test time of one package.
type PackageDurationRow struct {
	Name            string  `json:"name"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// CoverageRow is the coverage of one package. Percent is always
// rendered with two decimals.
type CoverageRow struct {
	Name     string  `json:"name"`
	Coverage float64 `json:"coverage"`
	Percent  string  `json:"percent"`
}

// ScoreRow is one line of the score breakdown.
type ScoreRow struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Message     string `json:"message"`
	Score       string `json:"score"`
}

// ChecklistSection is the goprove checklist split into its buckets.
type ChecklistSection struct {
	checklist.Buckets
}

// TestList flattens every package's tests into a single list,
// preserving package order and then test order within each package.
func TestList(doc *results.Document) []TestRow {
	pkgs := doc.Tests()
	if len(pkgs) == 0 {
		return nil
	}
	rows := make([]TestRow, 0, len(pkgs))
	for _, pkg := range pkgs {
		for _, t := range pkg.Tests {
			rows = append(rows, TestRow{
				Name:            t.Name,
				DurationSeconds: t.ExecutionTime,
				Passed:          t.Passed,
			})
		}
	}
	return rows
}

// TestDurationByPackage returns one row per test package.
func TestDurationByPackage(doc *results.Document) []PackageDurationRow {
	pkgs := doc.Tests()
	if len(pkgs) == 0 {
		return nil
	}
	rows := make([]PackageDurationRow, 0, len(pkgs))
	for _, pkg := range pkgs {
		rows = append(rows, PackageDurationRow{
			Name:            pkg.Name,
			DurationSeconds: pkg.ExecutionTime,
		})
	}
	return rows
}

// CoverageByPackage returns one row per covered package.
func CoverageByPackage(doc *results.Document) ([]CoverageRow, error) {
	pkgs := doc.CoveragePackages()
	if len(pkgs) == 0 {
		return nil, nil
	}
	rows := make([]CoverageRow, 0, len(pkgs))
	for _, pkg := range pkgs {
		pct, err := score.Percent(pkg.Coverage)
		if err != nil {
			return nil, fmt.Errorf("package %s: %w", pkg.Name, err)
		}
		rows = append(rows, CoverageRow{
			Name:     pkg.Name,
			Coverage: pkg.Coverage,
			Percent:  pct,
		})
	}
	return rows, nil
}

// ScoreDetails returns the score breakdown rows.
func ScoreDetails(doc *results.Document) ([]ScoreRow, error) {
	details := doc.ScoreDetails()
	if len(details) == 0 {
		return nil, nil
	}
	rows := make([]ScoreRow, 0, len(details))
	for _, d := range details {
		s, err := score.Format(d.Score)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.Name, err)
		}
		rows = append(rows, ScoreRow{
			Category:    d.Name,
			Description: d.Desc,
			Message:     d.Msg,
			Score:       s,
		})
	}
	return rows, nil
}

// ThirdParties returns the dependency descriptors unchanged. Their
// presentation belongs to the third-party renderer.
func ThirdParties(doc *results.Document) []results.ThirdParty {
	deps := doc.ThirdParties()
	if len(deps) == 0 {
		return nil
	}
	return deps
}

// Checklist sorts the goprove checklist into its three buckets.
func Checklist(doc *results.Document) (*ChecklistSection, error) {
	c := doc.Checklist()
	if c == nil || len(c.Passed)+len(c.Failed) == 0 {
		return nil, nil
	}
	b, err := checklist.Sort(c)
	if err != nil {
		return nil, err
	}
	return &ChecklistSection{Buckets: b}, nil
}
