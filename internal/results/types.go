// Package results defines the analysis results document produced by
// the exago project runner, along with decoding and JSON Schema
// validation for it.
//
// Every block of the document is optional. A nil pointer and an empty
// array both mean "no data" for the corresponding report section.
package results

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Document is the full analysis payload for one repository snapshot.
type Document struct {
	// Name is the repository import path (e.g. "github.com/org/repo").
	Name string `json:"name,omitempty"`

	// Date is when the analysis finished.
	Date time.Time `json:"date"`

	// ExecutionTime is how long the last analysis took.
	ExecutionTime Seconds `json:"executionTime,omitempty"`

	// Score is the overall score and its breakdown.
	Score *Score `json:"score,omitempty"`

	// ProjectRunner holds the raw output of every runner.
	ProjectRunner *ProjectRunner `json:"projectrunner,omitempty"`
}

// Score is the aggregated project score.
type Score struct {
	Value   float64       `json:"value"`
	Rank    string        `json:"rank,omitempty"`
	Details []ScoreDetail `json:"details,omitempty"`
}

// ScoreDetail is one evaluator's contribution to the score.
type ScoreDetail struct {
	// Name is the evaluator category (e.g. "coverage").
	Name  string  `json:"name"`
	Desc  string  `json:"desc"`
	Msg   string  `json:"msg"`
	Score float64 `json:"score"`
}

// ProjectRunner groups the output of the individual runners.
type ProjectRunner struct {
	Download     *Download         `json:"download,omitempty"`
	Test         *TestResult       `json:"test,omitempty"`
	Coverage     *CoverageResult   `json:"coverage,omitempty"`
	ThirdParties *ThirdPartyResult `json:"thirdparties,omitempty"`
	GoProve      *ChecklistResult  `json:"goprove,omitempty"`
}

// Download reports the outcome of fetching the repository sources.
type Download struct {
	Error string `json:"error,omitempty"`
}

// TestResult wraps the per-package test output.
type TestResult struct {
	Data []TestPackage `json:"data"`
}

// TestPackage is the test run of a single Go package.
type TestPackage struct {
	Name string `json:"name"`

	// ExecutionTime is the package run time in seconds.
	ExecutionTime float64 `json:"execution_time"`

	Tests []Test `json:"tests"`
}

// Test is a single test function outcome.
type Test struct {
	Name          string  `json:"name"`
	ExecutionTime float64 `json:"execution_time"`
	Passed        bool    `json:"passed"`
}

// CoverageResult wraps the coverage output.
type CoverageResult struct {
	Data *CoverageData `json:"data,omitempty"`
}

// CoverageData holds the per-package coverage list.
type CoverageData struct {
	Packages []CoveragePackage `json:"packages"`
}

// CoveragePackage is the statement coverage of one package.
type CoveragePackage struct {
	Name string `json:"name"`

	// Coverage is a percentage in the range 0-100.
	Coverage float64 `json:"coverage"`
}

// ThirdPartyResult wraps the dependency list.
type ThirdPartyResult struct {
	Data []ThirdParty `json:"data"`
}

// ThirdParty is an opaque dependency descriptor. Its shape belongs to
// the third-party runner and is passed through untouched.
type ThirdParty = json.RawMessage

// ChecklistResult wraps the goprove checklist.
type ChecklistResult struct {
	Data *Checklist `json:"data,omitempty"`
}

// Checklist is the goprove pass/fail audit of project conventions.
type Checklist struct {
	Passed []ChecklistItem `json:"passed"`
	Failed []ChecklistItem `json:"failed"`
}

// ChecklistItem is a single goprove rule.
type ChecklistItem struct {
	// Category is one of "minimumCriteria", "goodCitizen" or
	// "extraCredit".
	Category string `json:"category"`
	Desc     string `json:"desc"`
}

// Tests returns the test packages, or nil when the test block is
// absent.
func (d *Document) Tests() []TestPackage {
	if d == nil || d.ProjectRunner == nil || d.ProjectRunner.Test == nil {
		return nil
	}
	return d.ProjectRunner.Test.Data
}

// CoveragePackages returns the coverage list, or nil when absent.
func (d *Document) CoveragePackages() []CoveragePackage {
	if d == nil || d.ProjectRunner == nil || d.ProjectRunner.Coverage == nil ||
		d.ProjectRunner.Coverage.Data == nil {
		return nil
	}
	return d.ProjectRunner.Coverage.Data.Packages
}

// ThirdParties returns the dependency descriptors, or nil when absent.
func (d *Document) ThirdParties() []ThirdParty {
	if d == nil || d.ProjectRunner == nil || d.ProjectRunner.ThirdParties == nil {
		return nil
	}
	return d.ProjectRunner.ThirdParties.Data
}

// Checklist returns the goprove checklist, or nil when absent.
func (d *Document) Checklist() *Checklist {
	if d == nil || d.ProjectRunner == nil || d.ProjectRunner.GoProve == nil {
		return nil
	}
	return d.ProjectRunner.GoProve.Data
}

// ScoreDetails returns the score breakdown, or nil when absent.
func (d *Document) ScoreDetails() []ScoreDetail {
	if d == nil || d.Score == nil {
		return nil
	}
	return d.Score.Details
}

// DownloadError returns the project runner's download failure
// message, or "" when the sources were fetched.
func (d *Document) DownloadError() string {
	if d == nil || d.ProjectRunner == nil || d.ProjectRunner.Download == nil {
		return ""
	}
	return d.ProjectRunner.Download.Error
}

// Seconds is a whole number of seconds. It decodes from a JSON number
// or a numeric string; fractional parts are truncated.
type Seconds int64

// UnmarshalJSON implements json.Unmarshaler.
func (s *Seconds) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*s = 0
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		raw = strings.TrimSpace(str)
		if raw == "" {
			*s = 0
			return nil
		}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("executionTime %q is not a number of seconds", raw)
	}
	*s = Seconds(math.Trunc(v))
	return nil
}

// Duration converts s to a time.Duration.
func (s Seconds) Duration() time.Duration {
	return time.Duration(s) * time.Second
}
