package results

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

func loadSample(t *testing.T) *Document {
	t.Helper()
	f, err := os.Open("testdata/project.json")
	if err != nil {
		t.Fatalf("opening sample: %v", err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	return doc
}

func TestDecode_Sample(t *testing.T) {
	doc := loadSample(t)

	if doc.Name != "github.com/hotolab/exago-svc" {
		t.Errorf("Name = %q", doc.Name)
	}
	want := time.Date(2016, 5, 1, 10, 0, 0, 0, time.UTC)
	if !doc.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", doc.Date, want)
	}
	if doc.ExecutionTime != 42 {
		t.Errorf("ExecutionTime = %d, want 42 (truncated)", doc.ExecutionTime)
	}
	if got := len(doc.Tests()); got != 2 {
		t.Errorf("len(Tests()) = %d, want 2", got)
	}
	if got := len(doc.CoveragePackages()); got != 2 {
		t.Errorf("len(CoveragePackages()) = %d, want 2", got)
	}
	if got := len(doc.ThirdParties()); got != 2 {
		t.Errorf("len(ThirdParties()) = %d, want 2", got)
	}
	if doc.Checklist() == nil {
		t.Fatal("Checklist() = nil")
	}
	if got := len(doc.Checklist().Failed); got != 2 {
		t.Errorf("len(Checklist().Failed) = %d, want 2", got)
	}
	if got := len(doc.ScoreDetails()); got != 2 {
		t.Errorf("len(ScoreDetails()) = %d, want 2", got)
	}
	if doc.DownloadError() != "" {
		t.Errorf("DownloadError() = %q, want empty", doc.DownloadError())
	}
}

func TestAccessors_NilSafe(t *testing.T) {
	docs := map[string]*Document{
		"nil document":  nil,
		"empty":         {},
		"empty runner":  {ProjectRunner: &ProjectRunner{}},
		"empty blocks":  {ProjectRunner: &ProjectRunner{Coverage: &CoverageResult{}, GoProve: &ChecklistResult{}}},
		"score no list": {Score: &Score{Value: 10}},
	}
	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			if doc.Tests() != nil {
				t.Error("Tests() should be nil")
			}
			if doc.CoveragePackages() != nil {
				t.Error("CoveragePackages() should be nil")
			}
			if doc.ThirdParties() != nil {
				t.Error("ThirdParties() should be nil")
			}
			if doc.Checklist() != nil {
				t.Error("Checklist() should be nil")
			}
			if doc.ScoreDetails() != nil {
				t.Error("ScoreDetails() should be nil")
			}
			if doc.DownloadError() != "" {
				t.Error("DownloadError() should be empty")
			}
		})
	}
}

func TestParse_DownloadError(t *testing.T) {
	doc, err := Parse([]byte(`{"projectrunner":{"download":{"error":"Could not download repository"}}}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if doc.DownloadError() != "Could not download repository" {
		t.Errorf("DownloadError() = %q", doc.DownloadError())
	}
}

func TestParse_NullBlocks(t *testing.T) {
	doc, err := Parse([]byte(`{"projectrunner":{"test":{"data":null},"coverage":{"data":null},"goprove":{"data":null}}}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if doc.Tests() != nil || doc.CoveragePackages() != nil || doc.Checklist() != nil {
		t.Error("null data blocks should read as absent")
	}
}

func TestParse_RejectsWrongTypes(t *testing.T) {
	cases := map[string]string{
		"coverage as string": `{"projectrunner":{"coverage":{"data":{"packages":[{"name":"a","coverage":"50"}]}}}}`,
		"passed as string":   `{"projectrunner":{"test":{"data":[{"name":"a","tests":[{"name":"T","passed":"yes"}]}]}}}`,
		"coverage over 100":  `{"projectrunner":{"coverage":{"data":{"packages":[{"name":"a","coverage":101}]}}}}`,
		"details not array":  `{"score":{"details":{}}}`,
		"not an object":      `[]`,
		"malformed":          `{"name":`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(payload))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrInvalidDocument) {
				t.Errorf("error should wrap ErrInvalidDocument, got: %v", err)
			}
		})
	}
}

func TestParse_RejectsBadExecutionTime(t *testing.T) {
	_, err := Parse([]byte(`{"executionTime":"soon"}`))
	if err == nil {
		t.Fatal("expected error for non-numeric executionTime")
	}
	if !strings.Contains(err.Error(), "executionTime") {
		t.Errorf("error should mention executionTime, got: %v", err)
	}
}

func TestSeconds_Forms(t *testing.T) {
	cases := map[string]Seconds{
		`{"executionTime":12}`:   12,
		`{"executionTime":12.9}`: 12,
		`{"executionTime":"7"}`:  7,
		`{"executionTime":""}`:   0,
		`{"executionTime":null}`: 0,
		`{"name":"no duration"}`: 0,
	}
	for payload, want := range cases {
		doc, err := Parse([]byte(payload))
		if err != nil {
			t.Errorf("Parse(%s) error: %v", payload, err)
			continue
		}
		if doc.ExecutionTime != want {
			t.Errorf("Parse(%s).ExecutionTime = %d, want %d", payload, doc.ExecutionTime, want)
		}
	}
	if got := Seconds(3).Duration(); got != 3*time.Second {
		t.Errorf("Duration() = %v, want 3s", got)
	}
}

func TestValidate_SchemaCompiles(t *testing.T) {
	if _, err := compiledSchema(); err != nil {
		t.Fatalf("schema does not compile: %v", err)
	}
}
