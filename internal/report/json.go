// Package report renders a report page as styled terminal text or as
// JSON.
package report

import (
	"encoding/json"
	"io"

	"github.com/hotolab/exago-app/internal/sections"
)

// JSONReport is the top-level JSON output structure.
type JSONReport struct {
	Version       string         `json:"version"`
	Title         string         `json:"title"`
	BadgeURL      string         `json:"badge_url,omitempty"`
	Report        *sections.Page `json:"report"`
	SectionErrors []string       `json:"section_errors,omitempty"`
}

// WriteJSON writes the page as formatted JSON to the writer.
func WriteJSON(w io.Writer, p *sections.Page, opts Options) error {
	version := opts.Version
	if version == "" {
		version = "dev"
	}
	report := JSONReport{
		Version:  version,
		Title:    sections.Title(p.Name),
		BadgeURL: opts.BadgeURL,
		Report:   p,
	}
	for _, err := range p.SectionErrors {
		report.SectionErrors = append(report.SectionErrors, err.Error())
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
