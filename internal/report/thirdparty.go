package report

import (
	"bytes"
	"encoding/json"

	"github.com/hotolab/exago-app/internal/results"
)

// ThirdPartyRenderer turns opaque dependency descriptors into display
// lines. The descriptor shape belongs to the third-party runner, so
// the report delegates instead of interpreting it.
type ThirdPartyRenderer interface {
	RenderThirdParties(deps []results.ThirdParty) []string
}

// DefaultThirdParties renders bare strings unquoted, objects by their
// "name" or "path" field, and anything else as compact JSON.
var DefaultThirdParties ThirdPartyRenderer = defaultThirdParties{}

type defaultThirdParties struct{}

func (defaultThirdParties) RenderThirdParties(deps []results.ThirdParty) []string {
	lines := make([]string, 0, len(deps))
	for _, d := range deps {
		lines = append(lines, describeThirdParty(d))
	}
	return lines
}

func describeThirdParty(raw results.ThirdParty) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil {
		for _, key := range []string{"name", "path"} {
			if v, ok := obj[key]; ok {
				if err := json.Unmarshal(v, &s); err == nil && s != "" {
					return s
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
