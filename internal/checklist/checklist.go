// Package checklist partitions a goprove checklist into its three
// fixed categories.
package checklist

import (
	"errors"
	"fmt"

	"github.com/hotolab/exago-app/internal/results"
)

// ErrUnknownCategory is returned when a checklist entry names a
// category outside the three known ones.
var ErrUnknownCategory = errors.New("unknown checklist category")

// Category names as they appear in the results document.
const (
	MinimumCriteria = "minimumCriteria"
	GoodCitizen     = "goodCitizen"
	ExtraCredit     = "extraCredit"
)

// Item is one rendered checklist row.
type Item struct {
	Desc   string `json:"desc"`
	Passed bool   `json:"passed"`
}

// Buckets holds the checklist entries grouped by category. Within a
// bucket, passed entries come first, then failed ones, each in the
// order they appear in the document.
type Buckets struct {
	MinimumCriteria []Item `json:"minimumCriteria"`
	GoodCitizen     []Item `json:"goodCitizen"`
	ExtraCredit     []Item `json:"extraCredit"`
}

// Bucket is a titled view of one category, for rendering.
type Bucket struct {
	Category string
	Title    string
	Items    []Item
}

// Sections returns the three buckets in display order.
func (b Buckets) Sections() []Bucket {
	return []Bucket{
		{Category: MinimumCriteria, Title: "Minimum Criteria", Items: b.MinimumCriteria},
		{Category: GoodCitizen, Title: "Good Citizen", Items: b.GoodCitizen},
		{Category: ExtraCredit, Title: "Extra Credit", Items: b.ExtraCredit},
	}
}

// Len returns the total number of entries across all buckets.
func (b Buckets) Len() int {
	return len(b.MinimumCriteria) + len(b.GoodCitizen) + len(b.ExtraCredit)
}

// Sort partitions c into buckets. A nil checklist yields empty
// buckets. The input is not modified.
func Sort(c *results.Checklist) (Buckets, error) {
	b := Buckets{
		MinimumCriteria: []Item{},
		GoodCitizen:     []Item{},
		ExtraCredit:     []Item{},
	}
	if c == nil {
		return b, nil
	}
	if err := b.appendAll(c.Passed, true); err != nil {
		return Buckets{}, err
	}
	if err := b.appendAll(c.Failed, false); err != nil {
		return Buckets{}, err
	}
	return b, nil
}

func (b *Buckets) appendAll(entries []results.ChecklistItem, passed bool) error {
	for i, e := range entries {
		dst, err := b.bucket(e.Category)
		if err != nil {
			list := "failed"
			if passed {
				list = "passed"
			}
			return fmt.Errorf("%s[%d] %q: %w", list, i, e.Desc, err)
		}
		*dst = append(*dst, Item{Desc: e.Desc, Passed: passed})
	}
	return nil
}

func (b *Buckets) bucket(category string) (*[]Item, error) {
	switch category {
	case MinimumCriteria:
		return &b.MinimumCriteria, nil
	case GoodCitizen:
		return &b.GoodCitizen, nil
	case ExtraCredit:
		return &b.ExtraCredit, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownCategory, category)
	}
}
