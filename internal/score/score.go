// Package score formats numeric results for display.
//
// Scores collapse to integers when they have no fractional part;
// percentages always carry two decimals.
package score

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrInvalidScore is returned for NaN and infinite values.
var ErrInvalidScore = errors.New("invalid score")

// Format renders a score. Integer values are printed without
// decimals; anything else is rounded half away from zero to two
// decimals and printed with exactly two digits.
func Format(v float64) (string, error) {
	if err := check(v); err != nil {
		return "", err
	}
	if v == math.Trunc(v) {
		return strconv.FormatFloat(unsigned(v), 'f', -1, 64), nil
	}
	return strconv.FormatFloat(unsigned(math.Round(v*100)/100), 'f', 2, 64), nil
}

// Percent renders a percentage with exactly two decimals, integral
// or not (50 -> "50.00").
func Percent(v float64) (string, error) {
	if err := check(v); err != nil {
		return "", err
	}
	return strconv.FormatFloat(unsigned(v), 'f', 2, 64), nil
}

func check(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidScore, v)
	}
	return nil
}

// unsigned maps negative zero to zero so it never prints as "-0".
func unsigned(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}
