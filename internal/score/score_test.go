package score

import (
	"errors"
	"math"
	"testing"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{4, "4"},
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{-3, "-3"},
		{100, "100"},
		{3.14159, "3.14"},
		{3.1, "3.10"},
		{2.675, "2.68"},
		{0.125, "0.13"},
		{-1.005, "-1.00"},
		{-0.001, "0.00"},
		{99.999, "100.00"},
	}
	for _, tc := range cases {
		got, err := Format(tc.in)
		if err != nil {
			t.Errorf("Format(%v) error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Format(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormat_RejectsNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := Format(v)
		if !errors.Is(err, ErrInvalidScore) {
			t.Errorf("Format(%v) error = %v, want ErrInvalidScore", v, err)
		}
	}
}

func TestPercent_AlwaysTwoDecimals(t *testing.T) {
	cases := map[float64]string{
		50:     "50.00",
		0:      "0.00",
		100:    "100.00",
		87.456: "87.46",
		33.3:   "33.30",
	}
	for in, want := range cases {
		got, err := Percent(in)
		if err != nil {
			t.Errorf("Percent(%v) error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("Percent(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestPercent_DiffersFromFormatOnIntegers(t *testing.T) {
	s, _ := Format(50)
	p, _ := Percent(50)
	if s == p {
		t.Errorf("Format and Percent should differ for integers, both gave %q", s)
	}
}

func TestPercent_RejectsNaN(t *testing.T) {
	if _, err := Percent(math.NaN()); !errors.Is(err, ErrInvalidScore) {
		t.Errorf("Percent(NaN) error = %v, want ErrInvalidScore", err)
	}
}
