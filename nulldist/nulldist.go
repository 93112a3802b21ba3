// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package nulldist implements the comparison
// of an observed score
// against an empirical null distribution.
//
// Scores are distances,
// so a score smaller than the observed one
// is a better score.
package nulldist

import (
	"errors"
	"fmt"
	"io"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrInvalidInput is returned when the values
// of a comparison are invalid.
var ErrInvalidInput = errors.New("invalid input")

// A Report is the result of the comparison
// of an observed score
// with a null distribution.
type Report struct {
	Size     int     // declared size of the null distribution
	Observed float64 // observed score

	Better        int // null scores smaller than the observed score
	Worse         int // null scores greater than the observed score
	Equal         int // null scores equal to the observed score
	BetterOrEqual int

	PValue      float64 // Better / Size
	PValueEqual float64 // BetterOrEqual / Size

	Max  float64
	Min  float64
	Mean float64
	SD   float64 // sample standard deviation

	Q05, Q50, Q95 float64 // empirical quantiles
}

// Compare compares an observed score
// with a null distribution.
//
// Size is the declared number of samples
// in the null distribution,
// and must be equal to the number of values in null.
func Compare(null []float64, observed float64, size int) (Report, error) {
	if size <= 0 {
		return Report{}, fmt.Errorf("%w: null distribution size %d", ErrInvalidInput, size)
	}
	if len(null) == 0 {
		return Report{}, fmt.Errorf("%w: empty null distribution", ErrInvalidInput)
	}
	if len(null) != size {
		return Report{}, fmt.Errorf("%w: null distribution size %d, got %d values", ErrInvalidInput, size, len(null))
	}
	if math.IsNaN(observed) {
		return Report{}, fmt.Errorf("%w: undefined observed score", ErrInvalidInput)
	}
	if floats.HasNaN(null) {
		return Report{}, fmt.Errorf("%w: undefined value in null distribution", ErrInvalidInput)
	}

	r := Report{
		Size:     size,
		Observed: observed,
	}
	for _, v := range null {
		switch {
		case v < observed:
			r.Better++
		case v > observed:
			r.Worse++
		default:
			r.Equal++
		}
	}
	r.BetterOrEqual = r.Better + r.Equal
	r.PValue = float64(r.Better) / float64(size)
	r.PValueEqual = float64(r.BetterOrEqual) / float64(size)

	r.Max = floats.Max(null)
	r.Min = floats.Min(null)
	r.Mean, r.SD = stat.MeanStdDev(null, nil)
	if len(null) < 2 {
		r.SD = 0
	}

	sorted := slices.Clone(null)
	slices.Sort(sorted)
	r.Q05 = stat.Quantile(0.05, stat.Empirical, sorted, nil)
	r.Q50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	r.Q95 = stat.Quantile(0.95, stat.Empirical, sorted, nil)

	return r, nil
}

// Write writes a report
// as human readable text.
func (r Report) Write(w io.Writer) error {
	lines := []struct {
		label string
		value string
	}{
		{"Observed score:", formatFloat(r.Observed)},
		{"", ""},
		{"Better score:", fmt.Sprintf("%d", r.Better)},
		{"Worse score:", fmt.Sprintf("%d", r.Worse)},
		{"Equal score:", fmt.Sprintf("%d", r.Equal)},
		{"P-value better:", formatFloat(r.PValue)},
		{"", ""},
		{"Better/equal score:", fmt.Sprintf("%d", r.BetterOrEqual)},
		{"Worse score:", fmt.Sprintf("%d", r.Worse)},
		{"P-value better/equal:", formatFloat(r.PValueEqual)},
		{"", ""},
		{"Null size:", fmt.Sprintf("%d", r.Size)},
		{"Max null score:", formatFloat(r.Max)},
		{"Min null score:", formatFloat(r.Min)},
		{"Mean null score:", formatFloat(r.Mean)},
		{"SD null score:", formatFloat(r.SD)},
		{"Null 5% quantile:", formatFloat(r.Q05)},
		{"Null median:", formatFloat(r.Q50)},
		{"Null 95% quantile:", formatFloat(r.Q95)},
	}

	for _, ln := range lines {
		if ln.label == "" {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%-22s %s\n", ln.label, ln.value); err != nil {
			return err
		}
	}
	return nil
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.6g", v)
}
