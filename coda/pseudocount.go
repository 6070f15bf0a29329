// SPDX-License-Identifier: MIT

package coda

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/coda/matrix"
)

// Pseudocount is a zero-replacement strategy: it yields one additive
// constant per sample (column) that makes every count strictly positive.
//
// The set of strategies is closed; use one of SumOverGeoMean, SumOverMax,
// SumOverConstant or Fixed.
type Pseudocount interface {
	// String returns the strategy token accepted by ParsePseudocount.
	String() string

	// shift returns the per-column additive constants for raw counts x.
	shift(x *matrix.Dense) ([]float64, error)
}

// SumOverGeoMean adds librarySize / geometricMean(nonzero counts) per
// sample. Token "s/gm". This is the default strategy.
type SumOverGeoMean struct{}

// SumOverMax adds librarySize / max(counts) per sample. Token "s/max".
type SumOverMax struct{}

// SumOverConstant adds librarySize / Divisor per sample. Token "s/<Divisor>".
// A zero Divisor means DefaultLibraryDivisor ("s/10000").
type SumOverConstant struct {
	Divisor float64
}

// Fixed adds the same positive Value to every count. Token: the number itself.
type Fixed struct {
	Value float64
}

// Compile-time assertions for the closed variant set.
var (
	_ Pseudocount = SumOverGeoMean{}
	_ Pseudocount = SumOverMax{}
	_ Pseudocount = SumOverConstant{}
	_ Pseudocount = Fixed{}
)

func (SumOverGeoMean) String() string { return "s/gm" }

func (SumOverGeoMean) shift(x *matrix.Dense) ([]float64, error) {
	sums, err := matrix.ColumnSums(x)
	if err != nil {
		return nil, err
	}
	gm, err := matrix.ColumnGeoMeanPositive(x)
	if err != nil {
		return nil, err
	}
	for j := range sums {
		sums[j] /= gm[j]
	}

	return sums, nil
}

func (SumOverMax) String() string { return "s/max" }

func (SumOverMax) shift(x *matrix.Dense) ([]float64, error) {
	sums, err := matrix.ColumnSums(x)
	if err != nil {
		return nil, err
	}
	maxes, err := matrix.ColumnMax(x)
	if err != nil {
		return nil, err
	}
	for j := range sums {
		if maxes[j] <= 0 {
			return nil, fmt.Errorf("column %d: %w", j, matrix.ErrDegenerate)
		}
		sums[j] /= maxes[j]
	}

	return sums, nil
}

func (p SumOverConstant) String() string {
	return "s/" + strconv.FormatFloat(p.divisor(), 'g', -1, 64)
}

// divisor resolves the zero value to DefaultLibraryDivisor.
func (p SumOverConstant) divisor() float64 {
	if p.Divisor == 0 {
		return DefaultLibraryDivisor
	}

	return p.Divisor
}

func (p SumOverConstant) shift(x *matrix.Dense) ([]float64, error) {
	d := p.divisor()
	if !(d > 0) || math.IsInf(d, 0) {
		return nil, fmt.Errorf("divisor %g: %w", p.Divisor, ErrUnknownPseudocount)
	}
	sums, err := matrix.ColumnSums(x)
	if err != nil {
		return nil, err
	}
	for j := range sums {
		sums[j] /= d
	}

	return sums, nil
}

func (p Fixed) String() string { return strconv.FormatFloat(p.Value, 'g', -1, 64) }

func (p Fixed) shift(x *matrix.Dense) ([]float64, error) {
	if !(p.Value > 0) || math.IsInf(p.Value, 0) {
		return nil, fmt.Errorf("value %g: %w", p.Value, ErrUnknownPseudocount)
	}
	out := make([]float64, x.Cols())
	for j := range out {
		out[j] = p.Value
	}

	return out, nil
}

// ParsePseudocount parses a strategy token: "s/gm", "s/max", "s/<number>"
// or a bare positive number. Matching is case-insensitive.
//
// Errors:
//   - ErrUnknownPseudocount (an ErrInvalidConfig) for anything else.
func ParsePseudocount(token string) (Pseudocount, error) {
	t := strings.ToLower(strings.TrimSpace(token))
	switch t {
	case "s/gm":
		return SumOverGeoMean{}, nil
	case "s/max":
		return SumOverMax{}, nil
	}
	if rest, ok := strings.CutPrefix(t, "s/"); ok {
		d, err := strconv.ParseFloat(rest, 64)
		if err != nil || !(d > 0) || math.IsInf(d, 0) {
			return nil, fmt.Errorf("%q: %w", token, ErrUnknownPseudocount)
		}
		return SumOverConstant{Divisor: d}, nil
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil || !(v > 0) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%q: %w", token, ErrUnknownPseudocount)
	}

	return Fixed{Value: v}, nil
}
