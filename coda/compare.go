// SPDX-License-Identifier: MIT

package coda

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/coda/matrix"
)

// Agreement summarizes the element-wise difference of two frames.
type Agreement struct {
	RMSE          float64 // root-mean-square difference
	MaxAbsDiff    float64 // largest absolute difference
	ExactFraction float64 // share of bitwise-equal entries, in [0, 1]
	N             int     // number of compared entries
}

func (a Agreement) String() string {
	return fmt.Sprintf("rmse=%.6g max_abs_diff=%.6g exact_fraction=%.6g n=%d",
		a.RMSE, a.MaxAbsDiff, a.ExactFraction, a.N)
}

// Compare measures how far two transforms of the same input disagree, for
// example CLR over the s/10000 pseudo-count against CLR over LogNorm.
// Both frames must have identical shapes and names.
func Compare(a, b *Frame) (Agreement, error) {
	const op = "Compare"
	if err := sameLayout(a, b); err != nil {
		return Agreement{}, codaErrorf(op, err)
	}

	av, bv := a.Data.RawRowMajor(), b.Data.RawRowMajor()
	n := len(av)
	var exact int
	for i := range av {
		if av[i] == bv[i] {
			exact++
		}
	}

	return Agreement{
		RMSE:          floats.Distance(av, bv, 2) / math.Sqrt(float64(n)),
		MaxAbsDiff:    floats.Distance(av, bv, math.Inf(1)),
		ExactFraction: float64(exact) / float64(n),
		N:             n,
	}, nil
}

// Close reports whether every entry of a lies within atol + rtol·|b| of the
// matching entry of b. NaN entries are never close. The frames are checked
// as in Compare.
//
// Errors:
//   - ErrBadParameter for a negative or non-finite tolerance.
func Close(a, b *Frame, rtol, atol float64) (bool, error) {
	const op = "Close"
	for _, tol := range []float64{rtol, atol} {
		if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
			return false, codaErrorf(op, fmt.Errorf("tolerance %g: %w", tol, ErrBadParameter))
		}
	}
	if err := sameLayout(a, b); err != nil {
		return false, codaErrorf(op, err)
	}

	ok, err := matrix.AllClose(a.Data, b.Data, rtol, matrix.WithEpsilon(atol))
	if err != nil {
		return false, codaErrorf(op, err)
	}

	return ok, nil
}

// sameLayout requires two valid frames with equal feature and sample names.
func sameLayout(a, b *Frame) error {
	if err := a.validate(); err != nil {
		return err
	}
	if err := b.validate(); err != nil {
		return err
	}
	if !slices.Equal(a.Features, b.Features) || !slices.Equal(a.Samples, b.Samples) {
		return fmt.Errorf("names differ: %w", ErrShapeMismatch)
	}

	return nil
}
