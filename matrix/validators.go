// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels minimal by delegating shape/nil/domain checks here.
//  - Return tagged sentinel errors so call sites can wrap uniformly.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - Element scans run in row-major order and stop at the first violation,
//    so the reported coordinates are the smallest (row, col) pair.

package matrix

import "fmt"

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Returns ErrNilMatrix if m == nil (including a typed nil *Dense).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape ensures matrices a and b have equal dimensions.
// Assumes a and b are not nil (caller must ensure).
func ValidateSameShape(a, b Matrix) error {
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateVecLen ensures the vector length matches the required size n.
func ValidateVecLen(x []float64, n int) error {
	if x == nil {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateIndices ensures every index lies in [0, n) and the set is non-empty.
func ValidateIndices(idx []int, n int) error {
	if len(idx) == 0 {
		return validatorErrorf("ValidateIndices", ErrEmptySelection)
	}
	for _, k := range idx {
		if k < 0 || k >= n {
			return validatorErrorf(fmt.Sprintf("ValidateIndices(%d)", k), ErrOutOfRange)
		}
	}

	return nil
}

// ValidateFinite scans m and reports the first NaN/±Inf entry.
// Complexity: O(r*c).
func ValidateFinite(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	var bad error
	visit(m, func(i, j int, v float64) bool {
		if isNonFinite(v) {
			bad = validatorErrorf(fmt.Sprintf("ValidateFinite(%d,%d)", i, j), ErrNaNInf)
			return false
		}
		return true
	})

	return bad
}

// ValidateNonNegative scans m and reports the first negative or non-finite entry.
// Complexity: O(r*c).
func ValidateNonNegative(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	var bad error
	visit(m, func(i, j int, v float64) bool {
		switch {
		case isNonFinite(v):
			bad = validatorErrorf(fmt.Sprintf("ValidateNonNegative(%d,%d)", i, j), ErrNaNInf)
		case v < 0:
			bad = validatorErrorf(fmt.Sprintf("ValidateNonNegative(%d,%d)", i, j), ErrNegative)
		default:
			return true
		}
		return false
	})

	return bad
}

// visit walks m in row-major order using the Dense fast path when possible.
// Errors from At on foreign implementations stop the walk silently; callers
// only use it on matrices whose shape they just read.
func visit(m Matrix, f func(i, j int, v float64) bool) {
	if d, ok := m.(*Dense); ok {
		d.Do(f)
		return
	}
	r, c := m.Rows(), m.Cols()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, err := m.At(i, j)
			if err != nil || !f(i, j, v) {
				return
			}
		}
	}
}
