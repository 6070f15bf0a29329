// SPDX-License-Identifier: MIT
// Package coda: sentinel error set.
//
// Three categories classify every failure:
//
//	ErrInvalidInput  malformed matrix (negative/non-finite entries,
//	                 degenerate all-zero column or row, name mismatches).
//	ErrInvalidConfig unknown method or pseudo-count, manual features
//	                 absent from the matrix, missing group labels,
//	                 invalid ILR partition.
//	ErrConvergence   iterative reference selection did not reach a
//	                 fixed point within the iteration cap.
//
// Granular sentinels wrap their category, so callers may test either
// errors.Is(err, ErrZeroColumn) or errors.Is(err, ErrInvalidInput).
// No partial results are ever returned together with an error.

package coda

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks malformed input matrices.
	ErrInvalidInput = errors.New("coda: invalid input")

	// ErrInvalidConfig marks configurations that cannot be applied to the input.
	ErrInvalidConfig = errors.New("coda: invalid configuration")

	// ErrConvergence marks iterative reference selection that failed to stabilize.
	ErrConvergence = errors.New("coda: reference selection did not converge")
)

// Input violations.
var (
	// ErrNilFrame indicates a nil *Frame or a Frame without data.
	ErrNilFrame = fmt.Errorf("%w: nil frame", ErrInvalidInput)

	// ErrShapeMismatch indicates name counts that disagree with the matrix shape,
	// or two frames that cannot be compared.
	ErrShapeMismatch = fmt.Errorf("%w: names do not match matrix shape", ErrInvalidInput)

	// ErrDuplicateName indicates a repeated feature or sample name.
	ErrDuplicateName = fmt.Errorf("%w: duplicate name", ErrInvalidInput)

	// ErrNegativeCount indicates a negative entry in a count matrix.
	ErrNegativeCount = fmt.Errorf("%w: negative count", ErrInvalidInput)

	// ErrNonFinite indicates a NaN or ±Inf entry.
	ErrNonFinite = fmt.Errorf("%w: non-finite value", ErrInvalidInput)

	// ErrZeroColumn indicates a sample whose counts are all zero.
	ErrZeroColumn = fmt.Errorf("%w: all-zero sample", ErrInvalidInput)

	// ErrZeroRow indicates a feature whose counts are all zero.
	ErrZeroRow = fmt.Errorf("%w: all-zero feature", ErrInvalidInput)

	// ErrTooFewFeatures indicates fewer than two features for ILR.
	ErrTooFewFeatures = fmt.Errorf("%w: at least two features required", ErrInvalidInput)

	// ErrEmptyReference indicates a reference selection that kept no feature.
	ErrEmptyReference = fmt.Errorf("%w: empty reference set", ErrInvalidInput)
)

// Configuration violations.
var (
	// ErrUnknownMethod indicates an unrecognized or nil Method.
	ErrUnknownMethod = fmt.Errorf("%w: unknown method", ErrInvalidConfig)

	// ErrUnknownPseudocount indicates an unrecognized or invalid pseudo-count.
	ErrUnknownPseudocount = fmt.Errorf("%w: invalid pseudo-count", ErrInvalidConfig)

	// ErrUnknownFeature indicates a manual reference naming an absent feature.
	ErrUnknownFeature = fmt.Errorf("%w: unknown feature", ErrInvalidConfig)

	// ErrEmptyFeatureList indicates a manual reference without features.
	ErrEmptyFeatureList = fmt.Errorf("%w: empty feature list", ErrInvalidConfig)

	// ErrMissingGroup indicates a sample without a group label.
	ErrMissingGroup = fmt.Errorf("%w: missing group label", ErrInvalidConfig)

	// ErrBadPartition indicates an ILR partition that is not a valid
	// orthogonal sequential binary partition of the features.
	ErrBadPartition = fmt.Errorf("%w: invalid ILR partition", ErrInvalidConfig)

	// ErrBadParameter indicates an out-of-range method or comparison parameter
	// (e.g. LVHA fraction, Close tolerance).
	ErrBadParameter = fmt.Errorf("%w: parameter out of range", ErrInvalidConfig)
)

// ConvergenceError reports an iterative reference selection that hit its
// iteration cap without reaching a fixed point, or whose limit cycle shares
// no feature across its states.
type ConvergenceError struct {
	Method     string // method token, e.g. "iqlr"
	Iterations int    // refinements performed
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("coda: %s reference selection did not converge after %d iterations", e.Method, e.Iterations)
}

// Unwrap makes errors.Is(err, ErrConvergence) hold.
func (e *ConvergenceError) Unwrap() error { return ErrConvergence }

// codaErrorf wraps an underlying error with the given operation tag.
func codaErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
