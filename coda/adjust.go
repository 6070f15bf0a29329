// SPDX-License-Identifier: MIT

package coda

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/coda/matrix"
)

// logNorm is the library-size log-normalization adjuster.
type logNorm struct {
	scale         float64
	preNormalized bool
}

// adjust returns ln(1 + x·scale/librarySize) per column, or a finite copy of
// x when the input is already log-normalized.
func (l logNorm) adjust(x *matrix.Dense) (*matrix.Dense, error) {
	if l.preNormalized {
		if err := matrix.ValidateFinite(x); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNonFinite, err)
		}
		return x.Clone().(*matrix.Dense), nil
	}
	if err := validateCounts(x); err != nil {
		return nil, err
	}
	sums, err := matrix.ColumnSums(x)
	if err != nil {
		return nil, err
	}
	for j := range sums {
		sums[j] = l.scale / sums[j]
	}

	return matrix.Log1pScaleColumns(x, sums)
}

// adjust moves raw counts into log space with the configured adjuster.
func (o options) adjust(x *matrix.Dense) (*matrix.Dense, error) {
	if o.logNorm != nil {
		return o.logNorm.adjust(x)
	}
	if err := validateCounts(x); err != nil {
		return nil, err
	}
	shift, err := o.pseudo.shift(x)
	if err != nil {
		return nil, err
	}
	logX, err := matrix.LogShiftColumns(x, shift)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNonFinite, err)
	}

	return logX, nil
}

// validateCounts rejects negative or non-finite entries and all-zero
// samples or features.
func validateCounts(x *matrix.Dense) error {
	if err := matrix.ValidateNonNegative(x); err != nil {
		if errors.Is(err, matrix.ErrNaNInf) {
			return fmt.Errorf("%w: %w", ErrNonFinite, err)
		}
		return fmt.Errorf("%w: %w", ErrNegativeCount, err)
	}
	sums, err := matrix.ColumnSums(x)
	if err != nil {
		return err
	}
	for j, s := range sums {
		if s == 0 {
			return fmt.Errorf("%w: column %d", ErrZeroColumn, j)
		}
	}
	means, err := matrix.RowMeans(x)
	if err != nil {
		return err
	}
	for i, m := range means {
		if m == 0 {
			return fmt.Errorf("%w: row %d", ErrZeroRow, i)
		}
	}

	return nil
}

// Adjust returns the log-space adjusted frame (ln of the pseudo-counted
// counts, or the LogNorm values). Names are copied; x is not modified.
//
// Errors:
//   - ErrNilFrame, ErrShapeMismatch, ErrDuplicateName for malformed frames.
//   - ErrNegativeCount, ErrNonFinite, ErrZeroColumn, ErrZeroRow for counts
//     that cannot be moved into log space.
//   - ErrUnknownPseudocount for a non-positive Fixed value or divisor.
func Adjust(x *Frame, opts ...Option) (*Frame, error) {
	const op = "Adjust"
	if err := x.validate(); err != nil {
		return nil, codaErrorf(op, err)
	}
	o := gatherOptions(opts...)
	logX, err := o.adjust(x.Data)
	if err != nil {
		return nil, codaErrorf(op, err)
	}

	return &Frame{
		Features: cloneStrings(x.Features),
		Samples:  cloneStrings(x.Samples),
		Data:     logX,
	}, nil
}
