// SPDX-License-Identifier: MIT

package coda

import (
	"github.com/katalvlaran/coda/matrix"
)

// Transform applies a log-ratio transform to a frame of raw counts.
//
// Steps:
//  1. Adjust: counts move to log space through the pseudo-count or LogNorm
//     adjuster selected by opts.
//  2. Reference: m selects the per-sample log reference (or, for ILR, the
//     balance basis).
//  3. Log-ratio: out[i,j] = logX[i,j] − ref[j]; ILR emits Vᵀ·logX.
//
// The result has the input's shape and names; ILR returns D−1 rows labeled
// by contrast. x is never modified and no partial result accompanies an
// error.
//
// Errors (all wrapped with "Transform: "):
//   - ErrInvalidInput family for malformed frames or counts.
//   - ErrInvalidConfig family for unknown methods, bad parameters, unknown
//     manual features, missing group labels or invalid ILR partitions.
//   - *ConvergenceError when IQLR, LVHA or mdCLR refinement hits the cap.
//
// Complexity: O(D·n) per refinement iteration; ILR is O(D²·n).
func Transform(x *Frame, m Method, opts ...Option) (*Frame, error) {
	const op = "Transform"
	if err := x.validate(); err != nil {
		return nil, codaErrorf(op, err)
	}
	nm, err := normalize(m)
	if err != nil {
		return nil, codaErrorf(op, err)
	}
	o := gatherOptions(opts...)

	logX, err := o.adjust(x.Data)
	if err != nil {
		return nil, codaErrorf(op, err)
	}

	if ilr, ok := nm.(ILR); ok {
		v, labels, err := ILRBasis(x.Features, ilr.Partition)
		if err != nil {
			return nil, codaErrorf(op, err)
		}
		z, err := ilrCoordinates(v, logX)
		if err != nil {
			return nil, codaErrorf(op, err)
		}
		o.debug("transform", "method", nm.Name(), "contrasts", len(labels), "samples", x.Cols())
		return &Frame{Features: labels, Samples: cloneStrings(x.Samples), Data: z}, nil
	}

	lf := &Frame{Features: x.Features, Samples: x.Samples, Data: logX}
	ref, err := reference(lf, nm, o)
	if err != nil {
		return nil, codaErrorf(op, err)
	}
	out, err := matrix.SubColumns(logX, ref)
	if err != nil {
		return nil, codaErrorf(op, err)
	}
	o.debug("transform", "method", nm.Name(), "features", x.Rows(), "samples", x.Cols())

	return &Frame{
		Features: cloneStrings(x.Features),
		Samples:  cloneStrings(x.Samples),
		Data:     out,
	}, nil
}
