// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide small, *private* element-wise and broadcast kernels (ew*) to avoid
//     duplicating tight loops across higher-level ops (log-ratio, normalization).
//   - Keep all loops deterministic and cache-friendly with Dense fast-paths.
//
// Design:
//   - All ew* are UNEXPORTED (internal micro-kernels).
//   - Public API uses these via thin wrappers in api.go.
//
// Determinism & Performance:
//   - Fixed loop orders (i→j).
//   - No hidden allocations beyond the output Dense; O(r*c) time and space.

package matrix

import "math"

// asDense returns X itself when it already is a *Dense, otherwise a Dense
// copy read through At. Kernels then work on a single flat buffer.
func asDense(op string, X Matrix) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(op, err)
	}
	if d, ok := X.(*Dense); ok {
		return d, nil
	}
	r, c := X.Rows(), X.Cols()
	out, err := NewDenseWithOptions(r, c, WithNoValidateNaNInf())
	if err != nil {
		return nil, matrixErrorf(op, err)
	}
	var v float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v, err = X.At(i, j); err != nil {
				return nil, matrixErrorf(op, err)
			}
			out.data[i*c+j] = v
		}
	}

	return out, nil
}

// ewBroadcastSubCols computes out[i,j] = X[i,j] - colVals[j].
// Time: O(r*c). Space: O(r*c). Deterministic i→j loops.
//
// This is the final step of every CLR-style transform: subtracting the
// per-sample log reference from each feature.
func ewBroadcastSubCols(X Matrix, colVals []float64) (*Dense, error) {
	const op = "broadcastSubCols"
	d, err := asDense(op, X)
	if err != nil {
		return nil, err
	}
	r, c := d.r, d.c
	if len(colVals) != c {
		return nil, matrixErrorf(op, ErrDimensionMismatch)
	}
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(op, err)
	}

	var v float64
	for i := 0; i < r; i++ {
		base := i * c
		for j := 0; j < c; j++ {
			v = d.data[base+j] - colVals[j]
			if isNonFinite(v) {
				return nil, matrixErrorf(op, denseErrorf(ctxSet, i, j, ErrNaNInf))
			}
			out.data[base+j] = v
		}
	}

	return out, nil
}

// ewLogAddCols computes out[i,j] = ln(X[i,j] + shift[j]).
// Every shifted value must be strictly positive; otherwise ErrDegenerate
// is returned with the offending coordinates.
func ewLogAddCols(X Matrix, shift []float64) (*Dense, error) {
	const op = "logAddCols"
	d, err := asDense(op, X)
	if err != nil {
		return nil, err
	}
	r, c := d.r, d.c
	if len(shift) != c {
		return nil, matrixErrorf(op, ErrDimensionMismatch)
	}
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(op, err)
	}

	var v float64
	for i := 0; i < r; i++ {
		base := i * c
		for j := 0; j < c; j++ {
			v = d.data[base+j] + shift[j]
			if !(v > 0) || math.IsInf(v, 0) {
				return nil, matrixErrorf(op, denseErrorf(ctxSet, i, j, ErrDegenerate))
			}
			out.data[base+j] = math.Log(v)
		}
	}

	return out, nil
}

// ewLog1pScaleCols computes out[i,j] = ln(1 + X[i,j]*scale[j]).
// Inputs must be non-negative so the argument stays ≥ 1.
func ewLog1pScaleCols(X Matrix, scale []float64) (*Dense, error) {
	const op = "log1pScaleCols"
	d, err := asDense(op, X)
	if err != nil {
		return nil, err
	}
	r, c := d.r, d.c
	if len(scale) != c {
		return nil, matrixErrorf(op, ErrDimensionMismatch)
	}
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(op, err)
	}

	var v float64
	for i := 0; i < r; i++ {
		base := i * c
		for j := 0; j < c; j++ {
			v = d.data[base+j] * scale[j]
			if v < 0 || isNonFinite(v) {
				return nil, matrixErrorf(op, denseErrorf(ctxSet, i, j, ErrNegative))
			}
			out.data[base+j] = math.Log1p(v)
		}
	}

	return out, nil
}

// ewAllClose reports whether |a-b| <= atol + rtol*|b| holds element-wise.
// Shapes must match. NaN never compares close.
func ewAllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	const op = "allClose"
	da, err := asDense(op, a)
	if err != nil {
		return false, err
	}
	db, err := asDense(op, b)
	if err != nil {
		return false, err
	}
	if err = ValidateSameShape(da, db); err != nil {
		return false, matrixErrorf(op, err)
	}
	for k := range da.data {
		x, y := da.data[k], db.data[k]
		if math.IsNaN(x) || math.IsNaN(y) {
			return false, nil
		}
		if math.Abs(x-y) > atol+rtol*math.Abs(y) {
			return false, nil
		}
	}

	return true, nil
}
