// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide the column/row statistics needed by compositional transforms
//     (library sizes, maxima, geometric means of positive entries, per-row
//     means and sample variances, subset and weighted column means) as
//     deterministic compositions over flat row-major buffers.
//   - Delegate scalar reductions to gonum (floats.Sum, floats.Max,
//     stat.Mean, stat.Variance) so numerical behavior matches the wider
//     Go numeric ecosystem.
//
// Exposed API (see api.go):
//   - ColumnSums(X), ColumnMax(X), ColumnGeoMeanPositive(X)
//   - RowMeans(X), RowVariances(X)
//   - ColumnMeansOverRows(X, rows), ColumnWeightedMeans(X, w)
//   - Quantile(v, p), Median(v)
//
// Determinism & Performance:
//   - Fixed i→j traversal for all explicit loops.
//   - Column reductions gather into one reusable scratch slice (O(r) extra).

package matrix

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opColumnSums          = "ColumnSums"
	opColumnMax           = "ColumnMax"
	opColumnGeoMean       = "ColumnGeoMeanPositive"
	opRowMeans            = "RowMeans"
	opRowVariances        = "RowVariances"
	opColumnMeansOverRows = "ColumnMeansOverRows"
	opColumnWeightedMeans = "ColumnWeightedMeans"
	opQuantile            = "Quantile"
)

// columnReduce applies f to every column (gathered into a scratch slice).
func columnReduce(op string, X Matrix, f func(col []float64) (float64, error)) ([]float64, error) {
	d, err := asDense(op, X)
	if err != nil {
		return nil, err
	}
	r, c := d.r, d.c
	out := make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			col[i] = d.data[i*c+j]
		}
		if out[j], err = f(col); err != nil {
			return nil, matrixErrorf(op, denseErrorf(ctxCol, 0, j, err))
		}
	}

	return out, nil
}

// columnSums returns Σ_i X[i,j] per column (library sizes for count data).
// Complexity: O(r*c).
func columnSums(X Matrix) ([]float64, error) {
	return columnReduce(opColumnSums, X, func(col []float64) (float64, error) {
		return floats.Sum(col), nil
	})
}

// columnMax returns max_i X[i,j] per column.
func columnMax(X Matrix) ([]float64, error) {
	return columnReduce(opColumnMax, X, func(col []float64) (float64, error) {
		return floats.Max(col), nil
	})
}

// columnGeoMeanPositive returns exp(mean(ln x)) over the strictly positive
// entries of each column.
//
// Errors:
//   - ErrDegenerate when a column has no positive entry (undefined mean).
//
// Notes:
//   - Zeros are skipped rather than treated as −Inf; this is the "nonzero
//     geometric mean" used for pseudo-count scaling.
func columnGeoMeanPositive(X Matrix) ([]float64, error) {
	return columnReduce(opColumnGeoMean, X, func(col []float64) (float64, error) {
		var s float64
		var n int
		for _, v := range col {
			if v > 0 {
				s += math.Log(v)
				n++
			}
		}
		if n == 0 {
			return 0, ErrDegenerate
		}
		return math.Exp(s / float64(n)), nil
	})
}

// rowMeans returns the arithmetic mean of each row.
func rowMeans(X Matrix) ([]float64, error) {
	d, err := asDense(opRowMeans, X)
	if err != nil {
		return nil, err
	}
	out := make([]float64, d.r)
	for i := 0; i < d.r; i++ {
		out[i] = stat.Mean(d.data[i*d.c:(i+1)*d.c], nil)
	}

	return out, nil
}

// rowVariances returns the unbiased sample variance (n−1 denominator) of
// each row. With a single column every variance is 0 by convention.
func rowVariances(X Matrix) ([]float64, error) {
	d, err := asDense(opRowVariances, X)
	if err != nil {
		return nil, err
	}
	out := make([]float64, d.r)
	if d.c < 2 {
		return out, nil
	}
	for i := 0; i < d.r; i++ {
		out[i] = stat.Variance(d.data[i*d.c:(i+1)*d.c], nil)
	}

	return out, nil
}

// columnMeansOverRows returns, per column, the mean of X[i,j] over i ∈ rows.
//
// Errors:
//   - ErrEmptySelection for an empty row set; ErrOutOfRange for bad indices.
//
// Complexity: O(|rows|*c).
func columnMeansOverRows(X Matrix, rows []int) ([]float64, error) {
	d, err := asDense(opColumnMeansOverRows, X)
	if err != nil {
		return nil, err
	}
	if err = ValidateIndices(rows, d.r); err != nil {
		return nil, matrixErrorf(opColumnMeansOverRows, err)
	}
	c := d.c
	out := make([]float64, c)
	for _, i := range rows {
		base := i * c
		for j := 0; j < c; j++ {
			out[j] += d.data[base+j]
		}
	}
	inv := 1.0 / float64(len(rows))
	for j := range out {
		out[j] *= inv
	}

	return out, nil
}

// columnWeightedMeans returns Σ_i w_i X[i,j] / Σ_i w_i per column.
//
// Errors:
//   - ErrDimensionMismatch when len(w) != rows.
//   - ErrNegative for a negative/non-finite weight.
//   - ErrEmptySelection when all weights are zero.
func columnWeightedMeans(X Matrix, w []float64) ([]float64, error) {
	d, err := asDense(opColumnWeightedMeans, X)
	if err != nil {
		return nil, err
	}
	if err = ValidateVecLen(w, d.r); err != nil {
		return nil, matrixErrorf(opColumnWeightedMeans, err)
	}
	var total float64
	for _, wi := range w {
		if wi < 0 || isNonFinite(wi) {
			return nil, matrixErrorf(opColumnWeightedMeans, ErrNegative)
		}
		total += wi
	}
	if total == 0 {
		return nil, matrixErrorf(opColumnWeightedMeans, ErrEmptySelection)
	}
	c := d.c
	out := make([]float64, c)
	for i, wi := range w {
		if wi == 0 {
			continue
		}
		base := i * c
		for j := 0; j < c; j++ {
			out[j] += wi * d.data[base+j]
		}
	}
	floats.Scale(1/total, out)

	return out, nil
}

// quantileR7 returns the pth quantile of v according to the R-7 method
// (linear interpolation between the order statistics at h = (n−1)p).
// v is not modified.
func quantileR7(v []float64, p float64) (float64, error) {
	if len(v) == 0 {
		return 0, matrixErrorf(opQuantile, ErrEmptySelection)
	}
	if p < 0 || p > 1 || math.IsNaN(p) {
		return 0, matrixErrorf(opQuantile, ErrOutOfRange)
	}
	s := make([]float64, len(v))
	copy(s, v)
	sort.Float64s(s)
	if p == 1 {
		return s[len(s)-1], nil
	}
	h := float64(len(s)-1) * p
	i := int(h)
	if i+1 >= len(s) {
		return s[i], nil
	}

	return s[i] + (h-math.Floor(h))*(s[i+1]-s[i]), nil
}
