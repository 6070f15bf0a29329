// SPDX-License-Identifier: MIT
// Package matrix: public API facades.
//
// Purpose:
//   - Provide thin, well-documented entry points over the canonical kernels.
//   - Avoid any logic duplication; each facade delegates to one implementation.
//
// Determinism & Policy:
//   - Facades never change the loop orders or numeric policy of underlying kernels.
//   - All facades return freshly allocated results; inputs are never mutated.

package matrix

// SubColumns returns X with colVals[j] subtracted from every entry of column j.
// Fails with ErrNaNInf if any result is non-finite. Complexity: O(rc).
func SubColumns(X Matrix, colVals []float64) (*Dense, error) { return ewBroadcastSubCols(X, colVals) }

// LogShiftColumns returns ln(X[i,j] + shift[j]); every shifted entry must be > 0.
// Complexity: O(rc).
func LogShiftColumns(X Matrix, shift []float64) (*Dense, error) { return ewLogAddCols(X, shift) }

// Log1pScaleColumns returns ln(1 + X[i,j]*scale[j]) for non-negative X.
// Complexity: O(rc).
func Log1pScaleColumns(X Matrix, scale []float64) (*Dense, error) {
	return ewLog1pScaleCols(X, scale)
}

// AllClose reports whether a and b agree element-wise within
// atol + rtol*|b|. atol comes from WithEpsilon (default DefaultEpsilon).
func AllClose(a, b Matrix, rtol float64, opts ...Option) (bool, error) {
	o := gatherOptions(opts...)

	return ewAllClose(a, b, rtol, o.eps)
}

// ColumnSums returns the per-column sums (library sizes for count data).
func ColumnSums(X Matrix) ([]float64, error) { return columnSums(X) }

// ColumnMax returns the per-column maxima.
func ColumnMax(X Matrix) ([]float64, error) { return columnMax(X) }

// ColumnGeoMeanPositive returns the geometric mean of the strictly positive
// entries of each column; ErrDegenerate for columns without one.
func ColumnGeoMeanPositive(X Matrix) ([]float64, error) { return columnGeoMeanPositive(X) }

// RowMeans returns the arithmetic mean of each row.
func RowMeans(X Matrix) ([]float64, error) { return rowMeans(X) }

// RowVariances returns the unbiased sample variance of each row (0 when Cols()==1).
func RowVariances(X Matrix) ([]float64, error) { return rowVariances(X) }

// ColumnMeansOverRows returns per-column means restricted to the given rows.
func ColumnMeansOverRows(X Matrix, rows []int) ([]float64, error) {
	return columnMeansOverRows(X, rows)
}

// ColumnWeightedMeans returns per-column means with non-negative row weights.
func ColumnWeightedMeans(X Matrix, w []float64) ([]float64, error) {
	return columnWeightedMeans(X, w)
}

// Quantile returns the R-7 p-quantile of v (v is not modified).
func Quantile(v []float64, p float64) (float64, error) { return quantileR7(v, p) }

// Median is Quantile(v, 0.5).
func Median(v []float64) (float64, error) { return quantileR7(v, 0.5) }
