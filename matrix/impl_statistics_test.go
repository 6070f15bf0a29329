// SPDX-License-Identifier: MIT

package matrix_test

import (
	"errors"
	"math"
	"testing"

	"github.com/katalvlaran/coda/matrix"
)

const epsTight = 1e-12

// ------------------------------
// Column reductions
// ------------------------------

func TestColumnSumsAndMax_FastAndFallback(t *testing.T) {
	t.Parallel()

	X := NewFilledDense(t, 3, 2, []float64{
		4, 0,
		2, 2,
		0, 6,
	})
	for _, in := range []matrix.Matrix{X, hide{X}} {
		sums, err := matrix.ColumnSums(in)
		if err != nil {
			t.Fatalf("ColumnSums: %v", err)
		}
		sliceClose(t, sums, []float64{6, 8}, 0, 0)

		maxes, err := matrix.ColumnMax(in)
		if err != nil {
			t.Fatalf("ColumnMax: %v", err)
		}
		sliceClose(t, maxes, []float64{4, 6}, 0, 0)
	}
}

func TestColumnGeoMeanPositive_SkipsZeros(t *testing.T) {
	t.Parallel()

	X := NewFilledDense(t, 3, 2, []float64{
		4, 0,
		0, 2,
		1, 8,
	})
	gm, err := matrix.ColumnGeoMeanPositive(X)
	if err != nil {
		t.Fatalf("ColumnGeoMeanPositive: %v", err)
	}
	sliceClose(t, gm, []float64{2, 4}, epsTight, epsTight)
}

func TestColumnGeoMeanPositive_AllZeroColumn(t *testing.T) {
	t.Parallel()

	X := NewFilledDense(t, 2, 2, []float64{1, 0, 3, 0})
	_, err := matrix.ColumnGeoMeanPositive(X)
	if !errors.Is(err, matrix.ErrDegenerate) {
		t.Fatalf("want ErrDegenerate, got %v", err)
	}
}

// ------------------------------
// Row statistics
// ------------------------------

func TestRowMeansAndVariances(t *testing.T) {
	t.Parallel()

	X := NewFilledDense(t, 2, 3, []float64{
		1, 2, 3,
		5, 5, 5,
	})
	means, err := matrix.RowMeans(X)
	if err != nil {
		t.Fatalf("RowMeans: %v", err)
	}
	sliceClose(t, means, []float64{2, 5}, 0, epsTight)

	vars, err := matrix.RowVariances(hide{X})
	if err != nil {
		t.Fatalf("RowVariances: %v", err)
	}
	sliceClose(t, vars, []float64{1, 0}, 0, epsTight)
}

func TestRowVariances_SingleColumnIsZero(t *testing.T) {
	t.Parallel()

	X := NewFilledDense(t, 3, 1, []float64{1, 10, 100})
	vars, err := matrix.RowVariances(X)
	if err != nil {
		t.Fatalf("RowVariances: %v", err)
	}
	sliceClose(t, vars, []float64{0, 0, 0}, 0, 0)
}

// ------------------------------
// Subset / weighted column means
// ------------------------------

func TestColumnMeansOverRows(t *testing.T) {
	t.Parallel()

	X := NewFilledDense(t, 3, 2, []float64{
		1, 10,
		3, 30,
		100, 1000,
	})
	got, err := matrix.ColumnMeansOverRows(X, []int{0, 1})
	if err != nil {
		t.Fatalf("ColumnMeansOverRows: %v", err)
	}
	sliceClose(t, got, []float64{2, 20}, 0, epsTight)

	if _, err = matrix.ColumnMeansOverRows(X, nil); !errors.Is(err, matrix.ErrEmptySelection) {
		t.Fatalf("want ErrEmptySelection, got %v", err)
	}
	if _, err = matrix.ColumnMeansOverRows(X, []int{3}); !errors.Is(err, matrix.ErrOutOfRange) {
		t.Fatalf("want ErrOutOfRange, got %v", err)
	}
}

func TestColumnWeightedMeans(t *testing.T) {
	t.Parallel()

	X := NewFilledDense(t, 3, 1, []float64{1, 3, 100})
	got, err := matrix.ColumnWeightedMeans(X, []float64{1, 1, 0})
	if err != nil {
		t.Fatalf("ColumnWeightedMeans: %v", err)
	}
	sliceClose(t, got, []float64{2}, 0, epsTight)

	got, err = matrix.ColumnWeightedMeans(X, []float64{3, 1, 0})
	if err != nil {
		t.Fatalf("ColumnWeightedMeans: %v", err)
	}
	sliceClose(t, got, []float64{1.5}, 0, epsTight)

	if _, err = matrix.ColumnWeightedMeans(X, []float64{0, 0, 0}); !errors.Is(err, matrix.ErrEmptySelection) {
		t.Fatalf("want ErrEmptySelection, got %v", err)
	}
	if _, err = matrix.ColumnWeightedMeans(X, []float64{1, -1, 0}); !errors.Is(err, matrix.ErrNegative) {
		t.Fatalf("want ErrNegative, got %v", err)
	}
	if _, err = matrix.ColumnWeightedMeans(X, []float64{1}); !errors.Is(err, matrix.ErrDimensionMismatch) {
		t.Fatalf("want ErrDimensionMismatch, got %v", err)
	}
}

// ------------------------------
// Quantiles
// ------------------------------

func TestQuantileR7(t *testing.T) {
	t.Parallel()

	v := []float64{4, 1, 3, 2}
	cases := []struct {
		p, want float64
	}{
		{0, 1},
		{0.25, 1.75},
		{0.5, 2.5},
		{0.75, 3.25},
		{1, 4},
	}
	for _, tc := range cases {
		got, err := matrix.Quantile(v, tc.p)
		if err != nil {
			t.Fatalf("Quantile(%g): %v", tc.p, err)
		}
		if math.Abs(got-tc.want) > epsTight {
			t.Fatalf("Quantile(%g)=%g, want %g", tc.p, got, tc.want)
		}
	}
	// Input untouched.
	sliceClose(t, v, []float64{4, 1, 3, 2}, 0, 0)

	m, err := matrix.Median([]float64{7})
	if err != nil || m != 7 {
		t.Fatalf("Median single = %g, %v", m, err)
	}
	if _, err = matrix.Quantile(nil, 0.5); !errors.Is(err, matrix.ErrEmptySelection) {
		t.Fatalf("want ErrEmptySelection, got %v", err)
	}
	if _, err = matrix.Quantile(v, 1.5); !errors.Is(err, matrix.ErrOutOfRange) {
		t.Fatalf("want ErrOutOfRange, got %v", err)
	}
}
