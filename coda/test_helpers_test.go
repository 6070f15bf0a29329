// SPDX-License-Identifier: MIT

package coda_test

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/coda/coda"
	"github.com/katalvlaran/coda/matrix"
)

// names returns prefix0..prefix{n-1}.
func names(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = prefix + strconv.Itoa(i)
	}

	return out
}

// MustFrame builds a frame from rows with generated names (g*, c*).
func MustFrame(t testing.TB, rows [][]float64) *coda.Frame {
	t.Helper()
	d, err := matrix.NewDenseRows(rows)
	require.NoError(t, err)
	f, err := coda.NewFrame(names("g", d.Rows()), names("c", d.Cols()), d)
	require.NoError(t, err)

	return f
}

// SyntheticCounts returns a d×n count frame with per-feature means spread
// over 1..50 and per-sample depth factors of 1, 1.5 and 2, drawn from a
// 64-bit LCG so runs are reproducible. Sparse zeros are expected.
func SyntheticCounts(t testing.TB, d, n int, seed uint64) *coda.Frame {
	t.Helper()
	st := seed
	rows := make([][]float64, d)
	for i := range rows {
		mu := float64(1 + (i*37)%50)
		row := make([]float64, n)
		for j := range row {
			st = st*6364136223846793005 + 1442695040888963407
			u := float64(st>>11) / float64(1<<53)
			lib := 1 + 0.5*float64(j%3)
			row[j] = math.Floor(mu * lib * 2 * u)
		}
		rows[i] = row
	}

	return MustFrame(t, rows)
}

// Column returns column j of f.
func Column(t *testing.T, f *coda.Frame, j int) []float64 {
	t.Helper()
	col, err := f.Data.Col(j)
	require.NoError(t, err)

	return col
}

// Value returns f[i,j].
func Value(t *testing.T, f *coda.Frame, i, j int) float64 {
	t.Helper()
	v, err := f.Data.At(i, j)
	require.NoError(t, err)

	return v
}

// RequireFinite asserts every entry of f is finite.
func RequireFinite(t *testing.T, f *coda.Frame) {
	t.Helper()
	require.NoError(t, matrix.ValidateFinite(f.Data))
}

// RequireColumnSumsZero asserts the centering property of CLR-style output.
func RequireColumnSumsZero(t *testing.T, f *coda.Frame, tol float64) {
	t.Helper()
	sums, err := matrix.ColumnSums(f.Data)
	require.NoError(t, err)
	for j, s := range sums {
		require.InDeltaf(t, 0, s, tol, "column %d", j)
	}
}

// mean returns the arithmetic mean of v.
func mean(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x
	}

	return s / float64(len(v))
}
