// SPDX-License-Identifier: MIT

package coda_test

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/coda/coda"
)

// alternating returns a step that moves from the full set to states[0] and
// then walks states in order, wrapping around.
func alternating(states ...[]int) func([]int) ([]int, error) {
	return func(sel []int) ([]int, error) {
		for k, s := range states {
			if slices.Equal(sel, s) {
				return states[(k+1)%len(states)], nil
			}
		}
		return states[0], nil
	}
}

// cycleCounts returns a d×n count frame of LCG draws in [0, 50) with one
// added to row 0 and to column 0, so every feature and sample is non-zero.
func cycleCounts(t *testing.T, d, n int, seed uint64) *coda.Frame {
	t.Helper()
	st := seed
	rows := make([][]float64, d)
	for i := range rows {
		rows[i] = make([]float64, n)
		for j := range rows[i] {
			st = st*6364136223846793005 + 1442695040888963407
			u := float64(st>>11) / float64(1<<53)
			rows[i][j] = math.Floor(50 * u)
		}
	}
	for j := 0; j < n; j++ {
		rows[0][j]++
	}
	for i := 0; i < d; i++ {
		rows[i][0]++
	}

	return MustFrame(t, rows)
}

func TestRefineSelection_FixedPoint(t *testing.T) {
	t.Parallel()

	calls := 0
	sel, err := coda.RefineSelection("iqlr", 5, 10, func([]int) ([]int, error) {
		calls++
		return []int{1, 3}, nil
	})
	require.NoError(t, err)
	require.Equal(t, []int{1, 3}, sel)
	require.Equal(t, 2, calls)
}

func TestRefineSelection_LimitCycleIntersection(t *testing.T) {
	t.Parallel()

	sel, err := coda.RefineSelection("iqlr", 6, 100, alternating([]int{0, 1, 2}, []int{1, 2, 3}))
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, sel)

	sel, err = coda.RefineSelection("lvha", 6, 100, alternating([]int{0, 2, 4}, []int{2, 3, 4}, []int{1, 2, 4}))
	require.NoError(t, err)
	require.Equal(t, []int{2, 4}, sel)
}

func TestRefineSelection_DisjointCycle(t *testing.T) {
	t.Parallel()

	_, err := coda.RefineSelection("iqlr", 4, 100, alternating([]int{0, 1}, []int{2, 3}))
	require.ErrorIs(t, err, coda.ErrConvergence)
	require.NotErrorIs(t, err, coda.ErrInvalidInput)

	var ce *coda.ConvergenceError
	require.True(t, errors.As(err, &ce))
	require.Equal(t, "iqlr", ce.Method)
	require.Equal(t, 3, ce.Iterations)
}

func TestRefineSelection_EmptyStep(t *testing.T) {
	t.Parallel()

	_, err := coda.RefineSelection("iqlr", 3, 10, func([]int) ([]int, error) { return nil, nil })
	require.ErrorIs(t, err, coda.ErrEmptyReference)
}

// TestIQLR_LimitCycleResolves uses counts on which IQLR alternates between
// two selections; the reference is the mean over the features they share.
func TestIQLR_LimitCycleResolves(t *testing.T) {
	t.Parallel()

	x := cycleCounts(t, 30, 10, 132)
	got, err := coda.Transform(x, coda.IQLR{})
	require.NoError(t, err)

	shared := []string{"g4", "g7", "g8", "g9", "g12", "g13", "g18", "g19", "g20", "g21", "g26", "g28"}
	want, err := coda.Transform(x, coda.Manual{Features: shared})
	require.NoError(t, err)
	agr, err := coda.Compare(got, want)
	require.NoError(t, err)
	require.LessOrEqual(t, agr.MaxAbsDiff, 1e-12)
}

// TestIQLR_DisjointCycleIsConvergenceError uses counts on which IQLR cycles
// through four selections with no feature in common.
func TestIQLR_DisjointCycleIsConvergenceError(t *testing.T) {
	t.Parallel()

	x := cycleCounts(t, 10, 30, 133)
	_, err := coda.Transform(x, coda.IQLR{})
	require.ErrorIs(t, err, coda.ErrConvergence)
	require.NotErrorIs(t, err, coda.ErrInvalidInput)

	var ce *coda.ConvergenceError
	require.True(t, errors.As(err, &ce))
	require.Equal(t, "iqlr", ce.Method)
	require.Less(t, ce.Iterations, coda.DefaultMaxIterations)
}

// TestIQLR_WellFormedCountsNeverInvalid sweeps random count matrices in both
// orientations: IQLR either converges or reports ErrConvergence.
func TestIQLR_WellFormedCountsNeverInvalid(t *testing.T) {
	t.Parallel()

	for seed := uint64(1); seed <= 100; seed++ {
		for _, shape := range [][2]int{{30, 10}, {10, 30}} {
			x := cycleCounts(t, shape[0], shape[1], seed)
			out, err := coda.Transform(x, coda.IQLR{})
			if err != nil {
				require.ErrorIs(t, err, coda.ErrConvergence, "seed %d shape %v", seed, shape)
				require.NotErrorIs(t, err, coda.ErrInvalidInput, "seed %d shape %v", seed, shape)
				continue
			}
			RequireFinite(t, out)
		}
	}
}
