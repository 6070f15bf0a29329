// SPDX-License-Identifier: MIT
// Package coda: iterative reference refinement.
//
// IQLR, LVHA and mdCLR share one shape: start from all features, compute the
// CLR against the current reference, re-select (or re-weight) features from
// the per-feature CLR variances, and stop at a fixed point. Every loop is
// bounded by options.maxIter and fails with *ConvergenceError at the cap.
//
// Fixed-point predicates:
//   - IQLR, LVHA: the selected index set is unchanged, or it revisits an
//     earlier state (limit cycle). A cycle is accepted as converged on the
//     rows selected in every state of the cycle; that set is not itself a
//     fixed point of the step. An empty intersection is *ConvergenceError.
//   - mdCLR: max_i |w_i(t) − w_i(t−1)| ≤ options.tol.

package coda

import (
	"math"
	"slices"
	"sort"

	"github.com/katalvlaran/coda/matrix"
)

// clrVariances returns the unbiased variance across samples of each
// feature's log-ratio against ref.
func clrVariances(logX *matrix.Dense, ref []float64) ([]float64, error) {
	clr, err := matrix.SubColumns(logX, ref)
	if err != nil {
		return nil, err
	}

	return matrix.RowVariances(clr)
}

// refineSelection iterates step from the full row set until the selection
// stops changing. A selection that revisits an earlier state is a limit
// cycle; it resolves to the rows selected in every state of the cycle, and
// fails with *ConvergenceError when no row is.
func refineSelection(name string, d int, o options, step func(sel []int) ([]int, error)) ([]int, error) {
	sel := seq(d)
	history := [][]int{sel}
	for it := 1; it <= o.maxIter; it++ {
		next, err := step(sel)
		if err != nil {
			return nil, err
		}
		if len(next) == 0 {
			return nil, ErrEmptyReference
		}
		o.debug(name+" refinement", "iteration", it, "selected", len(next))
		if slices.Equal(next, sel) {
			return sel, nil
		}
		for k, prev := range history {
			if !slices.Equal(prev, next) {
				continue
			}
			stable := intersectSorted(history[k:])
			o.debug(name+" limit cycle", "period", len(history)-k, "selected", len(stable))
			if len(stable) == 0 {
				return nil, &ConvergenceError{Method: name, Iterations: it}
			}
			return stable, nil
		}
		history = append(history, next)
		sel = next
	}

	return nil, &ConvergenceError{Method: name, Iterations: o.maxIter}
}

// selectIQLR returns the IQLR reference rows of logX: the features whose
// CLR variance lies in [Q1, Q3] of all variances.
func selectIQLR(logX *matrix.Dense, o options) ([]int, error) {
	return refineSelection(IQLR{}.Name(), logX.Rows(), o, func(sel []int) ([]int, error) {
		ref, err := matrix.ColumnMeansOverRows(logX, sel)
		if err != nil {
			return nil, err
		}
		vars, err := clrVariances(logX, ref)
		if err != nil {
			return nil, err
		}
		q1, err := matrix.Quantile(vars, 0.25)
		if err != nil {
			return nil, err
		}
		q3, err := matrix.Quantile(vars, 0.75)
		if err != nil {
			return nil, err
		}
		next := make([]int, 0, len(sel))
		for i, v := range vars {
			if v >= q1 && v <= q3 {
				next = append(next, i)
			}
		}
		return next, nil
	})
}

// lvhaSize returns ⌈fraction·d⌉ clamped to [1, d].
func lvhaSize(fraction float64, d int) int {
	k := int(math.Ceil(fraction * float64(d)))
	if k < 1 {
		k = 1
	}
	if k > d {
		k = d
	}

	return k
}

// selectLVHA returns the LVHA reference rows of logX.
//
// Ranking per iteration:
//   - variance rank: position after a stable ascending sort of CLR variances;
//   - abundance rank: position after a stable descending sort of mean log
//     abundance (row means of logX, constant across iterations);
//   - features are ordered by rank sum, then variance, then index, and the
//     first ⌈fraction·D⌉ are kept.
func selectLVHA(logX *matrix.Dense, fraction float64, o options) ([]int, error) {
	d := logX.Rows()
	k := lvhaSize(fraction, d)
	abundance, err := matrix.RowMeans(logX)
	if err != nil {
		return nil, err
	}
	abRank := rankPositions(d, func(a, b int) bool { return abundance[a] > abundance[b] })

	return refineSelection(LVHA{}.Name(), d, o, func(sel []int) ([]int, error) {
		ref, err := matrix.ColumnMeansOverRows(logX, sel)
		if err != nil {
			return nil, err
		}
		vars, err := clrVariances(logX, ref)
		if err != nil {
			return nil, err
		}
		varRank := rankPositions(d, func(a, b int) bool { return vars[a] < vars[b] })

		order := seq(d)
		sort.SliceStable(order, func(x, y int) bool {
			a, b := order[x], order[y]
			ra, rb := varRank[a]+abRank[a], varRank[b]+abRank[b]
			if ra != rb {
				return ra < rb
			}
			if vars[a] != vars[b] {
				return vars[a] < vars[b]
			}
			return a < b
		})
		next := append([]int(nil), order[:k]...)
		sort.Ints(next)
		return next, nil
	})
}

// mdclrReference returns the weighted log reference of logX once the
// median-based weights reach a fixed point.
func mdclrReference(logX *matrix.Dense, o options) ([]float64, error) {
	d := logX.Rows()
	w := make([]float64, d)
	for i := range w {
		w[i] = 1
	}
	for it := 1; it <= o.maxIter; it++ {
		ref, err := matrix.ColumnWeightedMeans(logX, w)
		if err != nil {
			return nil, err
		}
		vars, err := clrVariances(logX, ref)
		if err != nil {
			return nil, err
		}
		med, err := matrix.Median(vars)
		if err != nil {
			return nil, err
		}
		var delta float64
		for i, v := range vars {
			nw := 1.0
			if v > med {
				nw = med / v
			}
			delta = math.Max(delta, math.Abs(nw-w[i]))
			w[i] = nw
		}
		o.debug("mdclr refinement", "iteration", it, "median", med, "delta", delta)
		if delta <= o.tol {
			return matrix.ColumnWeightedMeans(logX, w)
		}
	}

	return nil, &ConvergenceError{Method: MdCLR{}.Name(), Iterations: o.maxIter}
}

// rankPositions returns, for every index in [0, n), its position after a
// stable sort of 0..n-1 under less.
func rankPositions(n int, less func(a, b int) bool) []int {
	order := seq(n)
	sort.SliceStable(order, func(x, y int) bool { return less(order[x], order[y]) })
	rank := make([]int, n)
	for pos, i := range order {
		rank[i] = pos
	}

	return rank
}

// intersectSorted returns the indices present in every sorted set.
func intersectSorted(sets [][]int) []int {
	out := append([]int(nil), sets[0]...)
	for _, s := range sets[1:] {
		kept := out[:0]
		for _, i := range out {
			if _, found := slices.BinarySearch(s, i); found {
				kept = append(kept, i)
			}
		}
		out = kept
	}

	return out
}
