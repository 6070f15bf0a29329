// SPDX-License-Identifier: MIT

package coda

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/coda/matrix"
)

// orthonormalTol bounds |VᵀV − I| for an accepted basis.
const orthonormalTol = 1e-9

// PivotPartition returns the pivot sequential binary partition of d parts:
// row k has +1 at k and −1 at k+1..d−1.
func PivotPartition(d int) [][]int8 {
	if d < 2 {
		return nil
	}
	p := make([][]int8, d-1)
	for k := range p {
		row := make([]int8, d)
		row[k] = 1
		for i := k + 1; i < d; i++ {
			row[i] = -1
		}
		p[k] = row
	}

	return p
}

// ILRBasis builds the D×(D−1) contrast matrix V of a sequential binary
// partition over features, together with one label per contrast.
//
// Balance k, with r parts marked +1 and s parts marked −1, has
//
//	V[i,k] = +sqrt(s / (r(r+s)))  for + parts,
//	V[i,k] = −sqrt(r / (s(r+s)))  for − parts,
//	V[i,k] = 0                    otherwise.
//
// A nil partition selects PivotPartition and labels contrasts
// "ilr.<feature>" after the pivot feature; custom partitions are labeled
// "ilr1".."ilr<D−1>".
//
// Errors:
//   - ErrTooFewFeatures for D < 2.
//   - ErrBadPartition for wrong dimensions, entries outside {−1,0,+1}, a row
//     without both signs, or contrasts that are not orthonormal.
func ILRBasis(features []string, partition [][]int8) (*mat.Dense, []string, error) {
	const op = "ILRBasis"
	d := len(features)
	if d < 2 {
		return nil, nil, codaErrorf(op, ErrTooFewFeatures)
	}
	labels := make([]string, d-1)
	if partition == nil {
		partition = PivotPartition(d)
		for k := range labels {
			labels[k] = "ilr." + features[k]
		}
	} else {
		for k := range labels {
			labels[k] = "ilr" + strconv.Itoa(k+1)
		}
	}
	if len(partition) != d-1 {
		return nil, nil, codaErrorf(op, fmt.Errorf("%d rows for %d features: %w", len(partition), d, ErrBadPartition))
	}

	v := mat.NewDense(d, d-1, nil)
	for k, row := range partition {
		if len(row) != d {
			return nil, nil, codaErrorf(op, fmt.Errorf("row %d has %d entries: %w", k, len(row), ErrBadPartition))
		}
		var r, s int
		for _, e := range row {
			switch e {
			case 1:
				r++
			case -1:
				s++
			case 0:
			default:
				return nil, nil, codaErrorf(op, fmt.Errorf("row %d entry %d: %w", k, e, ErrBadPartition))
			}
		}
		if r == 0 || s == 0 {
			return nil, nil, codaErrorf(op, fmt.Errorf("row %d needs both signs: %w", k, ErrBadPartition))
		}
		rf, sf := float64(r), float64(s)
		plus := math.Sqrt(sf / (rf * (rf + sf)))
		minus := -math.Sqrt(rf / (sf * (rf + sf)))
		for i, e := range row {
			switch e {
			case 1:
				v.Set(i, k, plus)
			case -1:
				v.Set(i, k, minus)
			}
		}
	}

	var gram mat.Dense
	gram.Mul(v.T(), v)
	ones := make([]float64, d-1)
	for i := range ones {
		ones[i] = 1
	}
	if !mat.EqualApprox(&gram, mat.NewDiagDense(d-1, ones), orthonormalTol) {
		return nil, nil, codaErrorf(op, fmt.Errorf("contrasts not orthonormal: %w", ErrBadPartition))
	}

	return v, labels, nil
}

// ilrCoordinates returns Vᵀ·logX as a (D−1)×n matrix.
func ilrCoordinates(v *mat.Dense, logX *matrix.Dense) (*matrix.Dense, error) {
	d, n := logX.Shape()
	x := mat.NewDense(d, n, logX.RawRowMajor())
	var z mat.Dense
	z.Mul(v.T(), x)

	out := make([]float64, 0, (d-1)*n)
	for i := 0; i < d-1; i++ {
		out = append(out, mat.Row(nil, i, &z)...)
	}

	return matrix.NewDenseFrom(d-1, n, out)
}
