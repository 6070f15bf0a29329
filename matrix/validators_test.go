// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/coda/matrix"
)

func TestValidateNotNil(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, matrix.ValidateNotNil(nil), matrix.ErrNilMatrix)
	var typed *matrix.Dense
	require.ErrorIs(t, matrix.ValidateNotNil(typed), matrix.ErrNilMatrix)
	require.NoError(t, matrix.ValidateNotNil(MustDense(t, 1, 1)))
}

func TestValidateNonNegative(t *testing.T) {
	t.Parallel()

	ok := NewFilledDense(t, 2, 2, []float64{0, 1, 2, 3})
	require.NoError(t, matrix.ValidateNonNegative(ok))

	neg := NewFilledDense(t, 2, 2, []float64{0, 1, -2, 3})
	err := matrix.ValidateNonNegative(hide{neg})
	require.ErrorIs(t, err, matrix.ErrNegative)
	require.Contains(t, err.Error(), "(1,0)")

	loose, err := matrix.NewDenseFrom(1, 2, []float64{1, math.NaN()}, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	require.ErrorIs(t, matrix.ValidateNonNegative(loose), matrix.ErrNaNInf)
	require.ErrorIs(t, matrix.ValidateFinite(loose), matrix.ErrNaNInf)
}

func TestValidateIndicesAndVecLen(t *testing.T) {
	t.Parallel()

	require.NoError(t, matrix.ValidateIndices([]int{0, 2}, 3))
	require.ErrorIs(t, matrix.ValidateIndices(nil, 3), matrix.ErrEmptySelection)
	require.ErrorIs(t, matrix.ValidateIndices([]int{-1}, 3), matrix.ErrOutOfRange)

	require.NoError(t, matrix.ValidateVecLen([]float64{1, 2}, 2))
	require.ErrorIs(t, matrix.ValidateVecLen(nil, 2), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateVecLen([]float64{1}, 2), matrix.ErrDimensionMismatch)
}
