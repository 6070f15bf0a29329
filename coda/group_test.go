// SPDX-License-Identifier: MIT

package coda_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/coda/coda"
)

// parityGroups labels even samples "even" and odd samples "odd", so the two
// groups interleave across columns.
func parityGroups(f *coda.Frame) (map[string]string, map[string][]int) {
	groups := make(map[string]string, f.Cols())
	cols := map[string][]int{}
	for j, s := range f.Samples {
		label := "odd"
		if j%2 == 0 {
			label = "even"
		}
		groups[s] = label
		cols[label] = append(cols[label], j)
	}

	return groups, cols
}

func TestGroupMethods_EqualPerGroupTransforms(t *testing.T) {
	t.Parallel()

	x := SyntheticCounts(t, 24, 12, 1)
	groups, cols := parityGroups(x)

	cases := []struct {
		grouped coda.Method
		plain   coda.Method
	}{
		{coda.GroupIQLR{Groups: groups}, coda.IQLR{}},
		{coda.GroupLVHA{Groups: groups}, coda.LVHA{}},
		{coda.GroupLVHA{Groups: groups, Fraction: 0.5}, coda.LVHA{Fraction: 0.5}},
	}
	for _, tc := range cases {
		got, err := coda.Transform(x, tc.grouped)
		require.NoError(t, err, tc.grouped.Name())
		require.Equal(t, x.Samples, got.Samples)

		for label, idx := range cols {
			sub, err := x.SubsetSamples(idx)
			require.NoError(t, err)
			want, err := coda.Transform(sub, tc.plain)
			require.NoError(t, err, label)

			for k, j := range idx {
				wantCol := Column(t, want, k)
				gotCol := Column(t, got, j)
				require.InDeltaSlicef(t, wantCol, gotCol, 1e-12, "%s group %s sample %d", tc.grouped.Name(), label, j)
			}
		}
	}
}

func TestGroupMethods_SingleGroupEqualsPlain(t *testing.T) {
	t.Parallel()

	x := SyntheticCounts(t, 20, 8, 9)
	groups := make(map[string]string, x.Cols())
	for _, s := range x.Samples {
		groups[s] = "all"
	}
	a, err := coda.Transform(x, coda.GroupIQLR{Groups: groups})
	require.NoError(t, err)
	b, err := coda.Transform(x, coda.IQLR{})
	require.NoError(t, err)
	require.Equal(t, b.Data.RawRowMajor(), a.Data.RawRowMajor())
}

func TestGroupMethods_MissingLabel(t *testing.T) {
	t.Parallel()

	x := SyntheticCounts(t, 12, 6, 3)
	groups, _ := parityGroups(x)
	delete(groups, "c3")
	for _, m := range []coda.Method{coda.GroupIQLR{Groups: groups}, coda.GroupLVHA{Groups: groups}} {
		_, err := coda.Transform(x, m)
		require.ErrorIs(t, err, coda.ErrMissingGroup, m.Name())
		require.ErrorIs(t, err, coda.ErrInvalidConfig, m.Name())
	}

	groups["c3"] = ""
	_, err := coda.Transform(x, coda.GroupIQLR{Groups: groups})
	require.ErrorIs(t, err, coda.ErrMissingGroup)

	_, err = coda.Transform(x, coda.GroupLVHA{})
	require.ErrorIs(t, err, coda.ErrMissingGroup)
}

func TestGroupMethods_ExtraLabelsIgnored(t *testing.T) {
	t.Parallel()

	x := SyntheticCounts(t, 12, 6, 3)
	groups, _ := parityGroups(x)
	a, err := coda.Transform(x, coda.GroupIQLR{Groups: groups})
	require.NoError(t, err)

	groups["not-a-sample"] = "elsewhere"
	b, err := coda.Transform(x, coda.GroupIQLR{Groups: groups})
	require.NoError(t, err)
	require.Equal(t, a.Digest(), b.Digest())
}
