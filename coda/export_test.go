// SPDX-License-Identifier: MIT

package coda

// White-box bridges for coda_test; compiled only with the test binary.

var (
	IntersectSorted = intersectSorted
	LVHASize        = lvhaSize
	RankPositions   = rankPositions
)

// RefineSelection runs the shared IQLR/LVHA refinement loop over step.
func RefineSelection(name string, d, maxIter int, step func(sel []int) ([]int, error)) ([]int, error) {
	return refineSelection(name, d, gatherOptions(WithMaxIterations(maxIter)), step)
}
