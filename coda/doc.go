// SPDX-License-Identifier: MIT

// Package coda applies compositional log-ratio transforms to count matrices.
//
// A Frame holds non-negative counts with features (genes) as rows and
// samples (cells) as columns. Transform moves the counts into log space,
// picks a per-sample reference and returns the log-ratios:
//
//   - CLR: all features.
//   - IQLR: features with CLR variance inside the interquartile range.
//   - LVHA: low-variance, high-abundance features by combined rank.
//   - MdCLR: all features, down-weighted above the median variance.
//   - Manual: a caller-supplied feature list.
//   - GroupIQLR, GroupLVHA: IQLR or LVHA selected within each sample group.
//   - ILR: orthonormal balances of a sequential binary partition (D−1 rows).
//
// Zeros are handled by a Pseudocount strategy (s/gm by default, s/max,
// s/<divisor> or a fixed value) or, with WithLogNorm, by library-size
// log-normalization.
//
// Everything is synchronous and deterministic; no package-level state is
// mutated, so concurrent calls on independent frames are safe. Iterative
// methods are bounded by WithMaxIterations and report *ConvergenceError at
// the cap.
//
// Compare quantifies the disagreement of two transforms, and Frame.Digest
// fingerprints a frame for reproducibility checks.
package coda
