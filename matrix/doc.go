// Package matrix provides the dense numeric storage and column/row kernels
// used by the log-ratio transforms in package coda.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set and an
//     optional finite-only numeric policy.
//   - Column and row statistics (sums, maxima, geometric means of positive
//     entries, means, sample variances, weighted means) with deterministic
//     loop orders.
//   - Element-wise kernels (log, log1p scaling, broadcast subtraction) that
//     always return a fresh matrix and never mutate their input.
//   - R-7 quantiles and AllClose comparison helpers.
//
// Rows are features and columns are samples throughout this module, so most
// statistics come in a "per column over a subset of rows" flavor.
//
// See the examples in this package and in coda for usage patterns.
package matrix
