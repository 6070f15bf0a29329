// SPDX-License-Identifier: MIT

// Package countio reads and writes gene-by-cell count matrices and
// per-sample metadata tables as delimited text.
//
// Matrix layout: a header row holding an optional corner cell followed by
// sample names, then one row per feature with the feature name and its
// values. Headers without a corner cell (one field fewer than the data
// rows) are accepted as well.
//
// Metadata layout: a header row, then one row per sample keyed by the first
// column. ReadGroups extracts one named column as a sample → label map for
// the group-aware transforms in package coda.
//
// Compression is transparent on read: gzip, zstd, lz4 and snappy/S2 streams
// are recognized by their magic bytes. On write it follows the file
// extension (.gz, .zst, .lz4, .sz/.s2). The delimiter is a tab unless the
// path, with compression suffixes removed, ends in .csv.
package countio
