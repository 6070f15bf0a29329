// Package coda is the root of a library and command for compositional
// log-ratio transforms of feature-by-sample count matrices, as produced by
// single-cell and bulk sequencing.
//
// Counts are compositional: a sample only carries information about the
// ratios between its features. The transforms here replace each log count
// by its log ratio to a per-sample reference, chosen by the method:
//
//	clr         mean log abundance of every feature
//	iqlr        features whose CLR variance is in the interquartile range
//	lvha        low-variance, high-abundance features
//	mdclr       median-weighted mean of every feature
//	manual      a fixed list of reference features
//	groupiqlr   iqlr selected separately per sample group
//	grouplvha   lvha selected separately per sample group
//	ilr         orthonormal balances of a sequential binary partition
//
// Zeros are handled before the logarithm either by a per-sample
// pseudo-count (s/gm, s/max, s/10000 or fixed) or by LogNorm,
// ln(1 + x·scale/library size).
//
// Packages:
//
//	matrix/            row-major float64 storage, validators, column/row statistics
//	coda/              Frame, adjusters, methods, reference refinement, ILR, Compare
//	countio/           delimited matrix and metadata files, gzip/zstd/lz4/snappy/s2
//	config/            TOML run files
//	internal/cli       cobra commands of the coda binary
//	cmd/coda           main
//
// Quick start:
//
//	x, _ := countio.ReadMatrixFile("counts.tsv.gz")
//	y, err := coda.Transform(x, coda.IQLR{}, coda.WithPseudocount(coda.SumOverConstant{}))
//
// or from the shell:
//
//	coda transform --in counts.tsv.gz --method iqlr --pseudocount s/10000 --out iqlr.tsv
package coda
