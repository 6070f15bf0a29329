// SPDX-License-Identifier: MIT

// Package coda: functional configuration for transforms.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - Defaults are constants; every call resolves its own options record.
//   - Safe by construction: WithX panics only on nonsensical constant
//     values (programmer error). Data-dependent problems are errors.
package coda

import (
	"math"

	"github.com/charmbracelet/log"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultMaxIterations caps the fixed-point refinement of IQLR, LVHA and mdCLR.
	DefaultMaxIterations = 100

	// DefaultTolerance is the mdCLR convergence threshold on max |Δweight|.
	DefaultTolerance = 1e-10

	// DefaultScaleFactor is the LogNorm library-size target.
	DefaultScaleFactor = 10000.0

	// DefaultLibraryDivisor is the divisor of the s/10000 pseudo-count.
	DefaultLibraryDivisor = 10000.0

	// DefaultLVHAFraction is the share of features LVHA keeps as reference.
	DefaultLVHAFraction = 0.25
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicNilPseudocount = "coda: WithPseudocount: pseudo-count must not be nil"
	panicScaleInvalid   = "coda: WithLogNorm: scale must be finite and > 0"
	panicMaxIterInvalid = "coda: WithMaxIterations: n must be >= 1"
	panicTolInvalid     = "coda: WithTolerance: tol must be finite and >= 0"
)

// Option mutates internal options.
type Option func(*options)

// options is the resolved, read-only configuration of a single call.
type options struct {
	pseudo  Pseudocount
	logNorm *logNorm // nil: pseudo-count path
	maxIter int
	tol     float64
	logger  *log.Logger // nil: silent
}

// WithPseudocount selects the zero-replacement strategy (default SumOverGeoMean).
// Ignored when WithLogNorm is also given.
func WithPseudocount(p Pseudocount) Option {
	if p == nil {
		panic(panicNilPseudocount)
	}

	return func(o *options) { o.pseudo = p }
}

// WithLogNorm switches to the LogNorm adjuster: ln(1 + x·scale/librarySize)
// per sample, or the input used as-is when preNormalized is true.
func WithLogNorm(scale float64, preNormalized bool) Option {
	if math.IsNaN(scale) || math.IsInf(scale, 0) || scale <= 0 {
		panic(panicScaleInvalid)
	}

	return func(o *options) { o.logNorm = &logNorm{scale: scale, preNormalized: preNormalized} }
}

// WithMaxIterations sets the refinement cap for iterative methods.
func WithMaxIterations(n int) Option {
	if n < 1 {
		panic(panicMaxIterInvalid)
	}

	return func(o *options) { o.maxIter = n }
}

// WithTolerance sets the mdCLR weight convergence threshold.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicTolInvalid)
	}

	return func(o *options) { o.tol = tol }
}

// WithLogger enables debug logging of reference refinement.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// gatherOptions resolves setters over the documented defaults.
func gatherOptions(opts ...Option) options {
	o := options{
		pseudo:  SumOverGeoMean{},
		maxIter: DefaultMaxIterations,
		tol:     DefaultTolerance,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// debug logs at debug level when a logger is configured.
func (o options) debug(msg string, keyvals ...interface{}) {
	if o.logger != nil {
		o.logger.Debug(msg, keyvals...)
	}
}
