// SPDX-License-Identifier: MIT

package countio

import (
	"unicode/utf8"
)

// DefaultCorner is the header corner cell written before sample names.
const DefaultCorner = "feature"

const (
	panicBadDelimiter = "countio: WithDelimiter: delimiter must be a valid rune other than quote, CR or LF"
	panicBadPrecision = "countio: WithPrecision: precision must be >= -1"
)

// Option configures readers and writers.
type Option func(*options)

type options struct {
	comma     rune
	precision int
	corner    string
}

// WithDelimiter sets the field delimiter (default tab; the *File helpers
// derive it from the path).
func WithDelimiter(r rune) Option {
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError || !utf8.ValidRune(r) {
		panic(panicBadDelimiter)
	}

	return func(o *options) { o.comma = r }
}

// WithPrecision sets the number of significant digits written per value;
// -1 (default) writes the shortest representation that round-trips.
func WithPrecision(p int) Option {
	if p < -1 {
		panic(panicBadPrecision)
	}

	return func(o *options) { o.precision = p }
}

// WithCorner sets the header corner cell written by WriteMatrix.
func WithCorner(s string) Option {
	return func(o *options) { o.corner = s }
}

func gatherOptions(opts ...Option) options {
	o := options{comma: '\t', precision: -1, corner: DefaultCorner}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
