// SPDX-License-Identifier: MIT

package coda

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/katalvlaran/coda/matrix"
)

// Frame is a labeled matrix: rows are features (genes, or ILR contrasts
// after an ILR transform) and columns are samples (cells).
//
// A Frame returned by this package owns its slices and data; callers may
// mutate it freely. Transforms never mutate their input Frame.
type Frame struct {
	Features []string      // row names, unique, len == Data.Rows()
	Samples  []string      // column names, unique, len == Data.Cols()
	Data     *matrix.Dense // row-major values
}

// NewFrame validates names against the data shape and returns a Frame that
// owns copies of both name slices. The data matrix is not copied.
//
// Errors:
//   - ErrNilFrame when data is nil.
//   - ErrShapeMismatch when name counts differ from the shape.
//   - ErrDuplicateName when a feature or sample name repeats.
func NewFrame(features, samples []string, data *matrix.Dense) (*Frame, error) {
	f := &Frame{
		Features: cloneStrings(features),
		Samples:  cloneStrings(samples),
		Data:     data,
	}
	if err := f.validate(); err != nil {
		return nil, codaErrorf("NewFrame", err)
	}

	return f, nil
}

// validate checks the Frame invariants.
func (f *Frame) validate() error {
	if f == nil || f.Data == nil {
		return ErrNilFrame
	}
	if len(f.Features) != f.Data.Rows() {
		return fmt.Errorf("%d features for %d rows: %w", len(f.Features), f.Data.Rows(), ErrShapeMismatch)
	}
	if len(f.Samples) != f.Data.Cols() {
		return fmt.Errorf("%d samples for %d columns: %w", len(f.Samples), f.Data.Cols(), ErrShapeMismatch)
	}
	if name, dup := firstDuplicate(f.Features); dup {
		return fmt.Errorf("feature %q: %w", name, ErrDuplicateName)
	}
	if name, dup := firstDuplicate(f.Samples); dup {
		return fmt.Errorf("sample %q: %w", name, ErrDuplicateName)
	}

	return nil
}

// Rows returns the number of features.
func (f *Frame) Rows() int { return f.Data.Rows() }

// Cols returns the number of samples.
func (f *Frame) Cols() int { return f.Data.Cols() }

// Clone returns a deep copy.
func (f *Frame) Clone() *Frame {
	return &Frame{
		Features: cloneStrings(f.Features),
		Samples:  cloneStrings(f.Samples),
		Data:     f.Data.Clone().(*matrix.Dense),
	}
}

// FeatureIndex returns the row of the named feature, or -1.
func (f *Frame) FeatureIndex(name string) int {
	for i, n := range f.Features {
		if n == name {
			return i
		}
	}

	return -1
}

// SubsetSamples returns a new Frame restricted to the given columns, in the
// given order.
func (f *Frame) SubsetSamples(cols []int) (*Frame, error) {
	if err := f.validate(); err != nil {
		return nil, codaErrorf("SubsetSamples", err)
	}
	rows := seq(f.Rows())
	sub, err := f.Data.Induced(rows, cols)
	if err != nil {
		return nil, codaErrorf("SubsetSamples", err)
	}
	samples := make([]string, len(cols))
	for k, j := range cols {
		samples[k] = f.Samples[j]
	}

	return NewFrame(f.Features, samples, sub)
}

// Digest returns an xxhash64 fingerprint of the names and the IEEE-754 bits
// of the values (row-major). Equal digests mean bitwise-identical frames
// with overwhelming probability.
func (f *Frame) Digest() uint64 {
	h := xxhash.New()
	sep := []byte{0}
	for _, name := range f.Features {
		_, _ = h.WriteString(name)
		_, _ = h.Write(sep)
	}
	_, _ = h.Write([]byte{1})
	for _, name := range f.Samples {
		_, _ = h.WriteString(name)
		_, _ = h.Write(sep)
	}
	var buf [8]byte
	if f.Data != nil {
		f.Data.Do(func(_, _ int, v float64) bool {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			_, _ = h.Write(buf[:])
			return true
		})
	}

	return h.Sum64()
}

// cloneStrings returns an independent copy of s.
func cloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)

	return out
}

// firstDuplicate returns the first repeated name in s.
func firstDuplicate(s []string) (string, bool) {
	seen := make(map[string]struct{}, len(s))
	for _, name := range s {
		if _, ok := seen[name]; ok {
			return name, true
		}
		seen[name] = struct{}{}
	}

	return "", false
}

// seq returns [0, 1, ..., n-1].
func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}

	return out
}
