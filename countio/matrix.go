// SPDX-License-Identifier: MIT

package countio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/coda/coda"
	"github.com/katalvlaran/coda/matrix"
)

const utf8BOM = "\ufeff"

// newCSVReader returns a reader that leaves field-count checks to the caller.
func newCSVReader(r io.Reader, comma rune) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	return cr
}

// csvError converts an encoding/csv error into an ErrFormat with its line.
func csvError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return lineErrorf(pe.Line, fmt.Errorf("%w: %w", ErrFormat, pe.Err))
	}

	return fmt.Errorf("%w: %w", ErrFormat, err)
}

// readHeader reads the first record with the byte-order mark removed.
func readHeader(cr *csv.Reader) ([]string, error) {
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty input", ErrFormat)
	}
	if err != nil {
		return nil, csvError(err)
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	return header, nil
}

// ReadMatrix parses a delimited count matrix from plain text (use Open for
// compressed files). Every value must parse as a finite float; range checks
// such as non-negativity are left to coda.Transform.
//
// Errors wrap ErrFormat and name the offending line.
func ReadMatrix(r io.Reader, opts ...Option) (*coda.Frame, error) {
	o := gatherOptions(opts...)
	cr := newCSVReader(r, o.comma)
	header, err := readHeader(cr)
	if err != nil {
		return nil, err
	}
	cr.ReuseRecord = true

	var (
		samples  []string
		features []string
		data     []float64
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(err)
		}
		line, _ := cr.FieldPos(0)
		if samples == nil {
			switch len(rec) {
			case len(header):
				samples = header[1:]
			case len(header) + 1:
				samples = header
			default:
				return nil, lineErrorf(line, fmt.Errorf("%w: %d fields, header has %d", ErrFormat, len(rec), len(header)))
			}
			if len(samples) == 0 {
				return nil, lineErrorf(line, fmt.Errorf("%w: no sample columns", ErrFormat))
			}
		}
		if len(rec) != len(samples)+1 {
			return nil, lineErrorf(line, fmt.Errorf("%w: %d fields, want %d", ErrFormat, len(rec), len(samples)+1))
		}
		features = append(features, rec[0])
		for k, field := range rec[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, lineErrorf(line, fmt.Errorf("%w: column %d: %q is not a finite number", ErrFormat, k+2, field))
			}
			data = append(data, v)
		}
	}
	if len(features) == 0 {
		return nil, fmt.Errorf("%w: no feature rows", ErrFormat)
	}

	d, err := matrix.NewDenseFrom(len(features), len(samples), data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	f, err := coda.NewFrame(features, samples, d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	return f, nil
}

// ReadMatrixFile opens path (decompressing as needed; "-" is standard
// input) and parses it with the delimiter implied by its extension.
// Explicit options override the derived delimiter.
func ReadMatrixFile(path string, opts ...Option) (*coda.Frame, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	f, err := ReadMatrix(rc, append([]Option{WithDelimiter(DelimiterForPath(path))}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return f, nil
}

// WriteMatrix writes f as delimited text: a header with the corner cell and
// sample names, then one row per feature.
func WriteMatrix(w io.Writer, f *coda.Frame, opts ...Option) error {
	if f == nil || f.Data == nil {
		return coda.ErrNilFrame
	}
	o := gatherOptions(opts...)
	cw := csv.NewWriter(w)
	cw.Comma = o.comma

	rec := make([]string, 0, f.Cols()+1)
	rec = append(append(rec, o.corner), f.Samples...)
	if err := cw.Write(rec); err != nil {
		return err
	}
	for i, name := range f.Features {
		row, err := f.Data.Row(i)
		if err != nil {
			return err
		}
		rec = append(rec[:0], name)
		for _, v := range row {
			rec = append(rec, strconv.FormatFloat(v, 'g', o.precision, 64))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

// WriteMatrixFile writes f to path, compressing and choosing the delimiter
// from the extension; "-" writes to standard output.
func WriteMatrixFile(path string, f *coda.Frame, opts ...Option) (err error) {
	wc, err := Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := wc.Close(); err == nil {
			err = cerr
		}
	}()

	return WriteMatrix(wc, f, append([]Option{WithDelimiter(DelimiterForPath(path))}, opts...)...)
}
