// SPDX-License-Identifier: MIT

package countio

import (
	"io"
	"os"
)

// multiCloser closes every closer in order and keeps the first error.
type multiCloser struct {
	closers []io.Closer
}

func (m multiCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}

	return err
}

type readCloser struct {
	io.Reader
	multiCloser
}

type writeCloser struct {
	io.Writer
	multiCloser
}

// Open opens path for reading with transparent decompression.
// "-" reads standard input.
func Open(path string) (io.ReadCloser, error) {
	src := io.NopCloser(os.Stdin)
	if path != "-" {
		fh, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		src = fh
	}
	dec, _, err := Decompress(src)
	if err != nil {
		_ = src.Close()
		return nil, err
	}

	return readCloser{Reader: dec, multiCloser: multiCloser{closers: []io.Closer{dec, src}}}, nil
}

// Create creates path for writing, compressing according to its extension.
// "-" writes uncompressed to standard output.
func Create(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	fh, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	enc, err := Compress(fh, CompressionForPath(path))
	if err != nil {
		_ = fh.Close()
		return nil, err
	}

	return writeCloser{Writer: enc, multiCloser: multiCloser{closers: []io.Closer{enc, fh}}}, nil
}
