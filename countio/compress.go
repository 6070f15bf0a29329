// SPDX-License-Identifier: MIT

package countio

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies a stream compression format.
type Compression int

const (
	None   Compression = iota // plain text
	Gzip                      // RFC 1952, .gz
	Zstd                      // Zstandard frame, .zst
	LZ4                       // LZ4 frame, .lz4
	Snappy                    // snappy framed stream, .sz
	S2                        // S2 stream, .s2
)

var compressionNames = [...]string{"none", "gzip", "zstd", "lz4", "snappy", "s2"}

func (c Compression) String() string {
	if c < 0 || int(c) >= len(compressionNames) {
		return fmt.Sprintf("Compression(%d)", int(c))
	}

	return compressionNames[c]
}

var extensions = map[string]Compression{
	".gz":  Gzip,
	".zst": Zstd,
	".lz4": LZ4,
	".sz":  Snappy,
	".s2":  S2,
}

// Magic prefixes. Snappy and S2 framed streams share the stream identifier
// chunk header; s2.Reader decodes both.
var (
	magicGzip   = []byte{0x1f, 0x8b}
	magicZstd   = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4    = []byte{0x04, 0x22, 0x4d, 0x18}
	magicFramed = []byte{0xff, 0x06, 0x00, 0x00}
)

// CompressionForPath returns the compression implied by the file extension.
func CompressionForPath(path string) Compression {
	return extensions[strings.ToLower(filepath.Ext(path))]
}

// DelimiterForPath returns ',' when the path, without a compression
// extension, ends in .csv, and '\t' otherwise.
func DelimiterForPath(path string) rune {
	base := path
	if CompressionForPath(base) != None {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if strings.EqualFold(filepath.Ext(base), ".csv") {
		return ','
	}

	return '\t'
}

// detect peeks at the stream head and reports its compression.
func detect(br *bufio.Reader) Compression {
	head, _ := br.Peek(len(magicZstd))
	switch {
	case bytes.HasPrefix(head, magicGzip):
		return Gzip
	case bytes.HasPrefix(head, magicZstd):
		return Zstd
	case bytes.HasPrefix(head, magicLZ4):
		return LZ4
	case bytes.HasPrefix(head, magicFramed):
		return S2
	}

	return None
}

// Decompress returns a reader over the decoded content of r, detecting the
// compression from magic bytes. Plain streams pass through.
func Decompress(r io.Reader) (io.ReadCloser, Compression, error) {
	br := bufio.NewReader(r)
	c := detect(br)
	switch c {
	case Gzip:
		gr, err := gzip.NewReader(br)
		if err != nil {
			return nil, c, fmt.Errorf("gzip: %w", err)
		}
		return gr, c, nil
	case Zstd:
		zr, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, c, fmt.Errorf("zstd: %w", err)
		}
		return zr.IOReadCloser(), c, nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(br)), c, nil
	case S2:
		return io.NopCloser(s2.NewReader(br)), c, nil
	}

	return io.NopCloser(br), None, nil
}

// Compress wraps w with an encoder for c. Closing the result flushes the
// encoder but does not close w.
func Compress(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case None:
		return nopWriteCloser{w}, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zstd:
		zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return zw, nil
	case LZ4:
		return lz4.NewWriter(w), nil
	case Snappy:
		return s2.NewWriter(w, s2.WriterSnappyCompat()), nil
	case S2:
		return s2.NewWriter(w), nil
	}

	return nil, fmt.Errorf("countio: unsupported compression %v", c)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
