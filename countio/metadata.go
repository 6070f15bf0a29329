// SPDX-License-Identifier: MIT

package countio

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ReadGroups parses a per-sample metadata table and returns the values of
// the named column keyed by sample (first column). Empty cells are kept as
// empty labels; the group-aware transforms reject them.
//
// Errors:
//   - ErrColumnNotFound when column is not in the header.
//   - ErrFormat for ragged rows or repeated sample names.
func ReadGroups(r io.Reader, column string, opts ...Option) (map[string]string, error) {
	o := gatherOptions(opts...)
	cr := newCSVReader(r, o.comma)
	header, err := readHeader(cr)
	if err != nil {
		return nil, err
	}
	col := -1
	for k, name := range header {
		if strings.TrimSpace(name) == column {
			col = k
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("%q: %w", column, ErrColumnNotFound)
	}

	groups := make(map[string]string)
	width := -1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(err)
		}
		line, _ := cr.FieldPos(0)
		if width < 0 {
			// A header without a corner cell is one field short of the rows.
			width = len(header)
			if len(rec) == len(header)+1 {
				width++
			}
		}
		if len(rec) != width {
			return nil, lineErrorf(line, fmt.Errorf("%w: %d fields, want %d", ErrFormat, len(rec), width))
		}
		sample := rec[0]
		if _, dup := groups[sample]; dup {
			return nil, lineErrorf(line, fmt.Errorf("%w: duplicate sample %q", ErrFormat, sample))
		}
		groups[sample] = strings.TrimSpace(rec[col+width-len(header)])
	}

	return groups, nil
}

// ReadGroupsFile opens path (decompressing as needed) and calls ReadGroups
// with the delimiter implied by its extension.
func ReadGroupsFile(path, column string, opts ...Option) (map[string]string, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	groups, err := ReadGroups(rc, column, append([]Option{WithDelimiter(DelimiterForPath(path))}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return groups, nil
}
