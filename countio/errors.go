// SPDX-License-Identifier: MIT

package countio

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat marks malformed delimited input.
	ErrFormat = errors.New("countio: malformed input")

	// ErrColumnNotFound indicates a metadata column absent from the header.
	ErrColumnNotFound = fmt.Errorf("%w: column not found", ErrFormat)
)

// lineErrorf wraps err with the 1-based input line it was found on.
func lineErrorf(line int, err error) error {
	return fmt.Errorf("line %d: %w", line, err)
}
