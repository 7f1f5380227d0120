// Package pathid extracts numeric resource ids from request paths.
package pathid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidID is matched by every error returned from Extract.
var ErrInvalidID = errors.New("invalid item ID")

// InvalidIDError describes why a path did not carry a valid id.
type InvalidIDError struct {
	Path   string
	Reason string
}

// Error implements the error interface.
func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid item ID in %q: %s", e.Path, e.Reason)
}

// Unwrap allows errors.Is(err, ErrInvalidID).
func (e *InvalidIDError) Unwrap() error {
	return ErrInvalidID
}

// Extract returns the positive id that follows prefix in path.
//
// The remainder must consist solely of ASCII digits: signs, whitespace,
// separators and trailing bytes are all rejected, as are zero and values
// that overflow int64.
func Extract(path, prefix string) (int64, error) {
	rest, ok := strings.CutPrefix(path, prefix)
	if !ok {
		return 0, invalid(path, "path does not start with "+prefix)
	}

	if rest == "" {
		return 0, invalid(path, "missing id")
	}

	for i := 0; i < len(rest); i++ {
		if rest[i] < '0' || rest[i] > '9' {
			return 0, invalid(path, fmt.Sprintf("unexpected character %q", rest[i]))
		}
	}

	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, invalid(path, "id out of range")
	}

	if id <= 0 {
		return 0, invalid(path, "id must be positive")
	}

	return id, nil
}

func invalid(path, reason string) error {
	return &InvalidIDError{Path: path, Reason: reason}
}
