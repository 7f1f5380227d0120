// Package model defines data structures used throughout the application.
package model

import (
	"errors"
	"fmt"
	"math"
)

// Validation errors for Item.
var (
	ErrInvalidName     = errors.New("invalid item name")
	ErrEmptyName       = fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	ErrNameTooLong     = fmt.Errorf("%w: name cannot exceed %d bytes", ErrInvalidName, MaxNameLength)
	ErrValueOutOfRange = errors.New("value is outside the 64-bit integer range")
	ErrValueNotFinite  = errors.New("value must be a finite number")
)

// Validation constants.
const (
	MinNameLength = 1
	MaxNameLength = 63
)

// Name is an item name whose length in bytes is always within
// [MinNameLength, MaxNameLength]. Use NewName to obtain one.
type Name string

// NewName validates s and returns it as a Name.
func NewName(s string) (Name, error) {
	if len(s) < MinNameLength {
		return "", ErrEmptyName
	}

	if len(s) > MaxNameLength {
		return "", ErrNameTooLong
	}

	return Name(s), nil
}

// String returns the name as a plain string.
func (n Name) String() string {
	return string(n)
}

// Item represents a stored resource.
type Item struct {
	ID    int64 `json:"id" yaml:"id"`
	Name  Name  `json:"name" yaml:"name"`
	Value int64 `json:"value" yaml:"value"`
}

// ItemPatch carries the optional fields of a partial update.
// A nil field leaves the stored value unchanged.
type ItemPatch struct {
	Name  *string
	Value *int64
}

// IsEmpty reports whether the patch changes nothing.
func (p ItemPatch) IsEmpty() bool {
	return p.Name == nil && p.Value == nil
}

// ValueFromNumber converts a decoded JSON number to an item value.
// Fractional parts are truncated toward zero.
func ValueFromNumber(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrValueNotFinite
	}

	// float64(math.MaxInt64) rounds up to 2^63, which is itself out of range.
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, ErrValueOutOfRange
	}

	return int64(f), nil
}
