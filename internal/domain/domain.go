// Package domain validates DNS domain names.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Length limits for a domain name and each of its labels.
const (
	MaxNameLength  = 253
	MaxLabelLength = 63
	MinTLDLength   = 2
)

// Validation errors.
var (
	ErrInvalid        = errors.New("invalid domain name")
	ErrEmpty          = fmt.Errorf("%w: empty", ErrInvalid)
	ErrTooLong        = fmt.Errorf("%w: longer than %d characters", ErrInvalid, MaxNameLength)
	ErrEmptyLabel     = fmt.Errorf("%w: empty label", ErrInvalid)
	ErrLabelTooLong   = fmt.Errorf("%w: label longer than %d characters", ErrInvalid, MaxLabelLength)
	ErrLabelHyphen    = fmt.Errorf("%w: label starts or ends with a hyphen", ErrInvalid)
	ErrLabelCharacter = fmt.Errorf("%w: label character outside letters, digits and hyphen", ErrInvalid)
	ErrTLD            = fmt.Errorf("%w: top-level label must be at least %d letters", ErrInvalid, MinTLDLength)
)

// IsValid reports whether name is a valid domain name.
func IsValid(name string) bool {
	return Validate(name) == nil
}

// Validate checks name against RFC 1034/1035 host name rules: at most 253
// characters, dot-separated labels of 1 to 63 letters, digits and hyphens
// with no hyphen at either end, and an alphabetic top-level label of at
// least two characters. A trailing dot is not accepted.
func Validate(name string) error {
	if name == "" {
		return ErrEmpty
	}
	if len(name) > MaxNameLength {
		return ErrTooLong
	}

	labels := strings.Split(name, ".")
	for _, label := range labels {
		if err := validateLabel(label); err != nil {
			return fmt.Errorf("%w: %q", err, label)
		}
	}

	tld := labels[len(labels)-1]
	if len(tld) < MinTLDLength || !isAlpha(tld) {
		return fmt.Errorf("%w: %q", ErrTLD, tld)
	}

	return nil
}

func validateLabel(label string) error {
	switch {
	case label == "":
		return ErrEmptyLabel
	case len(label) > MaxLabelLength:
		return ErrLabelTooLong
	case label[0] == '-' || label[len(label)-1] == '-':
		return ErrLabelHyphen
	}

	for i := 0; i < len(label); i++ {
		c := label[i]
		if !isLetter(c) && !isDigit(c) && c != '-' {
			return ErrLabelCharacter
		}
	}
	return nil
}

func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isLetter(s[i]) {
			return false
		}
	}
	return true
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
