package model

import (
	"encoding/json"
	"errors"
	"reflect"
	"strconv"
)

// Number is a JSON number kept in its literal form so that integers
// survive decoding without passing through float64.
type Number string

// UnmarshalJSON accepts only JSON number literals.
func (n *Number) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || (data[0] != '-' && (data[0] < '0' || data[0] > '9')) {
		return &json.UnmarshalTypeError{
			Value: literalKind(data),
			Type:  reflect.TypeFor[Number](),
		}
	}

	*n = Number(data)
	return nil
}

// Int64 converts the literal to an item value. Integer literals are exact
// across the whole int64 range; fractional or exponent forms are truncated
// toward zero.
func (n Number) Int64() (int64, error) {
	i, err := strconv.ParseInt(string(n), 10, 64)
	if err == nil {
		return i, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return 0, ErrValueOutOfRange
	}

	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, ErrValueOutOfRange
		}
		return 0, ErrValueNotFinite
	}

	return ValueFromNumber(f)
}

func literalKind(data []byte) string {
	if len(data) == 0 {
		return "empty"
	}
	switch data[0] {
	case '"':
		return "string"
	case '{':
		return "object"
	case '[':
		return "array"
	case 't', 'f':
		return "bool"
	default:
		return "literal"
	}
}
