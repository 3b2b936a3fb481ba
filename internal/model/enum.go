package model

import (
	"errors"
	"fmt"
)

// ErrUnknownEnum is returned when a status or method string is not one
// of the declared values.
var ErrUnknownEnum = errors.New("unknown enum value")

// scanEnum normalizes the driver representations of an ENUM/VARCHAR
// column into a string.
func scanEnum(src any) (string, error) {
	switch v := src.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case nil:
		return "", fmt.Errorf("%w: NULL", ErrUnknownEnum)
	}
	return "", fmt.Errorf("%w: unsupported type %T", ErrUnknownEnum, src)
}
