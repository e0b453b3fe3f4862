package resource

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch marks a document whose JSON shape does not match the
// expected record: unknown or missing fields, unknown tags, or numbers that do
// not fit the field width.
var ErrShapeMismatch = errors.New("document shape mismatch")

func shapef(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrShapeMismatch)
}

// missingFields collects required keys absent from one record.
type missingFields []string

func (m missingFields) err(record string) error {
	if len(m) == 0 {
		return nil
	}
	return shapef("%s: missing required field %q", record, m[0])
}

// need returns *value, recording name as missing when value is nil.
func need[T any](missing *missingFields, name string, value *T) T {
	if value == nil {
		*missing = append(*missing, name)
		var zero T
		return zero
	}
	return *value
}

// orDefault returns *value, or the zero value when the key was absent.
func orDefault[T any](value *T) T {
	if value == nil {
		var zero T
		return zero
	}
	return *value
}
