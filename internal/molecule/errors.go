package molecule

import (
	"errors"
	"fmt"
)

// ErrMalformed marks input bytes that do not follow the Molecule layout.
var ErrMalformed = errors.New("malformed molecule data")

// InvariantError reports a builder call that would produce bytes outside the
// fixed schema, such as an unknown union id or a fixvec item of the wrong
// width. It always indicates a programming error in the caller.
type InvariantError struct {
	Schema string
	Reason string
}

// Error implements the error interface.
func (e *InvariantError) Error() string {
	if e == nil {
		return "molecule invariant violation"
	}
	return fmt.Sprintf("molecule %s: %s", e.Schema, e.Reason)
}

func invariantf(schema, format string, args ...any) *InvariantError {
	return &InvariantError{Schema: schema, Reason: fmt.Sprintf(format, args...)}
}

func malformedf(schema, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", schema, fmt.Sprintf(format, args...), ErrMalformed)
}
