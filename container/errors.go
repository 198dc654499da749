package container

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed is returned when an artifact does not follow the format.
	ErrMalformed = errors.New("malformed artifact")

	// ErrInvalidName is returned when a name cannot be stored in or restored
	// from an artifact.
	ErrInvalidName = errors.New("invalid name")
)

// malformed wraps ErrMalformed with a description of what went wrong.
func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}
