package query

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument marks a request the engine refuses to evaluate.
var ErrInvalidArgument = errors.New("invalid argument")

// ArgumentError names the offending request field. It unwraps to ErrInvalidArgument.
type ArgumentError struct {
	Field   string
	Message string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidArgument, e.Field, e.Message)
}

func (e *ArgumentError) Unwrap() error { return ErrInvalidArgument }

func invalid(field, format string, args ...any) error {
	return &ArgumentError{Field: field, Message: fmt.Sprintf(format, args...)}
}
