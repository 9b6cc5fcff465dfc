// Package errs holds the error values shared by the concord packages.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrInput marks a caller error: invalid text, malformed pattern,
	// out of range argument.
	ErrInput = errors.New("invalid input")

	// ErrNotFound marks a missing text in a repository.
	ErrNotFound = errors.New("not found")
)

// InputError describes which operation rejected its input and why.
type InputError struct {
	Op  string
	Msg string
	Err error
}

func (e *InputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Op, ErrInput, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, ErrInput, e.Msg)
}

// Unwrap exposes both the sentinel and the cause, so errors.Is works for
// ErrInput as well as for the underlying error.
func (e *InputError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInput, e.Err}
	}
	return []error{ErrInput}
}

// Input returns an InputError for op.
func Input(op, msg string) *InputError {
	return &InputError{Op: op, Msg: msg}
}

// Inputf returns an InputError with a formatted message.
func Inputf(op, format string, args ...any) *InputError {
	return &InputError{Op: op, Msg: fmt.Sprintf(format, args...)}
}

// WrapInput returns an InputError for op caused by err.
func WrapInput(op, msg string, err error) *InputError {
	return &InputError{Op: op, Msg: msg, Err: err}
}

// NotFound returns an error wrapping ErrNotFound.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// IsInput reports whether err is an input error.
func IsInput(err error) bool {
	return errors.Is(err, ErrInput)
}
