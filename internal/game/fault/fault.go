// Package fault defines the two error kinds reported by the accounting engine.
//
// Every failure returned by the game packages wraps exactly one of
// ErrInvalidArgument or ErrInvalidState; callers classify with errors.Is.
// The content loaders are the exception for file system failures, which they
// return wrapped with the path and no kind.
package fault

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks malformed input rejected at construction: an
	// out-of-range number, a missing required value, a negative amount where a
	// positive one is required, or a malformed model name.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidState marks a well-formed request that is inconsistent with the
	// state accumulated so far.
	ErrInvalidState = errors.New("invalid state")
)

// Argument returns an error wrapping ErrInvalidArgument with a formatted message.
func Argument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// State returns an error wrapping ErrInvalidState with a formatted message.
func State(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, fmt.Sprintf(format, args...))
}

// AsState rewraps err as an ErrInvalidState, keeping its message and cause chain.
// A nil err yields nil; an error that already is ErrInvalidState is returned as is.
func AsState(err error) error {
	if err == nil || errors.Is(err, ErrInvalidState) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrInvalidState, err)
}
