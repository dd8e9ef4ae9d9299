package apperr

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates a record referenced by id does not exist.
var ErrNotFound = errors.New("record not found")

// ErrInvalidTransition indicates a disallowed concern status change.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrTitleConflict indicates a rename target that would collide with
// another open concern under fuzzy matching.
var ErrTitleConflict = errors.New("another concern already matches that name")

// NoMatchError is returned when a free-text target name cannot be resolved
// to any active concern. It is user-facing and non-retryable: the caller
// should surface the message instead of retrying.
type NoMatchError struct {
	Target string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("could not find a concern matching %q", e.Target)
}

// NoMatch builds a NoMatchError for the attempted target.
func NoMatch(target string) error {
	return &NoMatchError{Target: target}
}

// IsNoMatch reports whether err is a name-resolution failure.
func IsNoMatch(err error) bool {
	var nm *NoMatchError
	return errors.As(err, &nm)
}

// TransientError marks infrastructure failures (store, transport) that the
// outer job-queue retry policy may retry.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient failure: %v", e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// Transient wraps err as retryable. A nil err returns nil.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &TransientError{Err: err}
}

// IsTransient reports whether err should be retried by the outer queue.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
