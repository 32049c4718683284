package storage

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a session has nothing stored under a key.
var ErrNotFound = errors.New("storage: not found")

// ReadError means a stored value exists but cannot be decoded. Callers treat
// it the same as ErrNotFound after logging it.
type ReadError struct {
	Session string
	Key     string
	Err     error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("storage: unreadable value for %s in session %s: %v", e.Key, e.Session, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// IsReadError reports whether err is a *ReadError.
func IsReadError(err error) bool {
	var r *ReadError
	return errors.As(err, &r)
}
