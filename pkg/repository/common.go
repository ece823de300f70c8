package repository

import (
	"errors"
	"strings"
)

// criticalError wraps an error to signal repeater to stop retrying
type criticalError struct {
	err error
}

func (e *criticalError) Error() string {
	return e.err.Error()
}

func (e *criticalError) Unwrap() error { return e.err }

// Is matches any criticalError, used as the repeater termination marker
func (e *criticalError) Is(target error) bool {
	_, ok := target.(*criticalError)
	return ok
}

// errStopRetry is passed to repeater as the termination error
var errStopRetry = &criticalError{err: errors.New("stop retry")}

// unwrapCritical strips the criticalError wrapper so callers see the underlying error
func unwrapCritical(err error) error {
	var ce *criticalError
	if errors.As(err, &ce) {
		return ce.err
	}
	return err
}

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}
