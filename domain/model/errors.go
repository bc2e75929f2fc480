package model

import (
	"errors"
	"fmt"
)

var (
	// ErrDeadWatcher is returned once the background watcher has stopped
	// and can no longer accept control or registration requests.
	ErrDeadWatcher = errors.New("file watcher is no longer running")

	ErrInvalidInterval   = errors.New("watch interval must be positive")
	ErrResourceNotFound  = errors.New("resource not found")
	ErrEmptyResourcePath = errors.New("resource path is empty")
)

// IOError wraps a filesystem failure observed for a watched path,
// either during registration or during a later poll.
type IOError struct {
	Path string
	Op   string // "stat" or "read"
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
