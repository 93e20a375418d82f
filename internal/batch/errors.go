package batch

import (
	"errors"
	"fmt"
)

// ErrInvocationsFailed is returned in strict mode when at least one
// invocation failed.
var ErrInvocationsFailed = errors.New("one or more invocations failed")

// FileError is a non-fatal problem with one file, raised before its
// invocation. The file is still processed.
type FileError struct {
	Path string // File or directory the operation targeted
	Op   string // What was being attempted
	Err  error  // Underlying error
}

// Error implements the error interface for FileError.
func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error for error wrapping support.
func (e *FileError) Unwrap() error {
	return e.Err
}
