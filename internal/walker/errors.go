package walker

import "fmt"

// TraversalError reports a path that could not be read during a walk
type TraversalError struct {
	Path string // Path that failed
	Err  error  // Underlying filesystem error
}

// Error implements the error interface for TraversalError.
func (e *TraversalError) Error() string {
	return fmt.Sprintf("traversal failed at %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for error wrapping support.
func (e *TraversalError) Unwrap() error {
	return e.Err
}
