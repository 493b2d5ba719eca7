package store

import "fmt"

// ValidationError is returned when create or update input is malformed.
// Nothing is written when it is returned.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError is returned by operations that assume the referenced
// entity exists. Lookups that can legitimately miss (Get) report absence
// with a boolean instead.
type NotFoundError struct {
	Kind string // "prompt", "builtin prompt", "stack", ...
	ID   string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// InvalidOperationError is returned when a request is well-formed but not
// allowed, such as deleting a builtin prompt.
type InvalidOperationError struct {
	Op     string
	ID     string
	Reason string
}

// Error implements the error interface.
func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("cannot %s %q: %s", e.Op, e.ID, e.Reason)
}

// StorageError wraps a persistence I/O failure. It is never retried
// automatically.
type StorageError struct {
	Op   string // "read", "write", "decode", "encode"
	Path string
	Err  error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying I/O error.
func (e *StorageError) Unwrap() error {
	return e.Err
}
