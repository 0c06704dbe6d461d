// FILE: lixenwraith/c2rust-config/errors.go
package config

import (
	"errors"
	"fmt"
)

// Errors returned by store and operation-engine calls. Match with errors.Is.
var (
	// ErrDirectoryNotFound indicates the .c2rust directory is missing under the project root
	ErrDirectoryNotFound = errors.New(".c2rust directory not found")

	// ErrConfigNotFound indicates config.toml is missing from the .c2rust directory
	ErrConfigNotFound = errors.New("config.toml file not found")

	// ErrFeatureNotFound indicates a read or removal targeted a feature section that does not exist
	ErrFeatureNotFound = errors.New("feature not found")

	// ErrKeyNotFound indicates a path did not resolve
	ErrKeyNotFound = errors.New("key not found")

	// ErrTypeMismatch indicates a table was found where a scalar or array was required, or vice versa
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInvalidKey indicates an empty path or an empty path segment
	ErrInvalidKey = errors.New("invalid key")

	// ErrInvalidOperation indicates a verb, mode or argument combination that is not allowed
	ErrInvalidOperation = errors.New("invalid operation")
)

// PathError records the operation and configuration path that caused an error.
type PathError struct {
	// Op is the verb or resolver step that failed (e.g. "set", "navigate").
	Op string
	// Path is the dotted key involved. For ErrKeyNotFound it is the first missing prefix.
	Path string
	// Err is one of the package sentinel errors, possibly wrapped.
	Err error
}

// Error implements the error interface.
func (e *PathError) Error() string {
	switch {
	case errors.Is(e.Err, ErrKeyNotFound):
		return fmt.Sprintf("key '%s' not found", e.Path)
	case errors.Is(e.Err, ErrFeatureNotFound):
		return fmt.Sprintf("feature '%s' not found", e.Path)
	case e.Path == "":
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s '%s': %v", e.Op, e.Path, e.Err)
	}
}

// Unwrap returns the underlying error.
func (e *PathError) Unwrap() error {
	return e.Err
}

func pathError(op, path string, err error) error {
	return &PathError{Op: op, Path: path, Err: err}
}
