package main

import (
	"errors"

	config "github.com/lixenwraith/c2rust-config"
)

// Process exit statuses.
const (
	exitOK                = 0
	exitError             = 1
	exitInvalidOperation  = 2
	exitDirectoryNotFound = 3
	exitConfigNotFound    = 4
	exitFeatureNotFound   = 5
	exitKeyNotFound       = 6
	exitTypeMismatch      = 7
	exitInvalidKey        = 8
)

// usageError is a command-line contract violation. Its message is shown as is.
type usageError struct {
	msg string
}

func (e usageError) Error() string {
	return e.msg
}

func (e usageError) Unwrap() error {
	return config.ErrInvalidOperation
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, config.ErrInvalidOperation):
		return exitInvalidOperation
	case errors.Is(err, config.ErrDirectoryNotFound):
		return exitDirectoryNotFound
	case errors.Is(err, config.ErrConfigNotFound):
		return exitConfigNotFound
	case errors.Is(err, config.ErrFeatureNotFound):
		return exitFeatureNotFound
	case errors.Is(err, config.ErrKeyNotFound):
		return exitKeyNotFound
	case errors.Is(err, config.ErrTypeMismatch):
		return exitTypeMismatch
	case errors.Is(err, config.ErrInvalidKey):
		return exitInvalidKey
	default:
		return exitError
	}
}
