package common

import "errors"

// Shared error kinds. They live here so the digest packages can wrap them
// without importing the registry that imports the digest packages; the
// crypto package re-exports them under its own name.
var (
	// ErrInvalidConfig is returned for unsupported digest widths, empty
	// recipes and malformed search configurations.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrIOFailure wraps unexpected read failures from a message source.
	ErrIOFailure = errors.New("message source read failed")
)
