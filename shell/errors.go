package shell

import (
	"errors"
	"fmt"
)

var (
	// ErrHomeDirUnavailable is returned when no usable home directory is set.
	ErrHomeDirUnavailable = errors.New("home directory unavailable")

	// ErrUnsupportedPlatform is returned by detection on non-Unix platforms.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrInvalidLine is returned when an rc file line contains a line break.
	ErrInvalidLine = errors.New("line must not contain line breaks")
)

// DetectError means the environment could not be inspected at all.
// An unrecognized shell is not a DetectError; it falls back to posix.
type DetectError struct {
	Message string
	Cause   error
}

func (e *DetectError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("shell detection failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("shell detection failed: %s", e.Message)
}

func (e *DetectError) Unwrap() error {
	return e.Cause
}

// UnsupportedShellError represents an unsupported shell error
type UnsupportedShellError struct {
	Shell string
}

func (e *UnsupportedShellError) Error() string {
	return fmt.Sprintf("unsupported shell: %q (supported: fish, zsh, bash, posix)", e.Shell)
}

// RCFileError represents an error with shell rc file operations
type RCFileError struct {
	Op      string
	Path    string
	Message string
	Cause   error
}

func (e *RCFileError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("rc file %s (%s): %s: %v", e.Op, e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("rc file %s (%s): %s", e.Op, e.Path, e.Message)
}

func (e *RCFileError) Unwrap() error {
	return e.Cause
}
