package patcherror

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error is a structured error carrying a Kind, an operation label, an
// optional path, and a wrapped cause. It's the error type returned by
// pkg/extent and pkg/bsdiff to every caller, allowing the CLI front end to
// map failures to exit codes without inspecting error strings.
type Error struct {
	// Kind identifies the class of failure.
	Kind Kind
	// Op names the operation that failed (e.g. "parse extents", "read
	// header", "reconstruct").
	Op string
	// Path is the filesystem path involved, if any.
	Path string
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Path != "" {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s (%s): %v", e.Kind, e.Op, e.Path, e.Cause)
		}
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Op, e.Path)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Op)
}

// Unwrap allows errors.Is/errors.As (and github.com/pkg/errors's causer
// interface) to see through to the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New constructs an *Error with no wrapped cause.
func New(kind Kind, op string) *Error {
	return &Error{Kind: kind, Op: op}
}

// Wrap constructs an *Error wrapping cause with github.com/pkg/errors, so
// that the resulting cause chain retains a stack trace at the wrap site.
func Wrap(cause error, kind Kind, op string) *Error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Cause: errors.Wrap(cause, op)}
}

// WrapPath is like Wrap but also attaches a path, as used for I/O failures
// on a specific file.
func WrapPath(cause error, kind Kind, op, path string) *Error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Path: path, Cause: errors.Wrap(cause, op)}
}

// KindOf extracts the Kind from err if it is (or wraps) an *Error, and
// otherwise reports KindIO as a conservative default for an un-annotated
// error (e.g. one returned directly by a third-party library).
func KindOf(err error) Kind {
	var patchErr *Error
	if errors.As(err, &patchErr) {
		return patchErr.Kind
	}
	return KindIO
}
