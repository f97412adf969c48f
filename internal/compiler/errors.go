package compiler

import (
	"errors"
	"fmt"
)

// Failure categories for the compile pipeline.
var (
	// ErrShape indicates the sanitizer could not extract a renderable
	// body from the submitted source.
	ErrShape = errors.New("compiler: no renderable shape in source")

	// ErrTranspilerUnavailable indicates the adapter has no engine to
	// delegate to. This is a host configuration problem, not a problem
	// with the submitted source.
	ErrTranspilerUnavailable = errors.New("compiler: transpiler engine not loaded")

	// ErrValidation indicates the source passed shape checks but cannot
	// plausibly render anything (no scene primitive usage).
	ErrValidation = errors.New("compiler: source references no scene primitive")
)

// ShapeError carries the reason a particular source failed sanitization.
type ShapeError struct {
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s", ErrShape.Error(), e.Reason)
}

func (e *ShapeError) Unwrap() error { return ErrShape }

// SyntaxError wraps the engine's parse diagnostic. The underlying message
// is surfaced unmodified since it is the most useful signal for why
// generated code failed.
type SyntaxError struct {
	Source  string
	Wrapped error
}

func (e *SyntaxError) Error() string { return e.Wrapped.Error() }

func (e *SyntaxError) Unwrap() error { return e.Wrapped }
