package host

import (
	"errors"
	"fmt"

	"github.com/dop251/goja"
)

// ErrDiverged marks a mounted scenario whose state stopped being a real
// number; the host promotes this to a boundary failure rather than leaving
// runaway values to the scenario's discretion.
var ErrDiverged = errors.New("host: simulation diverged (non-finite state)")

// RuntimeError is any failure captured by the boundary while a mounted
// component was constructing or updating.
type RuntimeError struct {
	Unit    string
	Wrapped error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("scenario %q: %s", e.Unit, e.Wrapped.Error())
}

func (e *RuntimeError) Unwrap() error { return e.Wrapped }

// supervise is the failure boundary: it runs fn, converting panics and
// engine exceptions into a RuntimeError instead of unwinding the frame
// loop. The host process never dies for a misbehaving scenario.
func supervise(unit string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &RuntimeError{Unit: unit, Wrapped: fmt.Errorf("panic: %v", r)}
		}
	}()
	if callErr := fn(); callErr != nil {
		var ex *goja.Exception
		if errors.As(callErr, &ex) {
			return &RuntimeError{Unit: unit, Wrapped: errors.New(ex.Value().String())}
		}
		return &RuntimeError{Unit: unit, Wrapped: callErr}
	}
	return nil
}
