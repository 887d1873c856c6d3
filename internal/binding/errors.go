package binding

import (
	"errors"
	"fmt"
)

// Binding errors.
var (
	// ErrNilTarget indicates Patch was called without a target.
	ErrNilTarget = errors.New("binding: nil target")

	// ErrInvalidTarget indicates the target cannot be used as a map key.
	ErrInvalidTarget = errors.New("binding: target is not comparable")

	// ErrInvalidEventName indicates the raw event name has no event.
	ErrInvalidEventName = errors.New("binding: invalid event name")

	// ErrInvalidHandler indicates an unsupported handler value.
	ErrInvalidHandler = errors.New("binding: invalid handler value")
)

// HandlerTypeError reports a handler value of an unsupported type.
type HandlerTypeError struct {
	// Event is the event name the value was patched for.
	Event string

	// Index is the position of the offending element in a sequence, or -1.
	Index int

	// Type is the Go type of the offending value.
	Type string
}

// Error implements error.
func (e *HandlerTypeError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("binding: unsupported handler type %s at index %d for %q", e.Type, e.Index, e.Event)
	}
	return fmt.Sprintf("binding: unsupported handler type %s for %q", e.Type, e.Event)
}

// Unwrap returns ErrInvalidHandler.
func (e *HandlerTypeError) Unwrap() error {
	return ErrInvalidHandler
}
