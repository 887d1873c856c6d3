package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrUnknownHandler indicates a binding names a callback that is
	// neither built in nor defined by the script.
	ErrUnknownHandler = errors.New("unknown handler")

	// ErrClosed indicates the application was shut down.
	ErrClosed = errors.New("application closed")

	// ErrAlreadyRunning indicates Run was called while running.
	ErrAlreadyRunning = errors.New("application already running")
)

// InitError represents a failure while building a component.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// BindingError reports the binding of a document that could not be
// applied.
type BindingError struct {
	Index int    // Position in Document.Bindings
	Node  string // Node id
	Event string // Raw event name
	Err   error
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("binding %d (%s %s): %v", e.Index, e.Node, e.Event, e.Err)
}

func (e *BindingError) Unwrap() error {
	return e.Err
}
