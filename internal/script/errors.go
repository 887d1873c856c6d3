package script

import "errors"

// Errors returned by the script engine.
var (
	// ErrClosed is returned when operating on a closed engine.
	ErrClosed = errors.New("script: engine is closed")

	// ErrNotFunction is returned when a callback name is not a Lua function.
	ErrNotFunction = errors.New("script: not a function")
)
