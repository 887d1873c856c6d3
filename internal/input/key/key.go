package key

import "unicode/utf8"

// Standard key values as reported in the key field of keyboard events.
const (
	// Control keys
	Enter     = "Enter"
	Escape    = "Escape"
	Space     = " "
	Tab       = "Tab"
	Backspace = "Backspace"
	Delete    = "Delete"
	Insert    = "Insert"

	// Arrow keys
	ArrowUp    = "ArrowUp"
	ArrowDown  = "ArrowDown"
	ArrowLeft  = "ArrowLeft"
	ArrowRight = "ArrowRight"

	// Navigation keys
	Home     = "Home"
	End      = "End"
	PageUp   = "PageUp"
	PageDown = "PageDown"

	// Function keys
	F1  = "F1"
	F2  = "F2"
	F3  = "F3"
	F4  = "F4"
	F5  = "F5"
	F6  = "F6"
	F7  = "F7"
	F8  = "F8"
	F9  = "F9"
	F10 = "F10"
	F11 = "F11"
	F12 = "F12"

	// Modifier keys, reported when the modifier itself is pressed.
	Control = "Control"
	Shift   = "Shift"
	Alt     = "Alt"
	Meta    = "Meta"

	// Other keys
	Pause        = "Pause"
	PrintScreen  = "PrintScreen"
	ScrollLock   = "ScrollLock"
	NumLock      = "NumLock"
	CapsLock     = "CapsLock"
	Unidentified = "Unidentified"
)

// IsPrintable returns true if k is a single-character key value.
func IsPrintable(k string) bool {
	return k != "" && utf8.RuneCountInString(k) == 1
}

// IsArrow returns true if k is one of the arrow key values.
func IsArrow(k string) bool {
	switch k {
	case ArrowUp, ArrowDown, ArrowLeft, ArrowRight:
		return true
	}
	return false
}

// IsFunction returns true if k is one of F1 through F12.
func IsFunction(k string) bool {
	switch k {
	case F1, F2, F3, F4, F5, F6, F7, F8, F9, F10, F11, F12:
		return true
	}
	return false
}
