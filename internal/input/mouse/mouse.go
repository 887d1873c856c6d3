package mouse

import "fmt"

// Button is the numeric code of a mouse button.
type Button int16

const (
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft Button = 0
	// ButtonMiddle is the middle mouse button (scroll wheel click).
	ButtonMiddle Button = 1
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight Button = 2
	// ButtonBack is the back navigation button (mouse button 4).
	ButtonBack Button = 3
	// ButtonForward is the forward navigation button (mouse button 5).
	ButtonForward Button = 4
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	case ButtonBack:
		return "back"
	case ButtonForward:
		return "forward"
	default:
		return fmt.Sprintf("button(%d)", int(b))
	}
}

// IsPrimary returns true for the left button.
func (b Button) IsPrimary() bool {
	return b == ButtonLeft
}

// ButtonFromName returns the button for a declarative modifier name.
// Only "left", "middle" and "right" are button modifiers.
func ButtonFromName(name string) (Button, bool) {
	switch name {
	case "left":
		return ButtonLeft, true
	case "middle":
		return ButtonMiddle, true
	case "right":
		return ButtonRight, true
	default:
		return 0, false
	}
}

// Position represents a screen coordinate.
type Position struct {
	X int
	Y int
}

// Equal returns true if two positions are equal.
func (p Position) Equal(other Position) bool {
	return p.X == other.X && p.Y == other.Y
}

// Distance returns the Manhattan distance (|dx| + |dy|) between two positions.
func (p Position) Distance(other Position) int {
	dx := p.X - other.X
	if dx < 0 {
		dx = -dx
	}
	dy := p.Y - other.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
