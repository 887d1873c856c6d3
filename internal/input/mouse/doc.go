// Package mouse provides the mouse vocabulary used by button guards and
// the platform event model.
//
// Buttons use the numeric codes reported in the button field of mouse
// events:
//
//	mouse.ButtonLeft    // 0, primary
//	mouse.ButtonMiddle  // 1, auxiliary
//	mouse.ButtonRight   // 2, secondary
//	mouse.ButtonBack    // 3
//	mouse.ButtonForward // 4
//
// ButtonFromName maps the declarative modifier names "left", "middle" and
// "right" to their codes.
package mouse
