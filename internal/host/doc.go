// Package host runs a dom tree against a terminal.
//
// A Host reads tcell events from a screen, translates them into DOM style
// events and dispatches them on the node tree:
//
//   - key presses become keydown followed by keyup on the focused node
//   - mouse presses become mousedown (and contextmenu for the right
//     button) on the deepest node under the pointer
//   - releases become mouseup followed by click for the left button or
//     auxclick for the others; the click goes to the nearest common
//     ancestor of the press and release targets
//   - wheel motion becomes wheel, other motion becomes mousemove
//   - resizes update the root bounds and dispatch resize on the root
//
// Everything, including work handed over with Post, runs on the goroutine
// that calls Run, so listeners and the binding manager never need locks.
package host
