// Package dom provides the platform event model that listeners are bound
// against: events, event targets and a node tree with capture, target and
// bubble dispatch.
//
// # Events
//
// Every event implements Event. Keyboard and mouse events additionally
// implement KeyState and ButtonState; consumers detect them with a type
// assertion:
//
//	if ks, ok := e.(dom.KeyState); ok {
//	    fmt.Println(ks.Key())
//	}
//
// Events are created with NewEvent, NewKeyboardEvent, NewMouseEvent and
// NewWheelEvent. The time stamp defaults to the construction time.
//
// # Dispatch
//
// Node.DispatchEvent walks the path from the root to the target. Capture
// listeners on ancestors run first, then every listener on the target,
// then, if the event bubbles, non-capture listeners on ancestors from the
// innermost outwards. The listener list of a node is read when dispatch
// reaches that node, so a listener added to an ancestor while a descendant
// is handling the event is invoked for that same event.
//
// # Listener identity
//
// Listeners are identified by value: adding the same Listener twice with
// the same capture flag registers it once. Listener implementations should
// be pointer types; listeners of non-comparable types are never considered
// equal to one another.
package dom
