// Package binding attaches, updates and removes event listeners on
// targets as a UI re-renders.
//
// A Manager keeps one invoker per (target, event name, listener options)
// key. The invoker is the only listener the target ever sees for that key:
// later patches swap the invoker's value in place, so listener identity and
// its position relative to other listeners on the target never change.
//
// # Handler values
//
// Patch accepts any of:
//
//   - nil, a nil function or an empty slice (remove the binding)
//   - a modifier.Callable such as *modifier.Handler or modifier.Func
//   - a func(dom.Event)
//   - a dom.Listener
//   - a slice of the above, called in order
//
// Anything else is rejected with a *HandlerTypeError before any state
// changes.
//
// # Event names
//
// Raw event names may carry listener options. "onClick", "onKeyupCapture"
// and "onWheelPassiveOnce" use the "on" form, "on:custom-event" keeps its
// name verbatim and a leading "!", "~" or "&" marks capture, once or
// passive. A plain name such as "click" is used as is.
//
// # Re-entrancy
//
// Every invoker records the time it was attached or last swapped. An event
// whose time stamp is earlier than that is ignored, so a handler bound or
// replaced while an event is being dispatched never sees that event, even
// when it is bound on an ancestor the event has yet to bubble through.
//
// A Manager is not safe for concurrent use; all calls are expected to run
// on the goroutine that dispatches events.
package binding
