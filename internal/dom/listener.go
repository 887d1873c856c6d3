package dom

import (
	"reflect"
	"strings"
)

// Listener receives events from a Target.
type Listener interface {
	HandleEvent(e Event)
}

type funcListener struct {
	fn func(Event)
}

func (l *funcListener) HandleEvent(e Event) { l.fn(e) }

// NewListener adapts a function to a Listener. Each call returns a
// distinct listener.
func NewListener(fn func(Event)) Listener {
	return &funcListener{fn: fn}
}

// ListenerOptions are the options a listener is registered with.
type ListenerOptions struct {
	// Capture registers the listener for the capturing phase.
	Capture bool
	// Once removes the listener before its first invocation.
	Once bool
	// Passive makes PreventDefault a no-op inside the listener.
	Passive bool
}

// IsZero reports whether no option is set.
func (o ListenerOptions) IsZero() bool {
	return o == ListenerOptions{}
}

// Merge returns the union of two option sets.
func (o ListenerOptions) Merge(other ListenerOptions) ListenerOptions {
	return ListenerOptions{
		Capture: o.Capture || other.Capture,
		Once:    o.Once || other.Once,
		Passive: o.Passive || other.Passive,
	}
}

// String returns a compact form like "capture|once".
func (o ListenerOptions) String() string {
	var parts []string
	if o.Capture {
		parts = append(parts, "capture")
	}
	if o.Once {
		parts = append(parts, "once")
	}
	if o.Passive {
		parts = append(parts, "passive")
	}
	return strings.Join(parts, "|")
}

// Target is anything listeners can be attached to.
type Target interface {
	AddEventListener(typ string, l Listener, opts ListenerOptions)
	RemoveEventListener(typ string, l Listener, opts ListenerOptions)
	DispatchEvent(e Event) bool
}

type registration struct {
	listener Listener
	opts     ListenerOptions
	removed  bool
}

func sameListener(a, b Listener) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
