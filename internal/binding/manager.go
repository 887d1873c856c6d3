package binding

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/dshills/vbind/internal/dom"
	"github.com/dshills/vbind/internal/logging"
)

// bindingKey identifies a binding.
type bindingKey struct {
	target dom.Target
	event  string
	opts   dom.ListenerOptions
}

// Binding is a snapshot of one active binding.
type Binding struct {
	// ID identifies the invoker registered on the target.
	ID string

	// Target is the bound target.
	Target dom.Target

	// Event is the parsed event name.
	Event string

	// Options are the listener options the invoker was registered with.
	Options dom.ListenerOptions

	// Handlers is the number of callables in the current value.
	Handlers int

	// Sequence reports whether the value was given as a sequence.
	Sequence bool

	// Attached is when the invoker was registered or last swapped.
	Attached time.Time
}

// Manager owns the invokers for any number of targets.
type Manager struct {
	invokers map[bindingKey]*invoker
	now      func() time.Time
	log      *logging.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock sets the clock used to stamp invokers and unstamped events.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// New creates a Manager.
func New(opts ...Option) *Manager {
	m := &Manager{
		invokers: make(map[bindingKey]*invoker),
		now:      time.Now,
		log:      logging.Null(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.WithComponent("binding")
	return m
}

// Patch moves the binding for (target, rawName, opts) to next.
//
// An empty next removes an existing binding and is a no-op otherwise. A
// non-empty next creates the binding or replaces the value of the existing
// one in place and restamps its attach time. prev is accepted for symmetry with the caller's diff and
// is not consulted. Errors are returned before any state changes.
func (m *Manager) Patch(target dom.Target, rawName string, prev, next any, opts dom.ListenerOptions) error {
	if isNil(target) {
		return ErrNilTarget
	}
	if !reflect.TypeOf(target).Comparable() {
		return fmt.Errorf("%w: %T", ErrInvalidTarget, target)
	}
	event, parsed := ParseName(rawName)
	if event == "" {
		return fmt.Errorf("%w: %q", ErrInvalidEventName, rawName)
	}
	opts = parsed.Merge(opts)

	val, err := NewValue(next)
	if err != nil {
		var te *HandlerTypeError
		if errors.As(err, &te) {
			te.Event = event
		}
		return err
	}

	k := bindingKey{target: target, event: event, opts: opts}
	inv, bound := m.invokers[k]

	switch {
	case val.IsEmpty():
		if bound {
			m.unbind(k, inv)
		}
	case bound:
		inv.value = val
		inv.attached = m.now()
		m.log.WithField("event", event).WithField("id", inv.id).Debug("updated %v", target)
	default:
		inv = newInvoker(val, m.now)
		if opts.Once {
			inv.fired = func(inv *invoker) { m.consumed(k, inv) }
		}
		m.invokers[k] = inv
		target.AddEventListener(event, inv, opts)
		m.log.WithFields(map[string]any{"event": event, "id": inv.id, "options": opts.String()}).Debug("bound %v", target)
	}
	return nil
}

func (m *Manager) unbind(k bindingKey, inv *invoker) {
	k.target.RemoveEventListener(k.event, inv, k.opts)
	delete(m.invokers, k)
	m.log.WithField("event", k.event).WithField("id", inv.id).Debug("unbound %v", k.target)
}

// consumed forgets a once binding after the target has dropped it.
func (m *Manager) consumed(k bindingKey, inv *invoker) {
	if m.invokers[k] == inv {
		delete(m.invokers, k)
		m.log.WithField("event", k.event).WithField("id", inv.id).Debug("consumed %v", k.target)
	}
}

// Release removes every binding on target and returns how many were
// removed.
func (m *Manager) Release(target dom.Target) int {
	if isNil(target) || !reflect.TypeOf(target).Comparable() {
		return 0
	}
	n := 0
	for k, inv := range m.invokers {
		if k.target == target {
			m.unbind(k, inv)
			n++
		}
	}
	return n
}

// Close removes every binding.
func (m *Manager) Close() {
	for k, inv := range m.invokers {
		m.unbind(k, inv)
	}
}

// Len returns the number of active bindings.
func (m *Manager) Len() int {
	return len(m.invokers)
}

// Lookup returns the binding for the given key.
func (m *Manager) Lookup(target dom.Target, rawName string, opts dom.ListenerOptions) (Binding, bool) {
	if isNil(target) || !reflect.TypeOf(target).Comparable() {
		return Binding{}, false
	}
	event, parsed := ParseName(rawName)
	k := bindingKey{target: target, event: event, opts: parsed.Merge(opts)}
	inv, ok := m.invokers[k]
	if !ok {
		return Binding{}, false
	}
	return snapshot(k, inv), true
}

// Bindings returns all active bindings ordered by event name, then
// options, then ID.
func (m *Manager) Bindings() []Binding {
	out := make([]Binding, 0, len(m.invokers))
	for k, inv := range m.invokers {
		out = append(out, snapshot(k, inv))
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Event != b.Event {
			return a.Event < b.Event
		}
		if as, bs := a.Options.String(), b.Options.String(); as != bs {
			return as < bs
		}
		return a.ID < b.ID
	})
	return out
}

func snapshot(k bindingKey, inv *invoker) Binding {
	return Binding{
		ID:       inv.id,
		Target:   k.target,
		Event:    k.event,
		Options:  k.opts,
		Handlers: inv.value.Len(),
		Sequence: inv.value.IsSequence(),
		Attached: inv.attached,
	}
}
