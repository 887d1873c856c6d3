package modifier

import (
	"strings"

	"github.com/dshills/vbind/internal/dom"
)

// Callable is anything a Handler can call with an event.
type Callable interface {
	Call(e dom.Event)
}

// Func adapts a plain function to Callable.
type Func func(e dom.Event)

// Call implements Callable. A nil Func does nothing.
func (f Func) Call(e dom.Event) {
	if f != nil {
		f(e)
	}
}

// HandleEvent implements dom.Listener.
func (f Func) HandleEvent(e dom.Event) { f.Call(e) }

// Guard reports whether dispatch should continue to the callback.
type Guard func(e dom.Event) bool

// Effect is a side effect applied to every event a Handler receives.
type Effect uint8

const (
	// EffectStop calls StopPropagation.
	EffectStop Effect = 1 << iota
	// EffectPrevent calls PreventDefault.
	EffectPrevent
)

// Has reports whether e includes other.
func (e Effect) Has(other Effect) bool {
	return e&other == other
}

// String returns "stop", "prevent", "stop|prevent" or "".
func (e Effect) String() string {
	var parts []string
	if e.Has(EffectStop) {
		parts = append(parts, "stop")
	}
	if e.Has(EffectPrevent) {
		parts = append(parts, "prevent")
	}
	return strings.Join(parts, "|")
}

// Handler is a callback decorated with side effects and guards.
type Handler struct {
	callback  Callable
	effects   Effect
	guards    []Guard
	modifiers []string
}

// lift returns a fresh Handler for cb. A *Handler is copied so that the
// caller's value is never modified.
func lift(cb Callable) *Handler {
	if h, ok := cb.(*Handler); ok && h != nil {
		return &Handler{
			callback:  h.callback,
			effects:   h.effects,
			guards:    append([]Guard(nil), h.guards...),
			modifiers: append([]string(nil), h.modifiers...),
		}
	}
	return &Handler{callback: cb}
}

// Call applies the effects, evaluates the guards and calls the callback.
func (h *Handler) Call(e dom.Event) {
	if h == nil || e == nil {
		return
	}
	if h.effects.Has(EffectStop) {
		e.StopPropagation()
	}
	if h.effects.Has(EffectPrevent) {
		e.PreventDefault()
	}
	for _, g := range h.guards {
		if !g(e) {
			return
		}
	}
	if h.callback != nil {
		h.callback.Call(e)
	}
}

// HandleEvent implements dom.Listener so a Handler can be registered on a
// target directly.
func (h *Handler) HandleEvent(e dom.Event) {
	h.Call(e)
}

// Allows reports whether the guards let e through to the callback. Effects
// are not applied.
func (h *Handler) Allows(e dom.Event) bool {
	for _, g := range h.guards {
		if !g(e) {
			return false
		}
	}
	return true
}

// Callback returns the undecorated callback.
func (h *Handler) Callback() Callable { return h.callback }

// Effects returns the side effects applied on every call.
func (h *Handler) Effects() Effect { return h.effects }

// Guards returns the number of guards.
func (h *Handler) Guards() int { return len(h.guards) }

// Modifiers returns the recognized modifier and key names in the order
// they were declared.
func (h *Handler) Modifiers() []string {
	return append([]string(nil), h.modifiers...)
}

// String returns a short description such as "handler[stop,ctrl,esc]".
func (h *Handler) String() string {
	return "handler[" + strings.Join(h.modifiers, ",") + "]"
}

func (h *Handler) guard(name string, g Guard) {
	h.guards = append(h.guards, g)
	h.modifiers = append(h.modifiers, name)
}

func (h *Handler) effect(name string, e Effect) {
	h.effects |= e
	h.modifiers = append(h.modifiers, name)
}
