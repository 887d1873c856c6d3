package dom

import (
	"time"

	"github.com/dshills/vbind/internal/input/key"
	"github.com/dshills/vbind/internal/input/mouse"
)

// Phase is the dispatch phase an event is in.
type Phase uint8

const (
	// PhaseNone means the event is not being dispatched.
	PhaseNone Phase = iota
	// PhaseCapturing means the event is travelling from the root to the target.
	PhaseCapturing
	// PhaseAtTarget means the event has reached its target.
	PhaseAtTarget
	// PhaseBubbling means the event is travelling from the target to the root.
	PhaseBubbling
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseCapturing:
		return "capturing"
	case PhaseAtTarget:
		return "at-target"
	case PhaseBubbling:
		return "bubbling"
	default:
		return "none"
	}
}

// Event is a platform event delivered to listeners.
type Event interface {
	// Type returns the event name, e.g. "click" or "keyup".
	Type() string

	// Target returns the node the event was dispatched to.
	Target() Target

	// CurrentTarget returns the node whose listeners are being invoked.
	CurrentTarget() Target

	// Phase returns the current dispatch phase.
	Phase() Phase

	// Bubbles reports whether the event bubbles.
	Bubbles() bool

	// Cancelable reports whether PreventDefault has an effect.
	Cancelable() bool

	// TimeStamp returns the time the event was created. The zero time
	// means the platform did not record one.
	TimeStamp() time.Time

	// EnsureTimeStamp records now as the time stamp if none is set and
	// returns the effective time stamp.
	EnsureTimeStamp(now time.Time) time.Time

	// Modifiers returns the system modifier keys active for the event.
	Modifiers() key.Modifier

	// StopPropagation prevents the event from reaching further nodes.
	StopPropagation()

	// StopImmediatePropagation also prevents further listeners on the
	// current node from running.
	StopImmediatePropagation()

	// PreventDefault cancels the event's default action.
	PreventDefault()

	// DefaultPrevented reports whether PreventDefault took effect.
	DefaultPrevented() bool

	// PropagationStopped reports whether StopPropagation was called.
	PropagationStopped() bool

	// ImmediatePropagationStopped reports whether StopImmediatePropagation
	// was called.
	ImmediatePropagationStopped() bool

	base() *UIEvent
}

// KeyState is implemented by keyboard events.
type KeyState interface {
	Key() string
	Code() string
	KeyCode() int
}

// ButtonState is implemented by mouse events.
type ButtonState interface {
	Button() mouse.Button
}

// EventInit holds the properties common to every event.
type EventInit struct {
	Bubbles    bool
	Cancelable bool
	Modifiers  key.Modifier

	// TimeStamp overrides the creation time.
	TimeStamp time.Time

	// Unstamped leaves the time stamp unset, as on platforms that do not
	// expose one.
	Unstamped bool
}

// UIEvent is the basic event implementation. It is embedded by the
// keyboard and mouse events.
type UIEvent struct {
	typ           string
	target        Target
	currentTarget Target
	phase         Phase
	bubbles       bool
	cancelable    bool
	timeStamp     time.Time
	modifiers     key.Modifier

	defaultPrevented bool
	stopped          bool
	immediateStopped bool
	inPassive        bool
	dispatching      bool
}

// NewEvent creates a plain event.
func NewEvent(typ string, init EventInit) *UIEvent {
	e := &UIEvent{}
	e.init(typ, init)
	return e
}

func (e *UIEvent) init(typ string, init EventInit) {
	e.typ = typ
	e.bubbles = init.Bubbles
	e.cancelable = init.Cancelable
	e.modifiers = init.Modifiers
	switch {
	case !init.TimeStamp.IsZero():
		e.timeStamp = init.TimeStamp
	case !init.Unstamped:
		e.timeStamp = time.Now()
	}
}

func (e *UIEvent) base() *UIEvent { return e }

// Type returns the event name.
func (e *UIEvent) Type() string { return e.typ }

// Target returns the node the event was dispatched to.
func (e *UIEvent) Target() Target { return e.target }

// CurrentTarget returns the node whose listeners are running.
func (e *UIEvent) CurrentTarget() Target { return e.currentTarget }

// Phase returns the dispatch phase.
func (e *UIEvent) Phase() Phase { return e.phase }

// Bubbles reports whether the event bubbles.
func (e *UIEvent) Bubbles() bool { return e.bubbles }

// Cancelable reports whether the event can be canceled.
func (e *UIEvent) Cancelable() bool { return e.cancelable }

// TimeStamp returns the event time stamp.
func (e *UIEvent) TimeStamp() time.Time { return e.timeStamp }

// EnsureTimeStamp sets the time stamp to now if it is unset.
func (e *UIEvent) EnsureTimeStamp(now time.Time) time.Time {
	if e.timeStamp.IsZero() {
		e.timeStamp = now
	}
	return e.timeStamp
}

// Modifiers returns the active system modifiers.
func (e *UIEvent) Modifiers() key.Modifier { return e.modifiers }

// CtrlKey reports whether Control was held.
func (e *UIEvent) CtrlKey() bool { return e.modifiers.HasCtrl() }

// ShiftKey reports whether Shift was held.
func (e *UIEvent) ShiftKey() bool { return e.modifiers.HasShift() }

// AltKey reports whether Alt was held.
func (e *UIEvent) AltKey() bool { return e.modifiers.HasAlt() }

// MetaKey reports whether Meta was held.
func (e *UIEvent) MetaKey() bool { return e.modifiers.HasMeta() }

// StopPropagation prevents the event from reaching further nodes.
func (e *UIEvent) StopPropagation() { e.stopped = true }

// StopImmediatePropagation prevents further listeners from running.
func (e *UIEvent) StopImmediatePropagation() {
	e.stopped = true
	e.immediateStopped = true
}

// PreventDefault cancels the default action. It has no effect on
// non-cancelable events or inside passive listeners.
func (e *UIEvent) PreventDefault() {
	if e.cancelable && !e.inPassive {
		e.defaultPrevented = true
	}
}

// DefaultPrevented reports whether the default action was canceled.
func (e *UIEvent) DefaultPrevented() bool { return e.defaultPrevented }

// PropagationStopped reports whether propagation was stopped.
func (e *UIEvent) PropagationStopped() bool { return e.stopped }

// ImmediatePropagationStopped reports whether immediate propagation was
// stopped.
func (e *UIEvent) ImmediatePropagationStopped() bool { return e.immediateStopped }

// KeyboardEventInit holds the properties of a keyboard event.
type KeyboardEventInit struct {
	EventInit
	Key     string
	Code    string
	KeyCode int
	Repeat  bool
}

// KeyboardEvent is a key press or release.
type KeyboardEvent struct {
	UIEvent
	key     string
	code    string
	keyCode int
	repeat  bool
}

// NewKeyboardEvent creates a keyboard event.
func NewKeyboardEvent(typ string, init KeyboardEventInit) *KeyboardEvent {
	e := &KeyboardEvent{
		key:     init.Key,
		code:    init.Code,
		keyCode: init.KeyCode,
		repeat:  init.Repeat,
	}
	e.init(typ, init.EventInit)
	return e
}

// Key returns the semantic key value, e.g. "a" or "Escape".
func (e *KeyboardEvent) Key() string { return e.key }

// Code returns the physical key code, e.g. "KeyA".
func (e *KeyboardEvent) Code() string { return e.code }

// KeyCode returns the legacy numeric key code.
func (e *KeyboardEvent) KeyCode() int { return e.keyCode }

// Repeat reports whether the key is being held down.
func (e *KeyboardEvent) Repeat() bool { return e.repeat }

// MouseEventInit holds the properties of a mouse event.
type MouseEventInit struct {
	EventInit
	Button   mouse.Button
	Buttons  uint8
	Position mouse.Position
}

// MouseEvent is a pointer button or movement event.
type MouseEvent struct {
	UIEvent
	button   mouse.Button
	buttons  uint8
	position mouse.Position
}

// NewMouseEvent creates a mouse event.
func NewMouseEvent(typ string, init MouseEventInit) *MouseEvent {
	e := &MouseEvent{
		button:   init.Button,
		buttons:  init.Buttons,
		position: init.Position,
	}
	e.init(typ, init.EventInit)
	return e
}

// Button returns the button whose state changed.
func (e *MouseEvent) Button() mouse.Button { return e.button }

// Buttons returns the bitmask of buttons held (1 left, 2 right, 4 middle).
func (e *MouseEvent) Buttons() uint8 { return e.buttons }

// Position returns the pointer position.
func (e *MouseEvent) Position() mouse.Position { return e.position }

// WheelEventInit holds the properties of a wheel event.
type WheelEventInit struct {
	MouseEventInit
	DeltaX int
	DeltaY int
}

// WheelEvent is a scroll wheel event.
type WheelEvent struct {
	MouseEvent
	deltaX int
	deltaY int
}

// NewWheelEvent creates a wheel event.
func NewWheelEvent(typ string, init WheelEventInit) *WheelEvent {
	e := &WheelEvent{deltaX: init.DeltaX, deltaY: init.DeltaY}
	e.button = init.Button
	e.buttons = init.Buttons
	e.position = init.Position
	e.init(typ, init.EventInit)
	return e
}

// DeltaX returns the horizontal scroll amount.
func (e *WheelEvent) DeltaX() int { return e.deltaX }

// DeltaY returns the vertical scroll amount.
func (e *WheelEvent) DeltaY() int { return e.deltaY }
