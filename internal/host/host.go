package host

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/dshills/vbind/internal/dom"
	"github.com/dshills/vbind/internal/input/key"
	"github.com/dshills/vbind/internal/input/mouse"
	"github.com/dshills/vbind/internal/logging"
	"github.com/gdamore/tcell/v2"
)

// ErrNoRoot is returned by New when no root node is given.
var ErrNoRoot = errors.New("host: nil root node")

// Host dispatches terminal input on a node tree.
type Host struct {
	screen tcell.Screen
	root   *dom.Node
	codes  key.CodeTable
	log    *logging.Logger
	draw   bool

	focused     *dom.Node
	buttons     tcell.ButtonMask
	downTargets map[mouse.Button]*dom.Node
	lastPos     mouse.Position
	hasPos      bool
	status      string

	quit atomic.Bool
}

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(h *Host) {
		if l != nil {
			h.log = l
		}
	}
}

// WithKeyCodes sets the table used to fill in keyCode.
func WithKeyCodes(t key.CodeTable) Option {
	return func(h *Host) {
		if t != nil {
			h.codes = t
		}
	}
}

// WithoutDrawing disables drawing the node tree after each event.
func WithoutDrawing() Option {
	return func(h *Host) {
		h.draw = false
	}
}

// New creates a Host for screen. The screen must already be initialized.
func New(screen tcell.Screen, root *dom.Node, opts ...Option) (*Host, error) {
	if root == nil {
		return nil, ErrNoRoot
	}
	h := &Host{
		screen:      screen,
		root:        root,
		codes:       key.DefaultCodes(),
		log:         logging.Null(),
		draw:        true,
		downTargets: make(map[mouse.Button]*dom.Node),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.log = h.log.WithComponent("host")
	return h, nil
}

// Root returns the root node.
func (h *Host) Root() *dom.Node { return h.root }

// Focused returns the focused node, or nil.
func (h *Host) Focused() *dom.Node { return h.focused }

// Focus moves focus to n. A nil n clears focus. blur and focusout are
// dispatched on the old node, then focus and focusin on the new one.
func (h *Host) Focus(n *dom.Node) {
	if n == h.focused {
		return
	}
	old := h.focused
	h.focused = n
	if old != nil {
		old.DispatchEvent(dom.NewEvent("blur", dom.EventInit{}))
		old.DispatchEvent(dom.NewEvent("focusout", dom.EventInit{Bubbles: true}))
	}
	if n != nil {
		n.DispatchEvent(dom.NewEvent("focus", dom.EventInit{}))
		n.DispatchEvent(dom.NewEvent("focusin", dom.EventInit{Bubbles: true}))
	}
}

// SetStatus sets the text drawn on the bottom line.
func (h *Host) SetStatus(s string) { h.status = s }

// Status returns the status text.
func (h *Host) Status() string { return h.status }

// Post schedules fn to run on the event loop.
func (h *Host) Post(fn func()) error {
	if fn == nil {
		return nil
	}
	return h.screen.PostEvent(tcell.NewEventInterrupt(fn))
}

// Quit makes Run return after the current event.
func (h *Host) Quit() {
	h.quit.Store(true)
	_ = h.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// cancelled is posted when the Run context is done.
type cancelled struct{}

// Run processes events until Quit is called, ctx is done or the screen
// is finalized. It returns ctx.Err() when the context ended the loop.
func (h *Host) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		_ = h.screen.PostEvent(tcell.NewEventInterrupt(cancelled{}))
	})
	defer stop()

	h.resize()
	h.Draw()
	for !h.quit.Load() {
		ev := h.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if ie, ok := ev.(*tcell.EventInterrupt); ok {
			if _, ok := ie.Data().(cancelled); ok {
				return ctx.Err()
			}
		}
		h.Handle(ev)
		h.Draw()
	}
	return nil
}

// Handle translates and dispatches a single tcell event.
func (h *Host) Handle(ev tcell.Event) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		h.handleKey(e)
	case *tcell.EventMouse:
		h.handleMouse(e)
	case *tcell.EventResize:
		h.resize()
		h.root.DispatchEvent(dom.NewEvent("resize", dom.EventInit{TimeStamp: e.When()}))
	case *tcell.EventInterrupt:
		if fn, ok := e.Data().(func()); ok {
			fn()
		}
	default:
		h.log.Debug("ignored %T", ev)
	}
}

func (h *Host) handleKey(ev *tcell.EventKey) {
	info, ok := convertKey(ev)
	if !ok {
		h.log.Debug("unmapped key %s", ev.Name())
		return
	}
	code, _ := h.codes.Code(info.key)
	target := h.focused
	if target == nil {
		target = h.root
	}
	// Terminals report no release, so keyup is synthesized after keydown
	// and stamped when it is dispatched.
	for _, typ := range []string{"keydown", "keyup"} {
		ts := ev.When()
		if typ == "keyup" {
			if now := time.Now(); now.After(ts) {
				ts = now
			}
		}
		target.DispatchEvent(dom.NewKeyboardEvent(typ, dom.KeyboardEventInit{
			EventInit: dom.EventInit{
				Bubbles:    true,
				Cancelable: true,
				Modifiers:  info.mods,
				TimeStamp:  ts,
			},
			Key:     info.key,
			Code:    info.code,
			KeyCode: code,
		}))
	}
}

func (h *Host) targetAt(p mouse.Position) *dom.Node {
	if n := h.root.HitTest(p); n != nil {
		return n
	}
	return h.root
}

// resize gives the root the size of the screen.
func (h *Host) resize() {
	w, ht := h.screen.Size()
	h.root.SetBounds(dom.Rect{Width: w, Height: ht})
}
