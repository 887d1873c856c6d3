package script

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dshills/vbind/internal/dom"
	"github.com/dshills/vbind/internal/input/mouse"
	"github.com/dshills/vbind/internal/logging"
	"github.com/dshills/vbind/internal/modifier"
	lua "github.com/yuin/gopher-lua"
)

// DefaultTimeout bounds a single callback.
const DefaultTimeout = time.Second

// ErrorReporter receives errors raised by a callback.
type ErrorReporter func(name string, err error)

// Engine is a sandboxed Lua state.
type Engine struct {
	l       *lua.LState
	log     *logging.Logger
	report  ErrorReporter
	timeout time.Duration
	closed  bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for print and error reports.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithErrorReporter sets the callback error reporter. The default logs the
// error.
func WithErrorReporter(fn ErrorReporter) Option {
	return func(e *Engine) {
		e.report = fn
	}
}

// WithTimeout bounds each callback. Zero disables the limit.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.timeout = d
		}
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		log:     logging.Null(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.WithComponent("lua")
	if e.report == nil {
		e.report = func(name string, err error) {
			e.log.Error("%s: %v", name, err)
		}
	}

	e.l = lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(e.l)
	lua.OpenTable(e.l)
	lua.OpenString(e.l)
	lua.OpenMath(e.l)
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		e.l.SetGlobal(name, lua.LNil)
	}
	e.l.SetGlobal("print", e.l.NewFunction(e.print))
	return e
}

func (e *Engine) print(L *lua.LState) int {
	parts := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	e.log.Info("%s", strings.Join(parts, "\t"))
	return 0
}

// DoString runs a chunk of Lua code.
func (e *Engine) DoString(code string) error {
	if e.closed {
		return ErrClosed
	}
	return e.l.DoString(code)
}

// DoFile runs a Lua file.
func (e *Engine) DoFile(path string) error {
	if e.closed {
		return ErrClosed
	}
	if err := e.l.DoFile(path); err != nil {
		return fmt.Errorf("loading script %s: %w", path, err)
	}
	return nil
}

// Register exposes a Go function to Lua as a global.
func (e *Engine) Register(name string, fn lua.LGFunction) {
	if e.closed {
		return
	}
	e.l.SetGlobal(name, e.l.NewFunction(fn))
}

// RegisterModule exposes Go functions to Lua as fields of a global table.
func (e *Engine) RegisterModule(name string, funcs map[string]lua.LGFunction) {
	if e.closed {
		return
	}
	e.l.SetGlobal(name, e.l.SetFuncs(e.l.NewTable(), funcs))
}

// Functions returns the names of the global functions defined in Lua,
// sorted.
func (e *Engine) Functions() []string {
	if e.closed {
		return nil
	}
	var names []string
	e.l.G.Global.ForEach(func(k, v lua.LValue) {
		fn, ok := v.(*lua.LFunction)
		if !ok || fn.IsG || k.Type() != lua.LTString {
			return
		}
		names = append(names, k.String())
	})
	sort.Strings(names)
	return names
}

// HasFunction reports whether name is a global Lua function.
func (e *Engine) HasFunction(name string) bool {
	if e.closed {
		return false
	}
	return e.l.GetGlobal(name).Type() == lua.LTFunction
}

// Callback returns a callable that runs the global Lua function name.
func (e *Engine) Callback(name string) (modifier.Func, error) {
	if e.closed {
		return nil, ErrClosed
	}
	if !e.HasFunction(name) {
		return nil, fmt.Errorf("%w: %q", ErrNotFunction, name)
	}
	return func(ev dom.Event) {
		if err := e.call(name, ev); err != nil {
			e.report(name, err)
		}
	}, nil
}

func (e *Engine) call(name string, ev dom.Event) error {
	if e.closed {
		return ErrClosed
	}
	fn := e.l.GetGlobal(name)
	if fn.Type() != lua.LTFunction {
		return fmt.Errorf("%w: %q", ErrNotFunction, name)
	}
	if e.timeout > 0 {
		// A nested call runs under the outer call's deadline and hands it
		// back when done.
		prev := e.l.Context()
		parent := prev
		if parent == nil {
			parent = context.Background()
		}
		ctx, cancel := context.WithTimeout(parent, e.timeout)
		defer cancel()
		e.l.SetContext(ctx)
		defer func() {
			if prev != nil {
				e.l.SetContext(prev)
			} else {
				e.l.RemoveContext()
			}
		}()
	}
	return e.l.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, e.eventTable(ev))
}

// Close releases the Lua state.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}
	e.l.Close()
	e.closed = true
	return nil
}

type named interface {
	Name() string
}

type positioned interface {
	Position() mouse.Position
}

func targetName(t dom.Target) lua.LValue {
	switch t := t.(type) {
	case nil:
		return lua.LNil
	case named:
		return lua.LString(t.Name())
	default:
		return lua.LString(fmt.Sprint(t))
	}
}

func (e *Engine) eventTable(ev dom.Event) *lua.LTable {
	L := e.l
	t := L.NewTable()
	t.RawSetString("type", lua.LString(ev.Type()))
	t.RawSetString("phase", lua.LString(ev.Phase().String()))
	t.RawSetString("target", targetName(ev.Target()))
	t.RawSetString("currentTarget", targetName(ev.CurrentTarget()))

	mods := ev.Modifiers()
	t.RawSetString("ctrl", lua.LBool(mods.HasCtrl()))
	t.RawSetString("shift", lua.LBool(mods.HasShift()))
	t.RawSetString("alt", lua.LBool(mods.HasAlt()))
	t.RawSetString("meta", lua.LBool(mods.HasMeta()))

	if ks, ok := ev.(dom.KeyState); ok {
		t.RawSetString("key", lua.LString(ks.Key()))
		t.RawSetString("code", lua.LString(ks.Code()))
		t.RawSetString("keyCode", lua.LNumber(ks.KeyCode()))
	}
	if bs, ok := ev.(dom.ButtonState); ok {
		t.RawSetString("button", lua.LNumber(bs.Button()))
	}
	if p, ok := ev.(positioned); ok {
		pos := p.Position()
		t.RawSetString("x", lua.LNumber(pos.X))
		t.RawSetString("y", lua.LNumber(pos.Y))
	}

	t.RawSetString("prevent", L.NewFunction(func(*lua.LState) int {
		ev.PreventDefault()
		return 0
	}))
	t.RawSetString("stop", L.NewFunction(func(*lua.LState) int {
		ev.StopPropagation()
		return 0
	}))
	t.RawSetString("stopImmediate", L.NewFunction(func(*lua.LState) int {
		ev.StopImmediatePropagation()
		return 0
	}))
	t.RawSetString("defaultPrevented", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(ev.DefaultPrevented()))
		return 1
	}))
	return t
}
