package app

import (
	"fmt"

	"github.com/dshills/vbind/internal/dom"
	"github.com/dshills/vbind/internal/modifier"
	lua "github.com/yuin/gopher-lua"
)

// Built-in handler names. They shadow Lua functions of the same name.
const (
	HandlerQuit  = "quit"
	HandlerLog   = "log"
	HandlerNoop  = "noop"
	HandlerFocus = "focus"
)

func (app *Application) newBuiltins() map[string]modifier.Callable {
	return map[string]modifier.Callable{
		HandlerQuit: modifier.Func(func(dom.Event) { app.Quit() }),
		HandlerLog:  modifier.Func(app.logEvent),
		HandlerNoop: modifier.Func(func(dom.Event) {}),
		HandlerFocus: modifier.Func(func(e dom.Event) {
			if n, ok := e.CurrentTarget().(*dom.Node); ok {
				app.Focus(n)
			}
		}),
	}
}

// logEvent logs e and shows it on the status line.
func (app *Application) logEvent(e dom.Event) {
	msg := describe(e)
	app.log.WithField("phase", e.Phase().String()).Info("%s", msg)
	app.SetStatus(msg)
}

// describe renders e as "type target [mods] detail".
func describe(e dom.Event) string {
	s := e.Type()
	if n, ok := e.CurrentTarget().(*dom.Node); ok {
		s += " " + n.Name()
	}
	if mods := e.Modifiers(); !mods.IsEmpty() {
		s += " " + mods.String()
	}
	switch ev := e.(type) {
	case dom.KeyState:
		s += fmt.Sprintf(" key=%q", ev.Key())
	case *dom.WheelEvent:
		s += fmt.Sprintf(" delta=%d,%d", ev.DeltaX(), ev.DeltaY())
	case *dom.MouseEvent:
		p := ev.Position()
		s += fmt.Sprintf(" button=%s at %d,%d", ev.Button(), p.X, p.Y)
	}
	return s
}

// resolve returns the callable for a handler name.
func (app *Application) resolve(name string) (modifier.Callable, error) {
	if cb, ok := app.builtins[name]; ok {
		return cb, nil
	}
	if app.scripts.HasFunction(name) {
		return app.scripts.Callback(name)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownHandler, name)
}

// luaModule is exposed to scripts as the global table "vbind".
func (app *Application) luaModule() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"status": func(L *lua.LState) int {
			app.SetStatus(L.CheckString(1))
			return 0
		},
		"quit": func(L *lua.LState) int {
			app.Quit()
			return 0
		},
		"focus": func(L *lua.LState) int {
			n, ok := app.nodes[L.CheckString(1)]
			if ok {
				app.Focus(n)
			}
			L.Push(lua.LBool(ok))
			return 1
		},
		"focused": func(L *lua.LState) int {
			if n := app.Focused(); n != nil {
				L.Push(lua.LString(n.Name()))
			} else {
				L.Push(lua.LNil)
			}
			return 1
		},
	}
}
