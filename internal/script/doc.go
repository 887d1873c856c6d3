// Package script runs event callbacks written in Lua.
//
// An Engine owns one sandboxed gopher-lua state with only the base, table,
// string and math libraries opened; dofile, loadfile, load and loadstring
// are removed and print writes to the engine's logger.
//
// Global Lua functions become callbacks through Engine.Callback. Each call
// receives the event as a table:
//
//	function save(e)
//	  if e.ctrl and e.key == "s" then
//	    e.prevent()
//	  end
//	end
//
// Fields: type, phase, target, currentTarget, key, code, keyCode, button,
// x, y, ctrl, shift, alt, meta. Functions: prevent, stop, stopImmediate,
// defaultPrevented.
//
// The function is looked up by name on every call, so reloading a script
// replaces the behavior of callbacks that are already bound. Errors raised
// by Lua code are handed to the engine's error reporter instead of
// unwinding through event dispatch.
//
// An Engine is not safe for concurrent use.
package script
