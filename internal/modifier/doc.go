// Package modifier compiles declarative event modifiers into guarded
// handlers.
//
// A modifier list such as ["ctrl", "exact", "stop"] or a key list such as
// ["esc", "enter"] is turned into a *Handler: the user callback paired with
// the side effects to apply (stop propagation, prevent default) and an
// ordered slice of guards. Each guard receives the live event and may veto
// the callback.
//
// # Evaluation order
//
// Calling a Handler always does the following, in order:
//
//  1. StopPropagation, when "stop" was declared
//  2. PreventDefault, when "prevent" was declared
//  3. each guard in declaration order; the first veto returns
//  4. the callback
//
// Side effects are therefore applied exactly once per call even when a
// guard vetoes the callback. Wrapping a Handler again does not nest it:
// the result is a new flat Handler carrying the union of the effects and
// the old guards followed by the new ones.
//
// # Modifier names
//
//   - stop, prevent: side effects
//   - self: the event target must be the node the listener is bound to
//   - ctrl, shift, alt, meta: the system modifier must be held
//   - exact: no undeclared system modifier may be held
//   - left, middle, right: the mouse button must match
//
// Any other name is a key name. Key names are matched against the event's
// key value after normalization (see package key) and through the
// Compiler's alias table, so "esc" matches "Escape" and "delete" matches
// both "Backspace" and "Delete".
//
// Compilers are immutable once built and every operation returns a new
// Handler without touching its inputs.
package modifier
