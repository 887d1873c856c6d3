// Package key provides the keyboard vocabulary shared by the guard compiler
// and the platform event model.
//
// This package defines:
//
//   - Modifier: the system modifier bitmask (Ctrl, Shift, Alt, Meta)
//   - Standard key values as reported by keyboard events ("Escape", "ArrowUp", ...)
//   - Normalize: the canonical form used to compare declared key names with
//     event key values
//   - AliasTable: declared shorthand names ("esc", "up", "delete") mapped to
//     one or more normalized key values
//   - CodeTable: numeric keyCode fallback used when an event carries no
//     semantic key value
//
// # Normalization
//
// Declared names and event key values are compared in normalized form:
// camel case is hyphenated, the result is lower-cased and a trailing "key"
// suffix is dropped. "ArrowUp", "arrowUp" and "arrow-up" all normalize to
// "arrow-up"; "PageDown" normalizes to "page-down"; " " stays " ".
package key
