package key

import "strings"

// Modifier represents the system modifier keys held during an event.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt

	// ModMeta indicates the Meta key (Cmd on macOS, Win on Windows).
	ModMeta
)

// SystemModifiers lists every system modifier in canonical order.
var SystemModifiers = []Modifier{ModCtrl, ModShift, ModAlt, ModMeta}

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// HasShift returns true if Shift is pressed.
func (m Modifier) HasShift() bool {
	return m.Has(ModShift)
}

// HasCtrl returns true if Control is pressed.
func (m Modifier) HasCtrl() bool {
	return m.Has(ModCtrl)
}

// HasAlt returns true if Alt is pressed.
func (m Modifier) HasAlt() bool {
	return m.Has(ModAlt)
}

// HasMeta returns true if Meta is pressed.
func (m Modifier) HasMeta() bool {
	return m.Has(ModMeta)
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// Contains reports whether every modifier in other is also set in m.
func (m Modifier) Contains(other Modifier) bool {
	return m&other == other
}

// Names returns the declarative names of the set modifiers in canonical
// order ("ctrl", "shift", "alt", "meta").
func (m Modifier) Names() []string {
	var names []string
	for _, mod := range SystemModifiers {
		if m.Has(mod) {
			names = append(names, modifierNames[mod])
		}
	}
	return names
}

// String returns a human-readable representation like "Ctrl+Alt".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	if m.HasCtrl() {
		parts = append(parts, "Ctrl")
	}
	if m.HasAlt() {
		parts = append(parts, "Alt")
	}
	if m.HasShift() {
		parts = append(parts, "Shift")
	}
	if m.HasMeta() {
		parts = append(parts, "Meta")
	}
	return strings.Join(parts, "+")
}

var modifierNames = map[Modifier]string{
	ModCtrl:  "ctrl",
	ModShift: "shift",
	ModAlt:   "alt",
	ModMeta:  "meta",
}

// ModifierFromName returns the Modifier for a declarative modifier name.
// Only the canonical names "ctrl", "shift", "alt" and "meta" are
// recognized; anything else returns ModNone.
func ModifierFromName(name string) Modifier {
	switch name {
	case "ctrl":
		return ModCtrl
	case "shift":
		return ModShift
	case "alt":
		return ModAlt
	case "meta":
		return ModMeta
	default:
		return ModNone
	}
}

// ParseModifiers combines a list of declarative names into a Modifier.
// Unrecognized names are ignored.
func ParseModifiers(names []string) Modifier {
	var result Modifier
	for _, name := range names {
		result = result.With(ModifierFromName(name))
	}
	return result
}
