package modifier

import (
	"strings"

	"github.com/dshills/vbind/internal/dom"
	"github.com/dshills/vbind/internal/input/key"
	"github.com/dshills/vbind/internal/input/mouse"
)

// Compiler turns modifier and key names into Handlers. The zero value is
// not usable; call NewCompiler.
type Compiler struct {
	aliases key.AliasTable
	codes   key.CodeTable
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithAliases overlays t on the default alias table. An entry with no
// values removes the alias.
func WithAliases(t key.AliasTable) Option {
	return func(c *Compiler) {
		c.aliases = c.aliases.Merge(t)
	}
}

// WithKeyCodes overlays t on the default keyCode table.
func WithKeyCodes(t key.CodeTable) Option {
	return func(c *Compiler) {
		c.codes = c.codes.Merge(t)
	}
}

// NewCompiler creates a Compiler using the default alias and keyCode
// tables.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{
		aliases: key.DefaultAliases(),
		codes:   key.DefaultCodes(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Default is the Compiler used by the package-level functions.
var Default = NewCompiler()

// Aliases returns a copy of the alias table.
func (c *Compiler) Aliases() key.AliasTable {
	return c.aliases.Clone()
}

// canonical folds a declared modifier name.
func canonical(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// AttachPropagationGuards handles the stop, prevent, self and exact
// modifiers. Other names are ignored. The exact guard treats the system
// modifiers among mods as declared.
func (c *Compiler) AttachPropagationGuards(cb Callable, mods ...string) *Handler {
	h := lift(cb)
	names := canonicalAll(mods)
	for _, name := range names {
		switch name {
		case "stop":
			h.effect(name, EffectStop)
		case "prevent":
			h.effect(name, EffectPrevent)
		case "self":
			h.guard(name, selfGuard)
		case "exact":
			h.guard(name, exactGuard(key.ParseModifiers(names)))
		}
	}
	return h
}

// AttachSystemKeyGuards vetoes events that do not hold every modifier in
// declared. With exact it also vetoes events holding any other system
// modifier.
func (c *Compiler) AttachSystemKeyGuards(cb Callable, declared key.Modifier, exact bool) *Handler {
	h := lift(cb)
	for _, mod := range key.SystemModifiers {
		if declared.Has(mod) {
			h.guard(mod.Names()[0], requireGuard(mod))
		}
	}
	if exact {
		h.guard("exact", exactGuard(declared))
	}
	return h
}

// AttachKeyGuards vetoes events whose key matches none of names. Events
// that are not keyboard events are vetoed.
func (c *Compiler) AttachKeyGuards(cb Callable, names ...string) *Handler {
	h := lift(cb)
	want := make(map[string]struct{})
	var declared []string
	for _, name := range names {
		resolved := c.aliases.Resolve(name)
		if len(resolved) == 0 {
			continue
		}
		declared = append(declared, resolved[0])
		for _, v := range resolved {
			want[v] = struct{}{}
		}
	}
	h.guards = append(h.guards, func(e dom.Event) bool {
		k, ok := c.eventKey(e)
		if !ok {
			return false
		}
		_, match := want[k]
		return match
	})
	h.modifiers = append(h.modifiers, declared...)
	return h
}

// AttachMouseButtonGuard vetoes mouse events for any other button. Events
// without a button are not affected.
func (c *Compiler) AttachMouseButtonGuard(cb Callable, button mouse.Button) *Handler {
	h := lift(cb)
	h.guard(button.String(), buttonGuard(button))
	return h
}

// WithModifiers compiles a modifier list. Unrecognized names are ignored.
func (c *Compiler) WithModifiers(cb Callable, names []string) *Handler {
	h := lift(cb)
	folded := canonicalAll(names)
	for _, name := range folded {
		switch name {
		case "stop":
			h.effect(name, EffectStop)
		case "prevent":
			h.effect(name, EffectPrevent)
		case "self":
			h.guard(name, selfGuard)
		case "ctrl", "shift", "alt", "meta":
			h.guard(name, requireGuard(key.ModifierFromName(name)))
		case "exact":
			h.guard(name, exactGuard(key.ParseModifiers(folded)))
		case "left", "middle", "right":
			b, _ := mouse.ButtonFromName(name)
			h.guard(name, buttonGuard(b))
		}
	}
	return h
}

// WithKeys restricts cb to events whose key matches one of names.
func (c *Compiler) WithKeys(cb Callable, names []string) *Handler {
	return c.AttachKeyGuards(cb, names...)
}

// Compile splits a full modifier list for eventName into listener options,
// modifiers and key names and returns the compiled Handler.
//
// "capture", "once" and "passive" become listener options. "left" and
// "right" are arrow keys on keyboard events and mouse buttons otherwise.
// Names that are neither options nor modifiers are key names on keyboard
// events and ignored on all other events.
func (c *Compiler) Compile(eventName string, cb Callable, names []string) (*Handler, dom.ListenerOptions) {
	var (
		opts     dom.ListenerOptions
		mods     []string
		keyNames []string
	)
	keyboard := IsKeyboardEvent(eventName)
	for _, raw := range names {
		name := canonical(raw)
		switch name {
		case "":
			continue
		case "capture":
			opts.Capture = true
		case "once":
			opts.Once = true
		case "passive":
			opts.Passive = true
		case "stop", "prevent", "self", "ctrl", "shift", "alt", "meta", "exact", "middle":
			mods = append(mods, name)
		case "left", "right":
			if keyboard {
				keyNames = append(keyNames, name)
			} else {
				mods = append(mods, name)
			}
		default:
			if keyboard {
				keyNames = append(keyNames, raw)
			}
		}
	}
	h := c.WithModifiers(cb, mods)
	if len(keyNames) > 0 {
		h = c.WithKeys(h, keyNames)
	}
	return h, opts
}

// eventKey returns the normalized key of a keyboard event, falling back to
// the keyCode table when the event has no key value.
func (c *Compiler) eventKey(e dom.Event) (string, bool) {
	ks, ok := e.(dom.KeyState)
	if !ok {
		return "", false
	}
	if k := ks.Key(); k != "" {
		return key.Normalize(k), true
	}
	return c.codes.Name(ks.KeyCode())
}

// IsKeyboardEvent reports whether name is a keyboard event type.
func IsKeyboardEvent(name string) bool {
	switch strings.ToLower(name) {
	case "keydown", "keyup", "keypress":
		return true
	}
	return false
}

func canonicalAll(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if c := canonical(n); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func selfGuard(e dom.Event) bool {
	return e.Target() == e.CurrentTarget()
}

func requireGuard(mod key.Modifier) Guard {
	return func(e dom.Event) bool {
		return e.Modifiers().Has(mod)
	}
}

func exactGuard(declared key.Modifier) Guard {
	return func(e dom.Event) bool {
		return e.Modifiers().Without(declared).IsEmpty()
	}
}

func buttonGuard(b mouse.Button) Guard {
	return func(e dom.Event) bool {
		bs, ok := e.(dom.ButtonState)
		return !ok || bs.Button() == b
	}
}

// AttachPropagationGuards calls Default.AttachPropagationGuards.
func AttachPropagationGuards(cb Callable, mods ...string) *Handler {
	return Default.AttachPropagationGuards(cb, mods...)
}

// AttachSystemKeyGuards calls Default.AttachSystemKeyGuards.
func AttachSystemKeyGuards(cb Callable, declared key.Modifier, exact bool) *Handler {
	return Default.AttachSystemKeyGuards(cb, declared, exact)
}

// AttachKeyGuards calls Default.AttachKeyGuards.
func AttachKeyGuards(cb Callable, names ...string) *Handler {
	return Default.AttachKeyGuards(cb, names...)
}

// AttachMouseButtonGuard calls Default.AttachMouseButtonGuard.
func AttachMouseButtonGuard(cb Callable, button mouse.Button) *Handler {
	return Default.AttachMouseButtonGuard(cb, button)
}

// WithModifiers calls Default.WithModifiers.
func WithModifiers(cb Callable, names []string) *Handler {
	return Default.WithModifiers(cb, names)
}

// WithKeys calls Default.WithKeys.
func WithKeys(cb Callable, names []string) *Handler {
	return Default.WithKeys(cb, names)
}

// Compile calls Default.Compile.
func Compile(eventName string, cb Callable, names []string) (*Handler, dom.ListenerOptions) {
	return Default.Compile(eventName, cb, names)
}
