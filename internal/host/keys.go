package host

import (
	"fmt"
	"unicode"

	"github.com/dshills/vbind/internal/input/key"
	"github.com/gdamore/tcell/v2"
)

// keyInfo is the DOM view of a tcell key press.
type keyInfo struct {
	key  string
	code string
	mods key.Modifier
}

var namedKeys = map[tcell.Key]string{
	tcell.KeyEnter:      key.Enter,
	tcell.KeyTab:        key.Tab,
	tcell.KeyBacktab:    key.Tab,
	tcell.KeyBackspace:  key.Backspace,
	tcell.KeyBackspace2: key.Backspace,
	tcell.KeyEscape:     key.Escape,
	tcell.KeyDelete:     key.Delete,
	tcell.KeyInsert:     key.Insert,
	tcell.KeyHome:       key.Home,
	tcell.KeyEnd:        key.End,
	tcell.KeyPgUp:       key.PageUp,
	tcell.KeyPgDn:       key.PageDown,
	tcell.KeyUp:         key.ArrowUp,
	tcell.KeyDown:       key.ArrowDown,
	tcell.KeyLeft:       key.ArrowLeft,
	tcell.KeyRight:      key.ArrowRight,
	tcell.KeyPause:      key.Pause,
	tcell.KeyPrint:      key.PrintScreen,
}

// convertKey translates a tcell key event. It reports false for keys that
// have no DOM equivalent.
func convertKey(ev *tcell.EventKey) (keyInfo, bool) {
	info := keyInfo{mods: convertMod(ev.Modifiers())}
	k := ev.Key()

	switch {
	case k == tcell.KeyRune:
		r := ev.Rune()
		info.key = string(r)
		if unicode.IsUpper(r) {
			info.mods = info.mods.With(key.ModShift)
		}
	case namedKeys[k] != "":
		info.key = namedKeys[k]
		if k == tcell.KeyBacktab {
			info.mods = info.mods.With(key.ModShift)
		}
	case k >= tcell.KeyF1 && k <= tcell.KeyF12:
		info.key = fmt.Sprintf("F%d", int(k-tcell.KeyF1)+1)
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		info.key = string(rune('a' + int(k-tcell.KeyCtrlA)))
		info.mods = info.mods.With(key.ModCtrl)
	case k == tcell.KeyCtrlSpace:
		info.key = key.Space
		info.mods = info.mods.With(key.ModCtrl)
	default:
		return keyInfo{}, false
	}
	info.code = codeFor(info.key)
	return info, true
}

// codeFor returns the physical key code name for a key value.
func codeFor(k string) string {
	runes := []rune(k)
	if len(runes) != 1 {
		return k
	}
	r := runes[0]
	switch {
	case r == ' ':
		return "Space"
	case r >= 'a' && r <= 'z':
		return "Key" + string(unicode.ToUpper(r))
	case r >= 'A' && r <= 'Z':
		return "Key" + string(r)
	case r >= '0' && r <= '9':
		return "Digit" + string(r)
	default:
		return ""
	}
}

func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= key.ModMeta
	}
	return result
}
