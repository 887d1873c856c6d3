package binding

import (
	"strings"

	"github.com/dshills/vbind/internal/dom"
	"github.com/dshills/vbind/internal/input/key"
)

var optionSuffixes = []string{"Once", "Passive", "Capture"}

// ParseName splits a raw event name into the event name and the listener
// options it encodes. An empty event name means the raw name was invalid.
func ParseName(raw string) (string, dom.ListenerOptions) {
	var opts dom.ListenerOptions
	name := strings.TrimSpace(raw)

prefix:
	for name != "" {
		switch name[0] {
		case '!':
			opts.Capture = true
		case '~':
			opts.Once = true
		case '&':
			opts.Passive = true
		default:
			break prefix
		}
		name = name[1:]
	}

	if !hasOnPrefix(name) {
		return name, opts
	}

	for stripped := true; stripped; {
		stripped = false
		for _, suffix := range optionSuffixes {
			if len(name) > len(suffix) && strings.HasSuffix(name, suffix) {
				name = strings.TrimSuffix(name, suffix)
				setOption(&opts, suffix)
				stripped = true
			}
		}
	}

	rest := name[2:]
	if strings.HasPrefix(rest, ":") {
		return rest[1:], opts
	}
	return strings.ToLower(key.Hyphenate(rest)), opts
}

// hasOnPrefix reports whether name uses the "onEvent" or "on:event" form.
func hasOnPrefix(name string) bool {
	if len(name) < 3 || !strings.HasPrefix(name, "on") {
		return false
	}
	c := name[2]
	return c == ':' || (c >= 'A' && c <= 'Z')
}

func setOption(opts *dom.ListenerOptions, suffix string) {
	switch suffix {
	case "Once":
		opts.Once = true
	case "Passive":
		opts.Passive = true
	case "Capture":
		opts.Capture = true
	}
}
