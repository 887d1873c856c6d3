package key

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Hyphenate converts camel case to hyphen case: "ArrowUp" becomes
// "Arrow-Up" and "onClickOutside" becomes "on-Click-Outside". A hyphen is
// inserted before an ASCII upper-case letter that follows a word character.
// Case is otherwise preserved.
func Hyphenate(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	var prev rune
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' && isWordRune(prev) {
			b.WriteByte('-')
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// Normalize returns the canonical comparison form of a key name.
func Normalize(name string) string {
	if name == "" {
		return ""
	}
	s := cases.Lower(language.Und).String(Hyphenate(name))
	if len(s) > len("key") && strings.HasSuffix(s, "key") {
		trimmed := strings.TrimSuffix(strings.TrimSuffix(s, "key"), "-")
		if trimmed != "" {
			s = trimmed
		}
	}
	return s
}

// AliasTable maps a declared key name to the normalized key values it
// stands for. Keys of the table are normalized names.
type AliasTable map[string][]string

// DefaultAliases returns the conventional alias table.
func DefaultAliases() AliasTable {
	return AliasTable{
		"esc":    {"escape"},
		"space":  {" "},
		"up":     {"arrow-up"},
		"down":   {"arrow-down"},
		"left":   {"arrow-left"},
		"right":  {"arrow-right"},
		"delete": {"backspace", "delete"},
	}
}

// Resolve returns every normalized key value a declared name matches: the
// normalized name itself followed by its aliases.
func (t AliasTable) Resolve(declared string) []string {
	n := Normalize(declared)
	if n == "" {
		return nil
	}
	out := []string{n}
	for _, alias := range t[n] {
		if a := Normalize(alias); a != "" && a != n {
			out = append(out, a)
		}
	}
	return out
}

// Clone returns a deep copy of the table.
func (t AliasTable) Clone() AliasTable {
	out := make(AliasTable, len(t))
	for k, v := range t {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Merge returns a new table containing t overlaid with other. Entries of
// other replace entries of t with the same normalized name; an entry with
// no values removes the alias.
func (t AliasTable) Merge(other AliasTable) AliasTable {
	out := t.Clone()
	for k, v := range other {
		name := Normalize(k)
		if len(v) == 0 {
			delete(out, name)
			continue
		}
		vals := make([]string, 0, len(v))
		for _, alias := range v {
			vals = append(vals, Normalize(alias))
		}
		out[name] = vals
	}
	return out
}

// Names returns the declared names in the table, sorted.
func (t AliasTable) Names() []string {
	names := make([]string, 0, len(t))
	for k := range t {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
