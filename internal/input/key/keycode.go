package key

import "fmt"

// CodeTable maps legacy numeric key codes to normalized key values.
type CodeTable map[int]string

// DefaultCodes returns the key codes used by common keyboards.
func DefaultCodes() CodeTable {
	t := CodeTable{
		8:  "backspace",
		9:  "tab",
		13: "enter",
		16: "shift",
		17: "control",
		18: "alt",
		27: "escape",
		32: " ",
		33: "page-up",
		34: "page-down",
		35: "end",
		36: "home",
		37: "arrow-left",
		38: "arrow-up",
		39: "arrow-right",
		40: "arrow-down",
		45: "insert",
		46: "delete",
	}
	for c := '0'; c <= '9'; c++ {
		t[int(c)] = string(c)
	}
	for c := 'A'; c <= 'Z'; c++ {
		t[int(c)] = string(c + ('a' - 'A'))
	}
	for i := 1; i <= 12; i++ {
		t[111+i] = fmt.Sprintf("f%d", i)
	}
	return t
}

// Name returns the normalized key value for a code.
func (t CodeTable) Name(code int) (string, bool) {
	if code <= 0 {
		return "", false
	}
	name, ok := t[code]
	return name, ok
}

// Code returns the smallest code mapped to the given key name.
func (t CodeTable) Code(name string) (int, bool) {
	n := Normalize(name)
	best := 0
	for code, v := range t {
		if v == n && (best == 0 || code < best) {
			best = code
		}
	}
	return best, best != 0
}

// Merge returns a new table containing t overlaid with other. Names in
// other are normalized; an empty name removes the code.
func (t CodeTable) Merge(other CodeTable) CodeTable {
	out := make(CodeTable, len(t)+len(other))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range other {
		if v == "" {
			delete(out, k)
			continue
		}
		out[k] = Normalize(v)
	}
	return out
}
