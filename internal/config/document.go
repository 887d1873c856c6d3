package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dshills/vbind/internal/input/key"
)

// RootID is the id of the implicit root node.
const RootID = "root"

// Document is a declarative binding document.
type Document struct {
	Keys     KeysSpec      `toml:"keys,omitempty" yaml:"keys,omitempty"`
	Nodes    []NodeSpec    `toml:"nodes,omitempty" yaml:"nodes,omitempty"`
	Bindings []BindingSpec `toml:"bindings,omitempty" yaml:"bindings,omitempty"`
}

// KeysSpec overrides the key tables.
type KeysSpec struct {
	// Aliases maps a declared name to the key values it matches. An empty
	// list removes a default alias.
	Aliases map[string][]string `toml:"aliases,omitempty" yaml:"aliases,omitempty"`

	// Codes maps a numeric keyCode, written as a string, to a key value.
	Codes map[string]string `toml:"codes,omitempty" yaml:"codes,omitempty"`
}

// NodeSpec declares a node.
type NodeSpec struct {
	ID     string `toml:"id" yaml:"id"`
	Parent string `toml:"parent,omitempty" yaml:"parent,omitempty"`
	X      int    `toml:"x,omitempty" yaml:"x,omitempty"`
	Y      int    `toml:"y,omitempty" yaml:"y,omitempty"`
	Width  int    `toml:"width,omitempty" yaml:"width,omitempty"`
	Height int    `toml:"height,omitempty" yaml:"height,omitempty"`
	Focus  bool   `toml:"focus,omitempty" yaml:"focus,omitempty"`
}

// ParentID returns the parent id, defaulting to the root.
func (n NodeSpec) ParentID() string {
	if n.Parent == "" {
		return RootID
	}
	return n.Parent
}

// BindingSpec declares an event binding.
type BindingSpec struct {
	// Node is the id of the bound node; empty means the root.
	Node string `toml:"node,omitempty" yaml:"node,omitempty"`

	// Event is the raw event name, e.g. "click", "onKeyupCapture" or "!click".
	Event string `toml:"event" yaml:"event"`

	// Handler names a single callback.
	Handler string `toml:"handler,omitempty" yaml:"handler,omitempty"`

	// Handlers names callbacks called in order.
	Handlers []string `toml:"handlers,omitempty" yaml:"handlers,omitempty"`

	// Modifiers lists modifier, key and listener option names.
	Modifiers []string `toml:"modifiers,omitempty" yaml:"modifiers,omitempty"`
}

// NodeID returns the bound node id, defaulting to the root.
func (b BindingSpec) NodeID() string {
	if b.Node == "" {
		return RootID
	}
	return b.Node
}

// HandlerNames returns Handler followed by Handlers, skipping blanks.
func (b BindingSpec) HandlerNames() []string {
	var names []string
	if h := strings.TrimSpace(b.Handler); h != "" {
		names = append(names, h)
	}
	for _, h := range b.Handlers {
		if h = strings.TrimSpace(h); h != "" {
			names = append(names, h)
		}
	}
	return names
}

// AliasTable returns the alias overrides as a key.AliasTable.
func (k KeysSpec) AliasTable() key.AliasTable {
	t := make(key.AliasTable, len(k.Aliases))
	for name, values := range k.Aliases {
		t[name] = append([]string(nil), values...)
	}
	return t
}

// CodeTable returns the keyCode overrides as a key.CodeTable.
func (k KeysSpec) CodeTable() (key.CodeTable, error) {
	t := make(key.CodeTable, len(k.Codes))
	for code, name := range k.Codes {
		n, err := strconv.Atoi(strings.TrimSpace(code))
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("keyCode %q is not a positive integer", code)
		}
		t[n] = name
	}
	return t, nil
}

// Node returns the node spec with the given id.
func (d *Document) Node(id string) (NodeSpec, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return NodeSpec{}, false
}

// Validate reports every structural problem in the document.
func (d *Document) Validate() error {
	var problems []string
	addf := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if _, err := d.Keys.CodeTable(); err != nil {
		addf("keys.codes: %v", err)
	}

	parents := make(map[string]string, len(d.Nodes))
	focused := 0
	for i, n := range d.Nodes {
		switch {
		case n.ID == "":
			addf("nodes[%d]: missing id", i)
			continue
		case n.ID == RootID:
			addf("nodes[%d]: id %q is reserved", i, RootID)
			continue
		}
		if _, dup := parents[n.ID]; dup {
			addf("nodes[%d]: duplicate id %q", i, n.ID)
			continue
		}
		if n.Width < 0 || n.Height < 0 {
			addf("nodes[%d]: negative size", i)
		}
		if n.Focus {
			focused++
		}
		parents[n.ID] = n.ParentID()
	}
	if focused > 1 {
		addf("nodes: %d nodes request focus", focused)
	}

	ids := make([]string, 0, len(parents))
	for id := range parents {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		parent := parents[id]
		if _, ok := parents[parent]; !ok && parent != RootID {
			addf("node %q: unknown parent %q", id, parent)
			continue
		}
		if cyclic(id, parents) {
			addf("node %q: parent chain is cyclic", id)
		}
	}

	for i, b := range d.Bindings {
		if strings.TrimSpace(b.Event) == "" {
			addf("bindings[%d]: missing event", i)
		}
		if node := b.NodeID(); node != RootID {
			if _, ok := parents[node]; !ok {
				addf("bindings[%d]: unknown node %q", i, node)
			}
		}
		if len(b.HandlerNames()) == 0 {
			addf("bindings[%d]: no handler", i)
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func cyclic(id string, parents map[string]string) bool {
	seen := map[string]bool{id: true}
	for cur := parents[id]; cur != RootID; cur = parents[cur] {
		if seen[cur] {
			return true
		}
		seen[cur] = true
		if _, ok := parents[cur]; !ok {
			return false
		}
	}
	return false
}
