package dom

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/vbind/internal/input/mouse"
)

// Rect is an axis-aligned screen rectangle.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p mouse.Position) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Node is an element of the event target tree.
//
// Node is not safe for concurrent use; the tree belongs to the goroutine
// running the event loop.
type Node struct {
	id        string
	name      string
	parent    *Node
	children  []*Node
	bounds    Rect
	listeners map[string][]*registration
}

// NewNode creates a detached node with a fresh identity.
func NewNode(name string) *Node {
	return &Node{
		id:        uuid.NewString(),
		name:      name,
		listeners: make(map[string][]*registration),
	}
}

// ID returns the node's unique identifier.
func (n *Node) ID() string { return n.id }

// Name returns the node's name.
func (n *Node) Name() string { return n.name }

// String returns the name and a short form of the identifier.
func (n *Node) String() string {
	id := n.id
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("%s#%s", n.name, id)
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

// Bounds returns the node's screen rectangle.
func (n *Node) Bounds() Rect { return n.bounds }

// SetBounds sets the node's screen rectangle.
func (n *Node) SetBounds(r Rect) { n.bounds = r }

// Root returns the topmost ancestor.
func (n *Node) Root() *Node {
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	for ; other != nil; other = other.parent {
		if other == n {
			return true
		}
	}
	return false
}

// AppendChild moves child to the end of n's children.
func (n *Node) AppendChild(child *Node) error {
	if child == nil {
		return ErrNilNode
	}
	if child.Contains(n) {
		return fmt.Errorf("append %s to %s: %w", child, n, ErrHierarchy)
	}
	child.Detach()
	child.parent = n
	n.children = append(n.children, child)
	return nil
}

// RemoveChild detaches child if it is a child of n.
func (n *Node) RemoveChild(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// Detach removes n from its parent.
func (n *Node) Detach() {
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
}

// Path returns the nodes from the root down to n.
func (n *Node) Path() []*Node {
	var path []*Node
	for c := n; c != nil; c = c.parent {
		path = append(path, c)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Walk visits n and its descendants depth-first, parents before children.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children() {
		c.Walk(fn)
	}
}

// HitTest returns the deepest node under p whose bounds contain it. Later
// siblings are considered on top of earlier ones. It returns nil when p is
// outside n.
func (n *Node) HitTest(p mouse.Position) *Node {
	if !n.bounds.Contains(p) {
		return nil
	}
	for i := len(n.children) - 1; i >= 0; i-- {
		if hit := n.children[i].HitTest(p); hit != nil {
			return hit
		}
	}
	return n
}

// AddEventListener registers l for events of type typ. Registering the
// same listener again with the same capture flag has no effect.
func (n *Node) AddEventListener(typ string, l Listener, opts ListenerOptions) {
	if l == nil {
		return
	}
	for _, r := range n.listeners[typ] {
		if r.opts.Capture == opts.Capture && sameListener(r.listener, l) {
			return
		}
	}
	n.listeners[typ] = append(n.listeners[typ], &registration{listener: l, opts: opts})
}

// RemoveEventListener unregisters l. Only the capture flag of opts is
// significant. Removing an unknown listener has no effect.
func (n *Node) RemoveEventListener(typ string, l Listener, opts ListenerOptions) {
	for _, r := range n.listeners[typ] {
		if r.opts.Capture == opts.Capture && sameListener(r.listener, l) {
			n.remove(typ, r)
			return
		}
	}
}

func (n *Node) remove(typ string, target *registration) {
	target.removed = true
	regs := n.listeners[typ]
	for i, r := range regs {
		if r == target {
			n.listeners[typ] = append(regs[:i:i], regs[i+1:]...)
			break
		}
	}
	if len(n.listeners[typ]) == 0 {
		delete(n.listeners, typ)
	}
}

// Listeners returns the listeners registered for typ in registration order.
func (n *Node) Listeners(typ string) []Listener {
	regs := n.listeners[typ]
	out := make([]Listener, 0, len(regs))
	for _, r := range regs {
		out = append(out, r.listener)
	}
	return out
}

// ListenerCount returns the number of listeners registered for typ.
func (n *Node) ListenerCount(typ string) int {
	return len(n.listeners[typ])
}

// DispatchEvent dispatches e with n as the target and reports whether the
// default action is still allowed. An event that is already being
// dispatched is rejected and false is returned.
func (n *Node) DispatchEvent(e Event) bool {
	ev := e.base()
	if ev.dispatching {
		return false
	}
	ev.dispatching = true
	ev.target = n
	defer func() {
		ev.dispatching = false
		ev.phase = PhaseNone
		ev.currentTarget = nil
	}()

	path := n.Path()
	for i := 0; i < len(path)-1 && !ev.stopped; i++ {
		path[i].invoke(e, PhaseCapturing)
	}
	if !ev.stopped {
		n.invoke(e, PhaseAtTarget)
	}
	if ev.bubbles {
		for i := len(path) - 2; i >= 0 && !ev.stopped; i-- {
			path[i].invoke(e, PhaseBubbling)
		}
	}
	return !ev.defaultPrevented
}

func (n *Node) invoke(e Event, phase Phase) {
	ev := e.base()
	regs := n.listeners[e.Type()]
	if len(regs) == 0 {
		return
	}
	snapshot := append([]*registration(nil), regs...)

	ev.currentTarget = n
	ev.phase = phase

	if phase == PhaseAtTarget {
		// Capture listeners run before the others at the target.
		if n.run(e, snapshot, true) {
			n.run(e, snapshot, false)
		}
		return
	}
	n.run(e, snapshot, phase == PhaseCapturing)
}

// run invokes the registrations with the given capture flag and reports
// whether dispatch may continue on this node.
func (n *Node) run(e Event, regs []*registration, capture bool) bool {
	ev := e.base()
	for _, r := range regs {
		if r.removed || r.opts.Capture != capture {
			continue
		}
		if r.opts.Once {
			n.remove(e.Type(), r)
		}
		ev.inPassive = r.opts.Passive
		r.listener.HandleEvent(e)
		ev.inPassive = false
		if ev.immediateStopped {
			return false
		}
	}
	return true
}
