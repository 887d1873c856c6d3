package app

import (
	"fmt"

	"github.com/dshills/vbind/internal/binding"
	"github.com/dshills/vbind/internal/config"
	"github.com/dshills/vbind/internal/dom"
	"github.com/dshills/vbind/internal/input/key"
	"github.com/dshills/vbind/internal/modifier"
)

// bindingKey identifies an applied binding: the node, the event name and
// the listener options after merging the name's and the modifiers'.
type bindingKey struct {
	node  string
	event string
	opts  dom.ListenerOptions
}

// appliedBinding remembers how a binding was patched so it can be removed.
type appliedBinding struct {
	target dom.Target
	raw    string
	opts   dom.ListenerOptions
	value  any
}

// plan is a resolved binding waiting to be patched.
type plan struct {
	key   bindingKey
	raw   string
	opts  dom.ListenerOptions
	value any
}

// Apply makes the node tree and bindings match doc.
//
// Nodes are matched by id and bindings by node, event and options. A
// binding already present keeps its listener and only has its handlers
// swapped. Bindings and nodes missing from doc are removed. Nothing
// changes when doc is invalid or names an unknown handler.
func (app *Application) Apply(doc *config.Document) error {
	if app.closed {
		return ErrClosed
	}
	if doc == nil {
		doc = &config.Document{}
	}
	if err := doc.Validate(); err != nil {
		return err
	}

	codes, err := doc.Keys.CodeTable()
	if err != nil {
		return err
	}
	compiler := modifier.NewCompiler(
		modifier.WithAliases(doc.Keys.AliasTable()),
		modifier.WithKeyCodes(codes),
	)

	plans, err := app.plan(doc, compiler)
	if err != nil {
		return err
	}

	app.compiler = compiler
	app.codes = key.DefaultCodes().Merge(codes)
	removed := app.applyNodes(doc)

	next := make(map[bindingKey]appliedBinding, len(plans))
	for _, p := range plans {
		target := app.nodes[p.key.node]
		var prev any
		if old, ok := app.applied[p.key]; ok {
			prev = old.value
		}
		if err := app.manager.Patch(target, p.raw, prev, p.value, p.opts); err != nil {
			return fmt.Errorf("patching %s %s: %w", p.key.node, p.raw, err)
		}
		next[p.key] = appliedBinding{target: target, raw: p.raw, opts: p.opts, value: p.value}
	}

	for k, old := range app.applied {
		if _, ok := next[k]; ok || removed[k.node] {
			continue
		}
		if err := app.manager.Patch(old.target, old.raw, old.value, nil, old.opts); err != nil {
			return fmt.Errorf("unbinding %s %s: %w", k.node, old.raw, err)
		}
	}
	for id, n := range app.removedNodes(removed) {
		released := app.manager.Release(n)
		app.log.WithField("node", id).Debug("removed, %d bindings released", released)
	}
	app.applied = next

	for _, spec := range doc.Nodes {
		if spec.Focus {
			app.Focus(app.nodes[spec.ID])
		}
	}
	app.log.Info("applied %d nodes, %d bindings", len(doc.Nodes), len(next))
	return nil
}

// plan resolves and compiles every binding of doc without touching any
// state.
func (app *Application) plan(doc *config.Document, compiler *modifier.Compiler) ([]plan, error) {
	plans := make([]plan, 0, len(doc.Bindings))
	index := make(map[bindingKey]int, len(doc.Bindings))

	for i, spec := range doc.Bindings {
		fail := func(err error) error {
			return &BindingError{Index: i, Node: spec.NodeID(), Event: spec.Event, Err: err}
		}

		event, nameOpts := binding.ParseName(spec.Event)
		if event == "" {
			return nil, fail(binding.ErrInvalidEventName)
		}

		names := spec.HandlerNames()
		handlers := make([]modifier.Callable, 0, len(names))
		var opts dom.ListenerOptions
		for _, name := range names {
			cb, err := app.resolve(name)
			if err != nil {
				return nil, fail(err)
			}
			var h *modifier.Handler
			h, opts = compiler.Compile(event, cb, spec.Modifiers)
			handlers = append(handlers, h)
		}

		p := plan{
			key:  bindingKey{node: spec.NodeID(), event: event, opts: nameOpts.Merge(opts)},
			raw:  spec.Event,
			opts: opts,
		}
		if len(handlers) == 1 {
			p.value = handlers[0]
		} else {
			p.value = handlers
		}

		if j, dup := index[p.key]; dup {
			app.log.WithField("event", event).Warn("binding %d replaces binding %d on %s", i, j, p.key.node)
			plans[j] = p
			continue
		}
		index[p.key] = len(plans)
		plans = append(plans, p)
	}
	return plans, nil
}

// applyNodes creates, moves and sizes the nodes of doc. It returns the ids
// of the nodes no longer declared; those are detached but still indexed.
func (app *Application) applyNodes(doc *config.Document) map[string]bool {
	declared := make(map[string]bool, len(doc.Nodes))
	for _, spec := range doc.Nodes {
		declared[spec.ID] = true
		n, ok := app.nodes[spec.ID]
		if !ok {
			n = dom.NewNode(spec.ID)
			app.nodes[spec.ID] = n
		}
		n.SetBounds(dom.Rect{X: spec.X, Y: spec.Y, Width: spec.Width, Height: spec.Height})
	}

	removed := make(map[string]bool)
	for id, n := range app.nodes {
		if id != config.RootID && !declared[id] {
			removed[id] = true
			n.Detach()
		}
	}

	// Detach every moved node first so that swapping a parent and a
	// child never forms a cycle.
	for _, spec := range doc.Nodes {
		n := app.nodes[spec.ID]
		if n.Parent() != app.nodes[spec.ParentID()] {
			n.Detach()
		}
	}
	for _, spec := range doc.Nodes {
		n := app.nodes[spec.ID]
		if n.Parent() == nil {
			if err := app.nodes[spec.ParentID()].AppendChild(n); err != nil {
				app.log.WithField("node", spec.ID).Error("attach: %v", err)
			}
		}
	}
	return removed
}

// removedNodes drops the removed ids from the index and returns their
// nodes. Focus on a removed node is cleared.
func (app *Application) removedNodes(removed map[string]bool) map[string]*dom.Node {
	nodes := make(map[string]*dom.Node, len(removed))
	for id := range removed {
		n := app.nodes[id]
		nodes[id] = n
		delete(app.nodes, id)
		if f := app.Focused(); f != nil && (f == n || n.Contains(f)) {
			app.Focus(nil)
		}
	}
	return nodes
}
