package app

import (
	"context"

	"github.com/dshills/vbind/internal/config"
	"github.com/dshills/vbind/internal/dom"
	"github.com/dshills/vbind/internal/host"
	"github.com/dshills/vbind/internal/modifier"
	"github.com/gdamore/tcell/v2"
)

// Compiler returns the guard compiler built from the last applied
// document's key tables.
func (app *Application) Compiler() *modifier.Compiler { return app.compiler }

// Focus moves focus to n. Before Run the node is remembered and focused
// when the host starts.
func (app *Application) Focus(n *dom.Node) {
	if app.host != nil {
		app.host.Focus(n)
		return
	}
	app.focused = n
}

// Focused returns the focused node, or nil.
func (app *Application) Focused() *dom.Node {
	if app.host != nil {
		return app.host.Focused()
	}
	return app.focused
}

// Run drives the node tree from screen until Quit is called or ctx is
// done. The screen must already be initialized. With Options.Watch the
// binding document is reapplied on the host loop whenever it changes.
func (app *Application) Run(ctx context.Context, screen tcell.Screen) error {
	if app.closed {
		return ErrClosed
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	h, err := host.New(screen, app.root,
		host.WithLogger(app.log),
		host.WithKeyCodes(app.codes),
	)
	if err != nil {
		return &InitError{Component: "host", Err: err}
	}

	pending := app.focused
	app.host = h
	defer func() {
		app.focused = h.Focused()
		app.host = nil
	}()
	h.SetStatus(app.status)
	h.Focus(pending)

	if app.opts.Watch && app.opts.ConfigPath != "" {
		opts := []config.WatchOption{config.WithWatchLogger(app.log)}
		if app.opts.Debounce > 0 {
			opts = append(opts, config.WithDebounce(app.opts.Debounce))
		}
		w, err := config.NewWatcher(app.opts.ConfigPath, func(doc *config.Document, err error) {
			_ = h.Post(func() { app.reload(doc, err) })
		}, opts...)
		if err != nil {
			return &InitError{Component: "watcher", Err: err}
		}
		defer w.Close()
	}

	if app.quit.Load() {
		return nil
	}
	return h.Run(ctx)
}

// reload applies a document delivered by the watcher. Failures keep the
// current bindings.
func (app *Application) reload(doc *config.Document, err error) {
	if err == nil {
		err = app.Apply(doc)
	}
	if err != nil {
		app.log.Warn("reload %s: %v", app.opts.ConfigPath, err)
		app.SetStatus("reload failed: " + err.Error())
		return
	}
	app.SetStatus("reloaded " + app.opts.ConfigPath)
}
