// Package app wires the binding document, the script engine, the guard
// compiler and the binding manager to a terminal host.
package app

import (
	"io"
	"sync/atomic"
	"time"

	"github.com/dshills/vbind/internal/binding"
	"github.com/dshills/vbind/internal/config"
	"github.com/dshills/vbind/internal/dom"
	"github.com/dshills/vbind/internal/host"
	"github.com/dshills/vbind/internal/input/key"
	"github.com/dshills/vbind/internal/logging"
	"github.com/dshills/vbind/internal/modifier"
	"github.com/dshills/vbind/internal/script"
)

// Application owns the node tree and everything bound to it. Apply and
// the callbacks it installs run on the host loop once Run has started.
type Application struct {
	opts Options
	log  *logging.Logger

	manager  *binding.Manager
	scripts  *script.Engine
	builtins map[string]modifier.Callable

	// Tables of the last applied document.
	compiler *modifier.Compiler
	codes    key.CodeTable

	root    *dom.Node
	nodes   map[string]*dom.Node
	applied map[bindingKey]appliedBinding
	focused *dom.Node

	host   *host.Host
	status string

	quit    atomic.Bool
	running atomic.Bool
	closed  bool
}

// Options configures the application.
type Options struct {
	// ConfigPath is the binding document to load.
	ConfigPath string

	// ScriptPath is a Lua file defining handler functions.
	ScriptPath string

	// Watch reapplies the binding document when it changes on disk.
	Watch bool

	// LogLevel sets the logging verbosity.
	LogLevel string

	// LogOutput receives log lines. Defaults to stderr.
	LogOutput io.Writer

	// Debounce overrides the watcher debounce interval.
	Debounce time.Duration

	// Logger replaces the logger built from LogLevel and LogOutput.
	Logger *logging.Logger
}

// New creates an Application. The binding document and script named in
// opts are loaded and applied.
func New(opts Options) (*Application, error) {
	log := opts.Logger
	if log == nil {
		cfg := logging.DefaultConfig()
		cfg.Level = logging.ParseLevel(opts.LogLevel)
		if opts.LogOutput != nil {
			cfg.Output = opts.LogOutput
		}
		log = logging.New(cfg)
	}

	app := &Application{
		opts:     opts,
		log:      log.WithComponent("app"),
		compiler: modifier.Default,
		codes:    key.DefaultCodes(),
		root:     dom.NewNode(config.RootID),
		nodes:    make(map[string]*dom.Node),
		applied:  make(map[bindingKey]appliedBinding),
	}
	app.nodes[config.RootID] = app.root
	app.manager = binding.New(binding.WithLogger(log))
	app.scripts = script.New(
		script.WithLogger(log),
		script.WithErrorReporter(app.reportScriptError),
	)
	app.builtins = app.newBuiltins()
	app.scripts.RegisterModule("vbind", app.luaModule())

	if opts.ScriptPath != "" {
		if err := app.scripts.DoFile(opts.ScriptPath); err != nil {
			app.scripts.Close()
			return nil, &InitError{Component: "script", Err: err}
		}
	}

	if opts.ConfigPath != "" {
		doc, err := config.Load(opts.ConfigPath)
		if err != nil {
			app.scripts.Close()
			return nil, &InitError{Component: "config", Err: err}
		}
		if err := app.Apply(doc); err != nil {
			app.Shutdown()
			return nil, &InitError{Component: "bindings", Err: err}
		}
	}

	return app, nil
}

// Root returns the root node.
func (app *Application) Root() *dom.Node { return app.root }

// Node returns the node declared with id.
func (app *Application) Node(id string) (*dom.Node, bool) {
	n, ok := app.nodes[id]
	return n, ok
}

// Manager returns the binding manager.
func (app *Application) Manager() *binding.Manager { return app.manager }

// Scripts returns the script engine.
func (app *Application) Scripts() *script.Engine { return app.scripts }

// Status returns the status text.
func (app *Application) Status() string { return app.status }

// SetStatus sets the status text shown by the host.
func (app *Application) SetStatus(s string) {
	app.status = s
	if app.host != nil {
		app.host.SetStatus(s)
	}
}

// Quit stops Run. Before Run it makes the next Run return immediately.
func (app *Application) Quit() {
	app.quit.Store(true)
	if app.host != nil {
		app.host.Quit()
	}
}

// QuitRequested reports whether Quit was called.
func (app *Application) QuitRequested() bool { return app.quit.Load() }

// IsRunning reports whether Run is in progress.
func (app *Application) IsRunning() bool { return app.running.Load() }

// Shutdown unbinds every handler and closes the script engine. It is safe
// to call more than once.
func (app *Application) Shutdown() {
	if app.closed {
		return
	}
	app.closed = true
	app.manager.Close()
	clear(app.applied)
	app.scripts.Close()
}

func (app *Application) reportScriptError(name string, err error) {
	app.log.WithField("handler", name).Error("%v", err)
	app.SetStatus(name + ": " + err.Error())
}
