package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/vbind/internal/binding"
	"github.com/dshills/vbind/internal/config"
	"github.com/dshills/vbind/internal/dom"
	"github.com/dshills/vbind/internal/input/key"
	"github.com/dshills/vbind/internal/logging"
	"github.com/gdamore/tcell/v2"
)

const testScript = `
calls = {}
function record(e)
  table.insert(calls, e.type .. ":" .. e.currentTarget)
  vbind.status(table.concat(calls, ","))
end
function save(e) vbind.status("saved " .. e.key) end
function halt(e)
  record(e)
  e.stopImmediate()
end
function boom(e) error("bad handler") end
`

const treeTOML = `
[[nodes]]
id = "sidebar"
width = 20
height = 24

[[nodes]]
id = "button"
parent = "sidebar"
x = 1
y = 1
width = 10
height = 3

[[nodes]]
id = "editor"
x = 20
width = 60
height = 24
focus = true

[[bindings]]
node = "editor"
event = "keydown"
handler = "save"
modifiers = ["ctrl", "prevent", "s"]
`

func newApp(t *testing.T) *Application {
	t.Helper()
	app, err := New(Options{Logger: logging.Null()})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	t.Cleanup(app.Shutdown)
	if err := app.Scripts().DoString(testScript); err != nil {
		t.Fatalf("DoString() failed: %v", err)
	}
	return app
}

func parse(t *testing.T, src string) *config.Document {
	t.Helper()
	doc, err := config.Parse([]byte(src), config.FormatTOML)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	return doc
}

func apply(t *testing.T, app *Application, src string) {
	t.Helper()
	if err := app.Apply(parse(t, src)); err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}
}

func mustNode(t *testing.T, app *Application, id string) *dom.Node {
	t.Helper()
	n, ok := app.Node(id)
	if !ok {
		t.Fatalf("node %q not found", id)
	}
	return n
}

func keydown(k string, mods key.Modifier) *dom.KeyboardEvent {
	return dom.NewKeyboardEvent("keydown", dom.KeyboardEventInit{
		EventInit: dom.EventInit{Bubbles: true, Cancelable: true, Modifiers: mods},
		Key:       k,
	})
}

func click(mods key.Modifier) *dom.MouseEvent {
	return dom.NewMouseEvent("click", dom.MouseEventInit{
		EventInit: dom.EventInit{Bubbles: true, Cancelable: true, Modifiers: mods},
	})
}

func TestApply_BuildsTree(t *testing.T) {
	app := newApp(t)
	apply(t, app, treeTOML)

	sidebar := mustNode(t, app, "sidebar")
	button := mustNode(t, app, "button")
	editor := mustNode(t, app, "editor")

	if sidebar.Parent() != app.Root() || editor.Parent() != app.Root() {
		t.Error("top-level nodes should be children of the root")
	}
	if button.Parent() != sidebar {
		t.Errorf("button parent = %v, want sidebar", button.Parent())
	}
	if got, want := button.Bounds(), (dom.Rect{X: 1, Y: 1, Width: 10, Height: 3}); got != want {
		t.Errorf("button bounds = %+v, want %+v", got, want)
	}
	if app.Focused() != editor {
		t.Errorf("Focused() = %v, want editor", app.Focused())
	}
	if app.Manager().Len() != 1 {
		t.Errorf("Manager().Len() = %d, want 1", app.Manager().Len())
	}
}

func TestApply_GuardsHandlers(t *testing.T) {
	app := newApp(t)
	apply(t, app, treeTOML)
	editor := mustNode(t, app, "editor")

	tests := []struct {
		name      string
		ev        *dom.KeyboardEvent
		status    string
		prevented bool
	}{
		{"no ctrl", keydown("s", key.ModNone), "", true},
		{"wrong key", keydown("x", key.ModCtrl), "", true},
		{"match", keydown("s", key.ModCtrl), "saved s", true},
		{"extra shift", keydown("S", key.ModCtrl|key.ModShift), "saved S", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app.SetStatus("")
			editor.DispatchEvent(tt.ev)
			if app.Status() != tt.status {
				t.Errorf("Status() = %q, want %q", app.Status(), tt.status)
			}
			if tt.ev.DefaultPrevented() != tt.prevented {
				t.Errorf("DefaultPrevented() = %v, want %v", tt.ev.DefaultPrevented(), tt.prevented)
			}
		})
	}
}

func TestApply_DocumentKeyTables(t *testing.T) {
	app := newApp(t)
	apply(t, app, `
[keys.aliases]
save = ["s", "F2"]

[keys.codes]
"200" = "s"

[[bindings]]
event = "keydown"
handler = "save"
modifiers = ["save"]
`)
	root := app.Root()

	root.DispatchEvent(keydown("F2", key.ModNone))
	if app.Status() != "saved F2" {
		t.Errorf("alias: Status() = %q, want %q", app.Status(), "saved F2")
	}

	app.SetStatus("")
	root.DispatchEvent(dom.NewKeyboardEvent("keydown", dom.KeyboardEventInit{KeyCode: 200}))
	if app.Status() != "saved " {
		t.Errorf("keyCode: Status() = %q, want %q", app.Status(), "saved ")
	}

	if code, _ := app.codes.Code("s"); code != 83 {
		t.Errorf("host keyCode for s = %d, want 83", code)
	}
}

func TestApply_ReapplySwapsInPlace(t *testing.T) {
	app := newApp(t)
	apply(t, app, treeTOML)
	editor := mustNode(t, app, "editor")

	before, ok := app.Manager().Lookup(editor, "keydown", dom.ListenerOptions{})
	if !ok {
		t.Fatal("binding not found")
	}

	apply(t, app, strings.Replace(treeTOML, `handler = "save"`, `handler = "record"`, 1))

	after, ok := app.Manager().Lookup(editor, "keydown", dom.ListenerOptions{})
	if !ok {
		t.Fatal("binding not found after reapply")
	}
	if after.ID != before.ID || after.Attached.Before(before.Attached) {
		t.Error("reapply should keep the bound listener")
	}
	if editor.ListenerCount("keydown") != 1 {
		t.Errorf("ListenerCount() = %d, want 1", editor.ListenerCount("keydown"))
	}

	editor.DispatchEvent(keydown("s", key.ModCtrl))
	if app.Status() != "keydown:editor" {
		t.Errorf("Status() = %q, want %q", app.Status(), "keydown:editor")
	}
}

func TestApply_OptionsChangeRebinds(t *testing.T) {
	app := newApp(t)
	apply(t, app, treeTOML)
	editor := mustNode(t, app, "editor")

	apply(t, app, strings.Replace(treeTOML, `"ctrl", "prevent"`, `"ctrl", "capture", "prevent"`, 1))

	if _, ok := app.Manager().Lookup(editor, "keydown", dom.ListenerOptions{}); ok {
		t.Error("bubble binding should be removed")
	}
	if _, ok := app.Manager().Lookup(editor, "keydown", dom.ListenerOptions{Capture: true}); !ok {
		t.Error("capture binding should be added")
	}
	if app.Manager().Len() != 1 {
		t.Errorf("Manager().Len() = %d, want 1", app.Manager().Len())
	}
}

func TestApply_RemovesNodesAndBindings(t *testing.T) {
	app := newApp(t)
	apply(t, app, treeTOML+`
[[bindings]]
node = "button"
event = "click"
handler = "record"
`)
	button := mustNode(t, app, "button")
	editor := mustNode(t, app, "editor")
	if app.Manager().Len() != 2 {
		t.Fatalf("Manager().Len() = %d, want 2", app.Manager().Len())
	}

	apply(t, app, `
[[nodes]]
id = "sidebar"
`)

	if _, ok := app.Node("button"); ok {
		t.Error("button should be removed")
	}
	if _, ok := app.Node("editor"); ok {
		t.Error("editor should be removed")
	}
	if button.Parent() != nil || editor.Parent() != nil {
		t.Error("removed nodes should be detached")
	}
	if button.ListenerCount("click") != 0 || editor.ListenerCount("keydown") != 0 {
		t.Error("removed nodes should have no listeners")
	}
	if app.Manager().Len() != 0 {
		t.Errorf("Manager().Len() = %d, want 0", app.Manager().Len())
	}
	if app.Focused() != nil {
		t.Error("focus on a removed node should be cleared")
	}
}

func TestApply_MovesNodes(t *testing.T) {
	app := newApp(t)
	apply(t, app, `
[[nodes]]
id = "a"

[[nodes]]
id = "b"
parent = "a"
`)
	apply(t, app, `
[[nodes]]
id = "a"
parent = "b"

[[nodes]]
id = "b"
`)

	a, b := mustNode(t, app, "a"), mustNode(t, app, "b")
	if a.Parent() != b || b.Parent() != app.Root() {
		t.Errorf("a.Parent() = %v, b.Parent() = %v", a.Parent(), b.Parent())
	}
}

func TestApply_Sequence(t *testing.T) {
	app := newApp(t)
	apply(t, app, treeTOML+`
[[bindings]]
node = "button"
event = "click"
handlers = ["record", "halt", "record"]
`)

	mustNode(t, app, "button").DispatchEvent(click(key.ModNone))
	if app.Status() != "click:button,click:button" {
		t.Errorf("Status() = %q", app.Status())
	}
}

func TestApply_OnceRebindsOnReapply(t *testing.T) {
	app := newApp(t)
	const src = `
[[bindings]]
event = "onKeydownOnce"
handler = "record"
`
	apply(t, app, src)
	root := app.Root()

	root.DispatchEvent(keydown("a", key.ModNone))
	root.DispatchEvent(keydown("b", key.ModNone))
	if app.Status() != "keydown:root" {
		t.Errorf("Status() = %q, want one call", app.Status())
	}
	if app.Manager().Len() != 0 {
		t.Errorf("Manager().Len() = %d after once fired", app.Manager().Len())
	}

	apply(t, app, src)
	if app.Manager().Len() != 1 {
		t.Errorf("Manager().Len() = %d after reapply, want 1", app.Manager().Len())
	}
}

func TestApply_DuplicateBindingLastWins(t *testing.T) {
	app := newApp(t)
	apply(t, app, `
[[bindings]]
event = "click"
handler = "save"

[[bindings]]
event = "onClick"
handler = "record"
`)

	if app.Manager().Len() != 1 {
		t.Errorf("Manager().Len() = %d, want 1", app.Manager().Len())
	}
	app.Root().DispatchEvent(click(key.ModNone))
	if app.Status() != "click:root" {
		t.Errorf("Status() = %q, want %q", app.Status(), "click:root")
	}
}

func TestApply_ErrorsLeaveStateUnchanged(t *testing.T) {
	tests := []struct {
		name string
		doc  *config.Document
		want error
	}{
		{
			name: "unknown handler",
			doc: &config.Document{Bindings: []config.BindingSpec{
				{Event: "click", Handler: "record"},
				{Event: "keyup", Handler: "missing"},
			}},
			want: ErrUnknownHandler,
		},
		{
			name: "invalid event name",
			doc:  &config.Document{Bindings: []config.BindingSpec{{Event: "~", Handler: "noop"}}},
			want: binding.ErrInvalidEventName,
		},
		{
			name: "invalid document",
			doc:  &config.Document{Nodes: []config.NodeSpec{{ID: "a", Parent: "nowhere"}}},
			want: config.ErrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newApp(t)
			apply(t, app, treeTOML)

			err := app.Apply(tt.doc)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Apply() error = %v, want %v", err, tt.want)
			}
			if app.Manager().Len() != 1 {
				t.Errorf("Manager().Len() = %d, want 1", app.Manager().Len())
			}
			if _, ok := app.Node("button"); !ok {
				t.Error("nodes should be kept")
			}
		})
	}
}

func TestApply_BindingErrorFields(t *testing.T) {
	app := newApp(t)
	err := app.Apply(&config.Document{Bindings: []config.BindingSpec{
		{Event: "click", Handler: "noop"},
		{Event: "onKeyup", Handler: "missing"},
	}})

	var be *BindingError
	if !errors.As(err, &be) {
		t.Fatalf("Apply() error = %v, want *BindingError", err)
	}
	if be.Index != 1 || be.Node != config.RootID || be.Event != "onKeyup" {
		t.Errorf("BindingError = %+v", be)
	}
}

func TestBuiltins(t *testing.T) {
	app := newApp(t)
	apply(t, app, treeTOML+`
[[bindings]]
node = "button"
event = "click"
handlers = ["noop", "log", "focus"]

[[bindings]]
node = "button"
event = "auxclick"
handler = "quit"
`)
	button := mustNode(t, app, "button")

	button.DispatchEvent(click(key.ModCtrl))
	if !strings.HasPrefix(app.Status(), "click button Ctrl") {
		t.Errorf("Status() = %q", app.Status())
	}
	if app.Focused() != button {
		t.Errorf("Focused() = %v, want button", app.Focused())
	}
	if app.QuitRequested() {
		t.Fatal("quit requested too early")
	}

	button.DispatchEvent(dom.NewMouseEvent("auxclick", dom.MouseEventInit{EventInit: dom.EventInit{Bubbles: true}}))
	if !app.QuitRequested() {
		t.Error("quit builtin should request quit")
	}
}

func TestLuaModule(t *testing.T) {
	app := newApp(t)
	apply(t, app, treeTOML)

	if err := app.Scripts().DoString(`
assert(vbind.focused() == "editor")
assert(vbind.focus("button"))
assert(not vbind.focus("nowhere"))
vbind.status("from lua")
vbind.quit()
`); err != nil {
		t.Fatalf("DoString() failed: %v", err)
	}
	if app.Focused() != mustNode(t, app, "button") {
		t.Error("vbind.focus should move focus")
	}
	if app.Status() != "from lua" || !app.QuitRequested() {
		t.Errorf("Status() = %q, QuitRequested() = %v", app.Status(), app.QuitRequested())
	}
}

func TestScriptErrorsAreReported(t *testing.T) {
	app := newApp(t)
	apply(t, app, `
[[bindings]]
event = "click"
handler = "boom"
`)

	app.Root().DispatchEvent(click(key.ModNone))
	if !strings.HasPrefix(app.Status(), "boom: ") || !strings.Contains(app.Status(), "bad handler") {
		t.Errorf("Status() = %q", app.Status())
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

func TestNew_LoadsFiles(t *testing.T) {
	dir := t.TempDir()
	app, err := New(Options{
		ConfigPath: writeFile(t, dir, "bindings.toml", treeTOML),
		ScriptPath: writeFile(t, dir, "handlers.lua", testScript),
		Logger:     logging.Null(),
	})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer app.Shutdown()

	if app.Manager().Len() != 1 {
		t.Errorf("Manager().Len() = %d, want 1", app.Manager().Len())
	}
	mustNode(t, app, "editor").DispatchEvent(keydown("s", key.ModCtrl))
	if app.Status() != "saved s" {
		t.Errorf("Status() = %q", app.Status())
	}
}

func TestNew_Errors(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "handlers.lua", testScript)

	tests := []struct {
		name      string
		opts      Options
		component string
		want      error
	}{
		{
			name:      "missing config",
			opts:      Options{ConfigPath: filepath.Join(dir, "missing.toml")},
			component: "config",
			want:      config.ErrNotFound,
		},
		{
			name:      "bad script",
			opts:      Options{ScriptPath: writeFile(t, dir, "bad.lua", "function (")},
			component: "script",
		},
		{
			name: "unknown handler",
			opts: Options{
				ConfigPath: writeFile(t, dir, "unknown.toml", "[[bindings]]\nevent = \"click\"\nhandler = \"nothing\"\n"),
				ScriptPath: script,
			},
			component: "bindings",
			want:      ErrUnknownHandler,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Logger = logging.Null()
			app, err := New(tt.opts)
			if err == nil {
				app.Shutdown()
				t.Fatal("New() should fail")
			}
			var ie *InitError
			if !errors.As(err, &ie) || ie.Component != tt.component {
				t.Errorf("New() error = %v, want InitError for %s", err, tt.component)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("New() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNew_LogLevel(t *testing.T) {
	var buf strings.Builder
	app, err := New(Options{LogLevel: "debug", LogOutput: &buf})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer app.Shutdown()

	if err := app.Apply(parse(t, "[[bindings]]\nevent = \"click\"\nhandler = \"noop\"\n")); err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}
	if !strings.Contains(buf.String(), "bound") {
		t.Errorf("debug output missing bind message:\n%s", buf.String())
	}
}

func TestShutdown(t *testing.T) {
	app := newApp(t)
	apply(t, app, treeTOML)
	editor := mustNode(t, app, "editor")

	app.Shutdown()
	app.Shutdown()

	if editor.ListenerCount("keydown") != 0 {
		t.Error("Shutdown should unbind every handler")
	}
	if err := app.Apply(&config.Document{}); !errors.Is(err, ErrClosed) {
		t.Errorf("Apply() after Shutdown = %v, want ErrClosed", err)
	}
	if err := app.Run(context.Background(), tcell.NewSimulationScreen("")); !errors.Is(err, ErrClosed) {
		t.Errorf("Run() after Shutdown = %v, want ErrClosed", err)
	}
}

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	s.SetSize(80, 24)
	t.Cleanup(s.Fini)
	return s
}

// runUntilDone starts Run and calls poke every tick until it returns.
func runUntilDone(t *testing.T, app *Application, s tcell.SimulationScreen, poke func(i int)) error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background(), s) }()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	timeout := time.After(10 * time.Second)
	for i := 0; ; i++ {
		select {
		case err := <-done:
			return err
		case <-ticker.C:
			poke(i)
		case <-timeout:
			t.Fatal("Run did not return")
		}
	}
}

func TestRun_QuitBinding(t *testing.T) {
	app := newApp(t)
	apply(t, app, treeTOML+`
[[bindings]]
event = "keydown"
handler = "quit"
modifiers = ["q"]
`)
	s := newScreen(t)

	err := runUntilDone(t, app, s, func(int) {
		s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	})
	if err != nil {
		t.Errorf("Run() = %v, want nil", err)
	}
	if app.IsRunning() {
		t.Error("IsRunning() should be false after Run")
	}
	if app.Focused() != mustNode(t, app, "editor") {
		t.Errorf("Focused() = %v, want editor", app.Focused())
	}
}

func TestRun_QuitBeforeRun(t *testing.T) {
	app := newApp(t)
	app.Quit()
	if err := app.Run(context.Background(), newScreen(t)); err != nil {
		t.Errorf("Run() = %v, want nil", err)
	}
}

func TestRun_ContextCancel(t *testing.T) {
	app := newApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := app.Run(ctx, newScreen(t)); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
}

func TestRun_WatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bindings.toml", treeTOML)
	app, err := New(Options{
		ConfigPath: path,
		ScriptPath: writeFile(t, dir, "handlers.lua", testScript),
		Watch:      true,
		Debounce:   10 * time.Millisecond,
		Logger:     logging.Null(),
	})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer app.Shutdown()
	s := newScreen(t)

	updated := treeTOML + `
[[bindings]]
event = "keydown"
handler = "quit"
modifiers = ["q"]
`
	err = runUntilDone(t, app, s, func(i int) {
		if i%10 == 1 {
			writeFile(t, dir, "bindings.toml", updated)
		}
		s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	})
	if err != nil {
		t.Errorf("Run() = %v, want nil", err)
	}
	if app.Manager().Len() != 2 {
		t.Errorf("Manager().Len() = %d, want 2", app.Manager().Len())
	}
}

func TestReload_KeepsBindingsOnFailure(t *testing.T) {
	app := newApp(t)
	apply(t, app, treeTOML)

	app.reload(nil, errors.New("parse failed"))
	if !strings.Contains(app.Status(), "parse failed") {
		t.Errorf("Status() = %q", app.Status())
	}
	app.reload(&config.Document{Bindings: []config.BindingSpec{{Event: "click", Handler: "missing"}}}, nil)
	if app.Manager().Len() != 1 {
		t.Errorf("Manager().Len() = %d, want 1", app.Manager().Len())
	}

	app.reload(&config.Document{}, nil)
	if app.Manager().Len() != 0 || !strings.HasPrefix(app.Status(), "reloaded") {
		t.Errorf("Len() = %d, Status() = %q", app.Manager().Len(), app.Status())
	}
}
