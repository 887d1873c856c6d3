// Package main is the entry point for vbind.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/vbind/internal/app"
	"github.com/dshills/vbind/internal/config"
	"github.com/gdamore/tcell/v2"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, code, done := parseFlags(os.Args[1:])
	if done {
		return code
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize screen: %v\n", err)
		return 1
	}
	defer screen.Fini()
	screen.EnableMouse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx, screen); err != nil && !errors.Is(err, context.Canceled) {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// parseFlags parses args into application options. done reports that the
// process should exit with code without running.
func parseFlags(args []string) (opts app.Options, code int, done bool) {
	fs := flag.NewFlagSet("vbind", flag.ContinueOnError)
	var showVersion bool

	fs.StringVar(&opts.ConfigPath, "config", "", "Path to the binding document (TOML or YAML)")
	fs.StringVar(&opts.ConfigPath, "c", "", "Path to the binding document (shorthand)")
	fs.StringVar(&opts.ScriptPath, "script", "", "Path to a Lua file defining handlers")
	fs.StringVar(&opts.ScriptPath, "s", "", "Path to a Lua file defining handlers (shorthand)")
	fs.BoolVar(&opts.Watch, "watch", false, "Reapply the binding document when it changes")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&showVersion, "version", false, "Show version information")
	fs.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "vbind - declarative event bindings for the terminal\n\n")
		fmt.Fprintf(fs.Output(), "Usage: vbind [options]\n\n")
		fmt.Fprintf(fs.Output(), "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(fs.Output(), "\nEnvironment:\n")
		fmt.Fprintf(fs.Output(), "  %s    default for -config\n", config.EnvConfig)
		fmt.Fprintf(fs.Output(), "  %s default for -log-level\n", config.EnvLogLevel)
		fmt.Fprintf(fs.Output(), "\nExamples:\n")
		fmt.Fprintf(fs.Output(), "  vbind -config bindings.toml -script handlers.lua\n")
		fmt.Fprintf(fs.Output(), "  vbind -c bindings.yaml -watch\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, 0, true
		}
		return opts, 2, true
	}

	if showVersion {
		fmt.Printf("vbind %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		return opts, 0, true
	}

	if opts.ConfigPath == "" {
		opts.ConfigPath, _ = config.PathFromEnv()
	}
	if opts.LogLevel == "" {
		if level, ok := config.LogLevelFromEnv(); ok {
			opts.LogLevel = level
		} else {
			opts.LogLevel = "info"
		}
	}

	switch opts.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		return opts, 1, true
	}
	return opts, 0, false
}
