package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.expected)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"WARNING", LevelWarn},
		{"error", LevelError},
		{"unknown", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLevel(%q) = %d, want %d", tt.input, got, tt.expected)
		}
	}
}

func newTestLogger(buf *bytes.Buffer, level Level) *Logger {
	l := New(Config{Level: level, Output: buf, Prefix: "test"})
	l.sink.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return l
}

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LevelDebug)

	l.WithFields(map[string]any{"node": "root", "event": "click"}).Info("bound %s", "invoker")

	want := "2024-01-02T03:04:05.000 [INFO] test: bound invoker {event=click, node=root}\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LevelWarn)

	l.Debug("debug")
	l.Info("info")
	if buf.Len() != 0 {
		t.Errorf("expected no output below warn, got %q", buf.String())
	}

	l.Warn("warn")
	l.Error("error")
	out := buf.String()
	if !strings.Contains(out, "[WARN]") || !strings.Contains(out, "[ERROR]") {
		t.Errorf("expected warn and error output, got %q", out)
	}
}

func TestLoggerDerivedSharesSink(t *testing.T) {
	var buf bytes.Buffer
	parent := newTestLogger(&buf, LevelInfo)
	child := parent.WithComponent("binding")

	parent.SetLevel(LevelError)
	child.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("child should follow parent level, got %q", buf.String())
	}
	if child.Enabled(LevelInfo) {
		t.Error("Enabled(LevelInfo) should be false after SetLevel(LevelError)")
	}
	if len(parent.fields) != 0 {
		t.Error("WithComponent must not modify the parent")
	}
}

func TestNullLogger(t *testing.T) {
	l := Null()
	if l.Enabled(LevelError) {
		t.Error("Null logger should not be enabled")
	}
	l.Error("ignored")
}
