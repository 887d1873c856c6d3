package config

import (
	"os"
	"strings"
)

// Environment variables read by vbind.
const (
	EnvConfig   = "VBIND_CONFIG"
	EnvLogLevel = "VBIND_LOG_LEVEL"
)

// PathFromEnv returns the configuration path from VBIND_CONFIG.
func PathFromEnv() (string, bool) {
	return lookup(EnvConfig)
}

// LogLevelFromEnv returns the log level name from VBIND_LOG_LEVEL.
func LogLevelFromEnv() (string, bool) {
	return lookup(EnvLogLevel)
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(name)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}
