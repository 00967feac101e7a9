// Package ctl implements classifyctl, a command-line client for classifyd.
package ctl

import (
	"os"
	"strings"
	"time"
)

// Config holds the global classifyctl settings.
type Config struct {
	Server  string
	Timeout time.Duration
	// Output is text or json.
	Output string
	LogLvl string
}

// DefaultConfig reads CLASSIFYD_URL, CLASSIFYCTL_TIMEOUT and
// CLASSIFYCTL_LOG_LEVEL, falling back to built-in defaults.
func DefaultConfig() Config {
	return Config{
		Server:  envStr("CLASSIFYD_URL", "http://localhost:8000"),
		Timeout: envDuration("CLASSIFYCTL_TIMEOUT", 30*time.Second),
		Output:  "text",
		LogLvl:  envStr("CLASSIFYCTL_LOG_LEVEL", "warn"),
	}
}

func envStr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
