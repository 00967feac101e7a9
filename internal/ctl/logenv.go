package ctl

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// logger writes diagnostics to stderr; command output goes to stdout.
var logger = newLogger(os.Stderr, "warn")

func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true, PartsExclude: []string{zerolog.TimestampFieldName}}).Level(lvl)
}

// SetLogLevel sets the diagnostic log level: debug|info|warn|error.
func SetLogLevel(level string) { logger = newLogger(os.Stderr, level) }
