package logger

import (
	"io"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

type Config struct {
	Level  string
	JSON   bool
	Output io.Writer
}

// New builds the process logger. Components derive prefixed children from it
// with WithPrefix.
func New(cfg Config) *charmlog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	level, err := charmlog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = charmlog.InfoLevel
	}

	opts := charmlog.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	}
	if cfg.JSON {
		opts.Formatter = charmlog.JSONFormatter
	}
	return charmlog.NewWithOptions(out, opts)
}

// Discard returns a logger that drops everything.
func Discard() *charmlog.Logger {
	return charmlog.New(io.Discard)
}
