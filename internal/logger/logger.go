// Package logger wraps zerolog.Logger with the constructors used by formcipher.
//
// Logger embeds zerolog.Logger, so Debug, Info, Warn and Error are available directly.
// Passphrases and plaintexts must never be attached to log events.
package logger

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Log output formats accepted by Open.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Logger is a thin wrapper around zerolog.Logger.
type Logger struct {
	zerolog.Logger
}

// New returns a human-readable logger writing to w at the named level
// (trace, debug, info, warn, error, disabled).
func New(w io.Writer, level string) (*Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", level, err)
	}

	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}

	return &Logger{zerolog.New(out).Level(lvl).With().Timestamp().Logger()}, nil
}

// NewJSON returns a logger writing one JSON object per event to w at the named level.
func NewJSON(w io.Writer, level string) (*Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", level, err)
	}

	return &Logger{zerolog.New(w).Level(lvl).With().Timestamp().Logger()}, nil
}

// Open returns a logger in the named format (console or json).
func Open(w io.Writer, level, format string) (*Logger, error) {
	switch format {
	case FormatConsole:
		return New(w, level)
	case FormatJSON:
		return NewJSON(w, level)
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// Nop returns a *Logger that discards all log output.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// Named returns a child logger that carries a "component" field.
func (l *Logger) Named(component string) *Logger {
	return &Logger{l.With().Str("component", component).Logger()}
}
