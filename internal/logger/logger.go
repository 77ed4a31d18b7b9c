// Package logger provides structured logging for the LaTeX studio backend.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var zlog = zerolog.New(os.Stdout).With().Timestamp().Str("service", "latex-studio").Logger()

// Field is a typed key/value pair attached to a log entry.
type Field struct {
	Key  string
	Str  string
	Num  int64
	Err  error
	kind byte
}

// String returns a string field.
func String(key, value string) Field {
	return Field{Key: key, Str: value, kind: 's'}
}

// Int returns an integer field.
func Int(key string, value int) Field {
	return Field{Key: key, Num: int64(value), kind: 'i'}
}

// Err returns an error field.
func Err(err error) Field {
	return Field{Key: "error", Err: err, kind: 'e'}
}

// Init configures the global logger. Level is one of debug, info, warn,
// error; pretty enables console output for development.
func Init(level string, pretty bool) {
	lvl := zerolog.InfoLevel
	switch strings.ToLower(level) {
	case "debug":
		lvl = zerolog.DebugLevel
	case "warn":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(lvl)

	var out io.Writer = os.Stdout
	if pretty {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	zlog = zerolog.New(out).With().Timestamp().Str("service", "latex-studio").Logger()
}

// Debug logs a debug message with optional fields.
func Debug(msg string, fields ...Field) {
	emit(zlog.Debug(), msg, fields)
}

// Info logs an info message with optional fields.
func Info(msg string, fields ...Field) {
	emit(zlog.Info(), msg, fields)
}

// Warn logs a warning message with optional fields.
func Warn(msg string, fields ...Field) {
	emit(zlog.Warn(), msg, fields)
}

// Error logs an error message with optional fields.
func Error(msg string, fields ...Field) {
	emit(zlog.Error(), msg, fields)
}

// Fatal logs a fatal message and exits.
func Fatal(msg string, fields ...Field) {
	emit(zlog.Fatal(), msg, fields)
}

func emit(ev *zerolog.Event, msg string, fields []Field) {
	for _, f := range fields {
		switch f.kind {
		case 's':
			ev = ev.Str(f.Key, f.Str)
		case 'i':
			ev = ev.Int64(f.Key, f.Num)
		case 'e':
			ev = ev.Err(f.Err)
		}
	}
	ev.Msg(msg)
}
