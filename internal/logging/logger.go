// Package logging builds the console's slog logger and carries it through
// contexts.
package logging

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/goerr/v2"
)

type loggerKey struct{}

var defaultLogger atomic.Pointer[slog.Logger]

func init() {
	defaultLogger.Store(New(defaultLevel, os.Stderr))
}

const defaultLevel = "warn"

// ParseLevel converts a level name to slog.Level. Accepts "debug", "info",
// "warn", "warning", and "error", case-insensitive. The bool is false for
// any other name, in which case LevelWarn is returned.
func ParseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelWarn, false
	}
}

// New creates a logger writing to w at the named level. Unknown level
// names fall back to warn; callers validate user input with ParseLevel
// first. A nil writer means stderr; stdout is reserved for command output.
func New(level string, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	lvl, _ := ParseLevel(level)

	handler := clog.New(
		clog.WithWriter(w),
		clog.WithLevel(lvl),
		clog.WithTimeFmt("15:04:05"),
		clog.WithSource(false),
		clog.WithAttrHook(clog.GoerrHook),
	)

	return slog.New(handler)
}

// ErrorAttrs returns err's message and its goerr values as log
// arguments. Unlike logging err itself, no stack trace is printed.
func ErrorAttrs(err error) []any {
	attrs := []any{slog.String("error", err.Error())}
	values := goerr.Values(err)
	for _, k := range slices.Sorted(maps.Keys(values)) {
		attrs = append(attrs, slog.Any(k, values[k]))
	}
	return attrs
}

// Default returns the default logger.
func Default() *slog.Logger {
	return defaultLogger.Load()
}

// SetDefault replaces the logger returned by Default.
func SetDefault(logger *slog.Logger) {
	defaultLogger.Store(logger)
}

// With returns a copy of ctx carrying logger.
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// From returns the logger carried by ctx, or Default when there is none.
func From(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return Default()
}
