// Package logger wires the process-wide structured logger and the context
// helpers used to correlate per-conversation log lines across layers.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	initOnce sync.Once
	levelVar slog.LevelVar

	// L is the base logger. It defaults to a text handler on stdout until
	// Init replaces it with the configured one.
	L *slog.Logger

	// Forms logs form engine events.
	Forms *slog.Logger
	// Store logs conversation store events.
	Store *slog.Logger
	// TG logs Telegram transport events.
	TG *slog.Logger
)

func init() {
	rewire(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: &levelVar})))
}

// Options configure the global logger.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string
	// Format is "text" or "json". Empty means text.
	Format string
	// Output overrides the destination, stdout when nil.
	Output io.Writer
}

// Init configures the global structured logger. It may be called only once;
// later calls are no-ops.
func Init(opts Options) error {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return err
	}
	handler, err := buildHandler(opts)
	if err != nil {
		return err
	}
	initOnce.Do(func() {
		levelVar.Set(level)
		logger := slog.New(handler)
		slog.SetDefault(logger)
		rewire(logger)
	})
	return nil
}

// Component returns a logger tagged with the given component name.
func Component(name string) *slog.Logger {
	return L.With("component", name)
}

// SetLevel adjusts the level at runtime.
func SetLevel(level string) error {
	parsed, err := parseLevel(level)
	if err != nil {
		return err
	}
	levelVar.Set(parsed)
	return nil
}

func rewire(base *slog.Logger) {
	L = base
	Forms = base.With("component", "forms")
	Store = base.With("component", "store")
	TG = base.With("component", "tg")
}

func buildHandler(opts Options) (slog.Handler, error) {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	hopts := &slog.HandlerOptions{Level: &levelVar}
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "text":
		return slog.NewTextHandler(out, hopts), nil
	case "json":
		return slog.NewJSONHandler(out, hopts), nil
	default:
		return nil, fmt.Errorf("logger: invalid format %q; allowed: text, json", opts.Format)
	}
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("logger: invalid level %q; allowed: debug, info, warn, error", level)
	}
}
