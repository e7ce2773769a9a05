// Package log provides helpers for creating a configured slog.Logger.
//
// When a log file path is not provided, logs are written to stdout for
// non-error levels and to stderr for errors (so stderr can be used for
// error redirection while keeping normal logs on stdout).
package log

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
)

// LevelTrace defines a custom slog level below Debug for per-sample output.
const LevelTrace slog.Level = -8

func ParseLevel(s string) slog.Level {
	switch s {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "info", "":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Config selects level, format and destination of the logger.
type Config struct {
	Level      string `help:"Log level" enum:"trace,debug,info,warn,error" default:"info" env:"POLARSTICK_LOG_LEVEL"`
	Format     string `help:"Log record format" enum:"text,json" default:"text" env:"POLARSTICK_LOG_FORMAT"`
	File       string `help:"Also write logs to this file" env:"POLARSTICK_LOG_FILE"`
	SampleFile string `help:"Write one line per evaluated sample to this file" env:"POLARSTICK_LOG_SAMPLE_FILE"`
}

// fanout sends every record to each handler that accepts its level.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	return f.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (f fanout) WithGroup(name string) slog.Handler {
	return f.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (f fanout) each(fn func(slog.Handler) slog.Handler) fanout {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = fn(h)
	}
	return out
}

// below passes only records strictly below max to h.
type below struct {
	max slog.Level
	h   slog.Handler
}

func (b below) Enabled(ctx context.Context, level slog.Level) bool {
	return level < b.max && b.h.Enabled(ctx, level)
}

func (b below) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= b.max {
		return nil
	}
	return b.h.Handle(ctx, r)
}

func (b below) WithAttrs(attrs []slog.Attr) slog.Handler {
	return below{max: b.max, h: b.h.WithAttrs(attrs)}
}

func (b below) WithGroup(name string) slog.Handler {
	return below{max: b.max, h: b.h.WithGroup(name)}
}

func newHandler(format string, w io.Writer, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// NewLogger builds a logger writing to stdout/stderr split by level, plus an
// optional extra writer receiving every enabled record.
func NewLogger(cfg Config, stdout, stderr, extra io.Writer) *slog.Logger {
	level := ParseLevel(cfg.Level)
	handlers := fanout{
		below{max: slog.LevelError, h: newHandler(cfg.Format, stdout, level)},
		newHandler(cfg.Format, stderr, max(level, slog.LevelError)),
	}
	if extra != nil {
		handlers = append(handlers, newHandler(cfg.Format, extra, level))
	}
	return slog.New(handlers)
}

// SetupLogger builds the process logger from cfg, opening the log file if
// one is configured. The returned closers must be closed on exit.
func SetupLogger(cfg Config) (*slog.Logger, []io.Closer, error) {
	var closeFiles []io.Closer
	var extra io.Writer
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		closeFiles = append(closeFiles, f)
		extra = f
	}
	return NewLogger(cfg, os.Stdout, os.Stderr, extra), closeFiles, nil
}
