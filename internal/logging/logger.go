// Package logging wires log/slog to a size-rotated file under the config
// directory. The picker owns the terminal, so nothing is written to stderr
// unless debug mode is on and no directory was given.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Component names used with ForComponent.
const (
	CompIndex     = "index"
	CompHistory   = "history"
	CompSearch    = "search"
	CompLauncher  = "launcher"
	CompConfig    = "config"
	CompUI        = "ui"
	CompPlacement = "placement"
)

// FileName is the log file created inside Config.Dir.
const FileName = "rlaunch.log"

// Config holds logging configuration.
type Config struct {
	// Dir is the directory for the log file; empty disables file output.
	Dir string

	// Level is the minimum level: "debug", "info", "warn" or "error".
	Level string

	// Format is "json" (default) or "text".
	Format string

	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool

	// Debug forces the debug level and, without Dir, logs to stderr.
	Debug bool
}

var (
	globalMu     sync.RWMutex
	globalLogger *slog.Logger
	rotator      *lumberjack.Logger
)

// Init installs the global logger. It may be called again to reconfigure;
// the previous rotating file is closed.
func Init(cfg Config) {
	globalMu.Lock()
	defer globalMu.Unlock()

	closeRotator()

	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 5
	}
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = 3
	}
	if cfg.MaxAgeDays <= 0 {
		cfg.MaxAgeDays = 14
	}

	level := ParseLevel(cfg.Level)
	if cfg.Debug {
		level = slog.LevelDebug
	}

	var w io.Writer
	switch {
	case cfg.Dir != "":
		rotator = &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Dir, FileName),
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		w = rotator
	case cfg.Debug:
		w = os.Stderr
	default:
		globalLogger = discardLogger()
		return
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	globalLogger = slog.New(handler)
}

// ParseLevel maps a config level name to a slog level, defaulting to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Logger returns the global logger. Safe to call before Init.
func Logger() *slog.Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalLogger == nil {
		return discardLogger()
	}
	return globalLogger
}

// ForComponent returns a logger tagged with component. It resolves the global
// handler on every record, so package-level loggers created before Init
// still reach the configured sink.
func ForComponent(name string) *slog.Logger {
	return slog.New(&dynamicHandler{component: name})
}

// Shutdown closes the log file and reverts to discarding.
func Shutdown() {
	globalMu.Lock()
	defer globalMu.Unlock()
	closeRotator()
	globalLogger = nil
}

func closeRotator() {
	if rotator != nil {
		_ = rotator.Close()
		rotator = nil
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type dynamicHandler struct {
	component string
	attrs     []slog.Attr
	groups    []string
}

func (h *dynamicHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return Logger().Handler().Enabled(ctx, level)
}

func (h *dynamicHandler) Handle(ctx context.Context, r slog.Record) error {
	handler := Logger().Handler().WithAttrs([]slog.Attr{slog.String("component", h.component)})
	if len(h.attrs) > 0 {
		handler = handler.WithAttrs(h.attrs)
	}
	for _, g := range h.groups {
		handler = handler.WithGroup(g)
	}
	return handler.Handle(ctx, r)
}

func (h *dynamicHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := &dynamicHandler{component: h.component, groups: h.groups}
	next.attrs = append(append(make([]slog.Attr, 0, len(h.attrs)+len(attrs)), h.attrs...), attrs...)
	return next
}

func (h *dynamicHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := &dynamicHandler{component: h.component, attrs: h.attrs}
	next.groups = append(append(make([]string, 0, len(h.groups)+1), h.groups...), name)
	return next
}
