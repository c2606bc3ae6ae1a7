// Package logging adapts structured loggers to the modals.Logger interface.
//
// Two backends are supported:
//   - go.uber.org/zap, used by modalctl and services that already carry a
//     *zap.Logger.
//   - log/slog, for hosts that standardise on the standard library handler.
//
// Usage:
//
//	zl, _ := logging.NewZap(logging.Config{Level: "debug"})
//	mgr := modals.New(modals.WithLogger(logging.Zap(zl)))
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	modals "github.com/goliatone/go-modals"
)

// Config holds zap construction settings.
type Config struct {
	// Level is one of debug, info, warn, error. Defaults to info.
	Level string
	// JSON selects the production encoder instead of the console encoder.
	JSON bool
}

// ParseLevel converts a textual level into a modals.Level.
func ParseLevel(value string) (modals.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return modals.LevelDebug, nil
	case "", "info":
		return modals.LevelInfo, nil
	case "warn", "warning":
		return modals.LevelWarn, nil
	case "error":
		return modals.LevelError, nil
	default:
		return modals.LevelInfo, fmt.Errorf("logging: unknown level %q", value)
	}
}

// NewZap builds a zap logger writing to stderr.
func NewZap(cfg Config) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	config := zap.NewDevelopmentConfig()
	if cfg.JSON {
		config = zap.NewProductionConfig()
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel(level))
	return config.Build()
}

// Zap returns a modals.Logger writing to logger. A nil logger yields a no-op.
func Zap(logger *zap.Logger) modals.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return zapLogger{logger: logger}
}

type zapLogger struct {
	logger *zap.Logger
}

func (l zapLogger) Log(event modals.LogEvent) {
	ce := l.logger.Check(zapLevel(event.Level), event.Message)
	if ce == nil {
		return
	}
	fields := make([]zap.Field, 0, len(event.Fields)+2)
	if event.ModalID != "" {
		fields = append(fields, zap.String("modal_id", event.ModalID))
	}
	if event.Err != nil {
		fields = append(fields, zap.Error(event.Err))
	}
	for _, key := range sortedKeys(event.Fields) {
		fields = append(fields, zap.Any(key, event.Fields[key]))
	}
	ce.Write(fields...)
}

func zapLevel(level modals.Level) zapcore.Level {
	switch level {
	case modals.LevelDebug:
		return zapcore.DebugLevel
	case modals.LevelWarn:
		return zapcore.WarnLevel
	case modals.LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Slog returns a modals.Logger writing to logger. A nil logger uses
// slog.Default().
func Slog(logger *slog.Logger) modals.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return slogLogger{logger: logger}
}

type slogLogger struct {
	logger *slog.Logger
}

func (l slogLogger) Log(event modals.LogEvent) {
	level := slogLevel(event.Level)
	ctx := context.Background()
	if !l.logger.Enabled(ctx, level) {
		return
	}
	attrs := make([]slog.Attr, 0, len(event.Fields)+2)
	if event.ModalID != "" {
		attrs = append(attrs, slog.String("modal_id", event.ModalID))
	}
	if event.Err != nil {
		attrs = append(attrs, slog.String("error", event.Err.Error()))
	}
	for _, key := range sortedKeys(event.Fields) {
		attrs = append(attrs, slog.Any(key, event.Fields[key]))
	}
	l.logger.LogAttrs(ctx, level, event.Message, attrs...)
}

func slogLevel(level modals.Level) slog.Level {
	switch level {
	case modals.LevelDebug:
		return slog.LevelDebug
	case modals.LevelWarn:
		return slog.LevelWarn
	case modals.LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func sortedKeys(fields map[string]any) []string {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
