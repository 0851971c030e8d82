// Package log builds the zap loggers used across the runtime and provides field
// helpers for the runtime types.
package log

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// ConsoleEncoder writes human readable lines.
	ConsoleEncoder = "console"
	// JSONEncoder writes one JSON object per line.
	JSONEncoder = "json"
)

// where logs go by default.
var logWriter io.Writer = os.Stdout

// NewWithLevel creates a logger with a fixed level and with a set of (optional) hooks.
func NewWithLevel(module string,
	level zap.AtomicLevel,
	encoder zapcore.Encoder,
	hooks ...func(zapcore.Entry) error,
) *zap.Logger {
	consoleSyncer := zapcore.AddSync(logWriter)
	core := zapcore.NewCore(encoder, consoleSyncer, level)
	return zap.New(zapcore.RegisterHooks(core, hooks...)).Named(module)
}

// NewEncoder returns the zap encoder for the encoder name from the config.
func NewEncoder(name string) (zapcore.Encoder, error) {
	switch name {
	case ConsoleEncoder, "":
		return zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), nil
	case JSONEncoder:
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), nil
	}
	return nil, fmt.Errorf("unknown log encoder %q", name)
}

// New creates the process logger from textual level and encoder names.
func New(module, level, encoder string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}
	enc, err := NewEncoder(encoder)
	if err != nil {
		return nil, err
	}
	return NewWithLevel(module, lvl, enc), nil
}

// Named returns a child of the logger for a module whose level may differ from
// the parent. An empty level keeps the parent level.
func Named(logger *zap.Logger, module, level string) (*zap.Logger, error) {
	logger = logger.Named(module)
	if level == "" {
		return logger, nil
	}
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse %s log level %q: %w", module, level, err)
	}
	return logger.WithOptions(zap.IncreaseLevel(lvl)), nil
}
