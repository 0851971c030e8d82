package config

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/go-pallets/log"
)

// LogEncoder defines a log encoder kind.
type LogEncoder = string

const (
	defaultLoggingLevel = zapcore.InfoLevel
	// ConsoleLogEncoder represents logging with plain text.
	ConsoleLogEncoder LogEncoder = log.ConsoleEncoder
	// JSONLogEncoder represents logging with JSON.
	JSONLogEncoder LogEncoder = log.JSONEncoder
)

// LoggerConfig holds the logging level for each module.
type LoggerConfig struct {
	Encoder               LogEncoder `mapstructure:"log-encoder"`
	AppLoggerLevel        string     `mapstructure:"app"`
	RuntimeLoggerLevel    string     `mapstructure:"runtime"`
	CheckpointLoggerLevel string     `mapstructure:"checkpoint"`
	MetricsLoggerLevel    string     `mapstructure:"metrics"`
}

// DefaultLoggingConfig logs every module at info level as plain text.
func DefaultLoggingConfig() LoggerConfig {
	return LoggerConfig{
		Encoder:               ConsoleLogEncoder,
		AppLoggerLevel:        defaultLoggingLevel.String(),
		RuntimeLoggerLevel:    defaultLoggingLevel.String(),
		CheckpointLoggerLevel: defaultLoggingLevel.String(),
		MetricsLoggerLevel:    defaultLoggingLevel.String(),
	}
}

// Validate checks that the encoder and every level can be parsed.
func (l *LoggerConfig) Validate() error {
	var errs []error
	if l.Encoder != ConsoleLogEncoder && l.Encoder != JSONLogEncoder {
		errs = append(errs, fmt.Errorf("unknown log encoder %q", l.Encoder))
	}
	for module, level := range map[string]string{
		"app":        l.AppLoggerLevel,
		"runtime":    l.RuntimeLoggerLevel,
		"checkpoint": l.CheckpointLoggerLevel,
		"metrics":    l.MetricsLoggerLevel,
	} {
		if level == "" {
			continue
		}
		if _, err := zap.ParseAtomicLevel(level); err != nil {
			errs = append(errs, fmt.Errorf("%s log level: %w", module, err))
		}
	}
	return errors.Join(errs...)
}
