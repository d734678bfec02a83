// Package logging provides structured logging for the gateway. It implements
// a centralized strategy with configurable levels, JSON or text output, and
// automatic redaction of credential-bearing fields.
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Config represents logging configuration.
type Config struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
	Output string `yaml:"output"` // "stdout", "stderr", or file path
}

// DefaultConfig returns a sensible default logging configuration.
func DefaultConfig() Config {
	return Config{Level: "info", Format: "text", Output: "stdout"}
}

// Logger provides structured logging with component context.
type Logger struct {
	logger    *slog.Logger
	component string
}

// NewLogger creates a new logger with the specified configuration.
func NewLogger(config Config) (*Logger, error) {
	var output *os.File
	switch config.Output {
	case "stdout", "":
		output = os.Stdout
	case "stderr":
		output = os.Stderr
	default:
		file, err := os.OpenFile(config.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", config.Output, err)
		}
		output = file
	}

	opts := &slog.HandlerOptions{
		Level: parseLevel(config.Level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Session credentials must never reach the log stream.
			key := strings.ToLower(a.Key)
			if key == "token" || key == "cookie" || strings.Contains(key, "password") {
				return slog.String(a.Key, "[REDACTED]")
			}
			return a
		},
	}

	var handler slog.Handler
	switch config.Format {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = slog.NewTextHandler(output, opts)
	}

	return &Logger{logger: slog.New(handler)}, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithComponent creates a new logger scoped to a specific component.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		logger:    l.logger.With(slog.String("component", component)),
		component: component,
	}
}

// WithField adds a field to the logger context.
func (l *Logger) WithField(key string, value any) *Logger {
	return &Logger{
		logger:    l.logger.With(slog.Any(key, value)),
		component: l.component,
	}
}

// Debug logs a debug level message.
func (l *Logger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

// Info logs an info level message.
func (l *Logger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

// Warn logs a warning level message.
func (l *Logger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

// Error logs an error level message.
func (l *Logger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

// Global logger instance.
var globalLogger *Logger

// InitGlobalLogger initializes the global logger with the specified
// configuration.
func InitGlobalLogger(config Config) error {
	logger, err := NewLogger(config)
	if err != nil {
		return fmt.Errorf("failed to initialize global logger: %w", err)
	}
	globalLogger = logger
	return nil
}

// GetGlobalLogger returns the global logger instance, falling back to the
// default configuration if it was never initialized.
func GetGlobalLogger() *Logger {
	if globalLogger == nil {
		globalLogger, _ = NewLogger(DefaultConfig())
	}
	return globalLogger
}

// Component-specific logger creators.

func GetClientLogger() *Logger {
	return GetGlobalLogger().WithComponent("client")
}

func GetServerLogger() *Logger {
	return GetGlobalLogger().WithComponent("server")
}

func GetRecoveryLogger() *Logger {
	return GetGlobalLogger().WithComponent("recovery")
}
