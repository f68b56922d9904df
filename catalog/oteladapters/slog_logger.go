// Package oteladapters provides OpenTelemetry-backed implementations of the
// Logger interfaces consumed by the store engines and the lending service,
// for plug-and-play observability with trace-correlated logs.
package oteladapters

import (
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"

	"github.com/libercore/lending-catalog-go/catalog/postgresengine"
	"github.com/libercore/lending-catalog-go/lending"
)

// SlogBridgeLogger adapts a slog.Logger to the engine and service Logger
// interfaces. Constructed through NewSlogBridgeLogger it emits through the
// OpenTelemetry slog bridge with automatic trace correlation.
type SlogBridgeLogger struct {
	logger *slog.Logger
}

// NewSlogBridgeLogger creates a logger using the OpenTelemetry slog bridge.
// It uses the global OpenTelemetry LoggerProvider.
func NewSlogBridgeLogger(name string) *SlogBridgeLogger {
	return &SlogBridgeLogger{logger: otelslog.NewLogger(name)}
}

// NewSlogBridgeLoggerWithHandler creates a logger from the provided
// slog.Handler as-is, without OpenTelemetry trace correlation.
func NewSlogBridgeLoggerWithHandler(handler slog.Handler) *SlogBridgeLogger {
	return &SlogBridgeLogger{logger: slog.New(handler)}
}

// Debug logs a debug message.
func (l *SlogBridgeLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

// Info logs an info message.
func (l *SlogBridgeLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

// Warn logs a warning message.
func (l *SlogBridgeLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

// Error logs an error message.
func (l *SlogBridgeLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

// Ensure SlogBridgeLogger implements the consumer interfaces.
var (
	_ postgresengine.Logger = (*SlogBridgeLogger)(nil)
	_ lending.Logger        = (*SlogBridgeLogger)(nil)
)
