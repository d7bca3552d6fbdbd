// Package log provides a structured logging interface for gapsafe solver
// operations.
//
// This package defines a minimal, slog-compatible logging interface that
// allows for flexible implementation switching while providing solver-specific
// structured logging capabilities. The interface is designed to integrate
// seamlessly with Go's standard log/slog package, and a zerolog-backed
// implementation is provided for production use.
//
// Key features:
//   - slog-compatible interface for future-proofing
//   - solver-specific structured attributes (penalties, duality gaps, active sets)
//   - Context-aware logging with field chaining
//   - Performance-optimized with lazy evaluation support
//   - Test-friendly with configurable output destinations
//
// Example usage:
//
//	logger := log.GetLogger().With(
//	    log.ModelNameKey, "LogisticLasso",
//	    log.EstimatorIDKey, "lasso-001",
//	)
//	logger.Info("Path solve started",
//	    log.OperationKey, log.OperationPath,
//	    log.SamplesKey, 1000,
//	    log.FeaturesKey, 500,
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// This interface provides the core logging methods with structured field
// support, allowing for rich contextual information to be included with log
// messages. It is implementation-agnostic, enabling easy switching between
// different logging backends while maintaining a consistent API.
//
// The interface supports method chaining through the With method, allowing
// for creation of contextual loggers with pre-populated fields.
type Logger interface {
	// Debug logs a debug-level message with optional structured fields.
	// Debug logs carry detailed diagnostic information, for example
	// per-penalty screening counts, and are usually disabled in production.
	//
	// Example:
	//
	//	logger.Debug("Screening pass complete",
	//	    log.LambdaIndexKey, 12,
	//	    log.ActiveFeaturesKey, 87,
	//	)
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional structured fields.
	// Info logs are used for general operational information about
	// the solve's execution flow.
	//
	// Example:
	//
	//	logger.Info("Path solve completed",
	//	    log.DurationMsKey, 5432,
	//	    log.NLambdasKey, 100,
	//	)
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional structured fields.
	// Warning logs indicate potentially problematic situations that do not
	// prevent the solve from continuing, such as a penalty that exhausted
	// its iteration budget.
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional structured fields.
	// If an error value is provided as a field, stack trace information may
	// be automatically included by the backing handler.
	//
	// Example:
	//
	//	logger.Error("Fit failed",
	//	    "error", err,
	//	    log.OperationKey, log.OperationFit,
	//	)
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	// This enables contextual loggers that automatically include common
	// fields in all subsequent log messages.
	//
	// Example:
	//
	//	pathLogger := logger.With(
	//	    log.ModelNameKey, "LogisticLasso",
	//	    log.NLambdasKey, 100,
	//	)
	//	pathLogger.Info("Starting path solve") // includes model info
	With(fields ...any) Logger

	// Enabled reports whether the logger emits log records at the given
	// level. Use it to avoid building expensive per-iteration diagnostics
	// that would be discarded.
	//
	// Example:
	//
	//	if logger.Enabled(ctx, LevelDebug) {
	//	    logger.Debug("Dual point", "theta_norm", floats.Norm(theta, 2))
	//	}
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
// This type allows for level-based filtering of log messages.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4 // Detailed diagnostic information
	LevelInfo  Level = 0  // General operational information
	LevelWarn  Level = 4  // Warning conditions
	LevelError Level = 8  // Error conditions
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LoggerProvider defines an interface for creating and configuring loggers.
// This interface allows for dependency injection and testing with different
// logger implementations.
type LoggerProvider interface {
	// GetLogger returns the default logger instance.
	GetLogger() Logger

	// GetLoggerWithName returns a logger with a specific name/component identifier.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum log level for all loggers created by this provider.
	SetLevel(level Level)
}
