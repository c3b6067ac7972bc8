// Copyright 2025 The go-zeromq Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lcm

import (
	"os"

	"github.com/rs/zerolog"
)

// LogLevel represents different logging levels
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
	LogLevelTrace
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case LogLevelError:
		return "ERROR"
	case LogLevelWarn:
		return "WARN"
	case LogLevelInfo:
		return "INFO"
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelTrace:
		return "TRACE"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) zerolog() zerolog.Level {
	switch l {
	case LogLevelError:
		return zerolog.ErrorLevel
	case LogLevelWarn:
		return zerolog.WarnLevel
	case LogLevelInfo:
		return zerolog.InfoLevel
	case LogLevelDebug:
		return zerolog.DebugLevel
	case LogLevelTrace:
		return zerolog.TraceLevel
	default:
		return zerolog.InfoLevel
	}
}

// Logger provides structured logging with levels, backed by zerolog
// rather than the standard log package.
type Logger struct {
	zl zerolog.Logger
}

// NewLogger creates a new Logger with the specified level, writing
// human-readable console output to stderr.
func NewLogger(level LogLevel) *Logger {
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	zl := zerolog.New(w).Level(level.zerolog()).With().Timestamp().Str("component", "lcm").Logger()
	return &Logger{zl: zl}
}

// NewJSONLogger creates a new Logger with the specified level, writing
// structured JSON lines suited to production log aggregation.
func NewJSONLogger(level LogLevel) *Logger {
	zl := zerolog.New(os.Stderr).Level(level.zerolog()).With().Timestamp().Str("component", "lcm").Logger()
	return &Logger{zl: zl}
}

// NewLoggerFrom wraps an already-configured zerolog.Logger, letting a
// host application share its own logger instance with the client.
func NewLoggerFrom(zl zerolog.Logger) *Logger {
	return &Logger{zl: zl}
}

// SetLevel sets the minimum logging level
func (l *Logger) SetLevel(level LogLevel) {
	l.zl = l.zl.Level(level.zerolog())
}

// GetLevel returns the current logging level
func (l *Logger) GetLevel() LogLevel {
	switch l.zl.GetLevel() {
	case zerolog.ErrorLevel:
		return LogLevelError
	case zerolog.WarnLevel:
		return LogLevelWarn
	case zerolog.DebugLevel:
		return LogLevelDebug
	case zerolog.TraceLevel:
		return LogLevelTrace
	default:
		return LogLevelInfo
	}
}

// IsEnabled checks if a log level is enabled
func (l *Logger) IsEnabled(level LogLevel) bool {
	return l.zl.GetLevel() <= level.zerolog()
}

// Error logs at error level (always shown unless disabled entirely)
func (l *Logger) Error(format string, args ...interface{}) {
	l.zl.Error().Msgf(format, args...)
}

// Warn logs at warning level
func (l *Logger) Warn(format string, args ...interface{}) {
	l.zl.Warn().Msgf(format, args...)
}

// Info logs at info level
func (l *Logger) Info(format string, args ...interface{}) {
	l.zl.Info().Msgf(format, args...)
}

// Debug logs at debug level
func (l *Logger) Debug(format string, args ...interface{}) {
	l.zl.Debug().Msgf(format, args...)
}

// Trace logs at trace level (most verbose)
func (l *Logger) Trace(format string, args ...interface{}) {
	l.zl.Trace().Msgf(format, args...)
}

// Default loggers for different levels
var (
	// DevNullLogger discards all output.
	DevNullLogger = NewLoggerFrom(zerolog.Nop())

	// DefaultLogger logs at info level.
	DefaultLogger = NewLogger(LogLevelInfo)

	// ErrorLogger logs errors only, for production use.
	ErrorLogger = NewLogger(LogLevelError)

	// DebugLogger logs at debug level, for development.
	DebugLogger = NewLogger(LogLevelDebug)

	// TraceLogger logs at trace level, for detailed debugging.
	TraceLogger = NewLogger(LogLevelTrace)
)
