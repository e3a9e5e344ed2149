package ports

import "context"

// Level represents the severity of a log message.
type Level int

const (
	// LevelDebug is for verbose debugging information.
	LevelDebug Level = iota
	// LevelInfo is for general operational information.
	LevelInfo
	// LevelSuccess marks a step that applied cleanly.
	LevelSuccess
	// LevelWarning is for potentially problematic situations.
	LevelWarning
	// LevelError is for error conditions.
	LevelError
)

// String returns the log tag for the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelSuccess:
		return "SUCCESS"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Field represents a structured logging field.
type Field struct {
	Key   string
	Value interface{}
}

// F creates a new Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logger defines the interface for run logging.
// Implementations log to the console, the run-log file, or both.
type Logger interface {
	// Debug logs a debug message with optional structured fields.
	Debug(ctx context.Context, msg string, fields ...Field)

	// Info logs an informational message with optional structured fields.
	Info(ctx context.Context, msg string, fields ...Field)

	// Success logs a completed step with optional structured fields.
	Success(ctx context.Context, msg string, fields ...Field)

	// Warning logs a warning message with optional structured fields.
	Warning(ctx context.Context, msg string, fields ...Field)

	// Error logs an error message with optional structured fields.
	Error(ctx context.Context, msg string, fields ...Field)

	// With returns a new Logger with the given fields added to every entry.
	With(fields ...Field) Logger
}

// LoggerFromContext retrieves a Logger from the context.
// Returns a no-op logger if none is present, so callers never need a
// nil check.
func LoggerFromContext(ctx context.Context) Logger {
	if logger, ok := ctx.Value(loggerKey{}).(Logger); ok {
		return logger
	}
	return NopLogger{}
}

// ContextWithLogger returns a new context with the logger attached.
func ContextWithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// loggerKey is the context key for Logger.
type loggerKey struct{}

// NopLogger discards every message. It is the fallback when no logger
// has been attached to the context.
type NopLogger struct{}

// Debug discards the message.
func (NopLogger) Debug(_ context.Context, _ string, _ ...Field) {}

// Info discards the message.
func (NopLogger) Info(_ context.Context, _ string, _ ...Field) {}

// Success discards the message.
func (NopLogger) Success(_ context.Context, _ string, _ ...Field) {}

// Warning discards the message.
func (NopLogger) Warning(_ context.Context, _ string, _ ...Field) {}

// Error discards the message.
func (NopLogger) Error(_ context.Context, _ string, _ ...Field) {}

// With returns the logger unchanged.
func (l NopLogger) With(_ ...Field) Logger { return l }

// Ensure NopLogger implements Logger.
var _ Logger = NopLogger{}
