package logging

import (
	"context"

	"github.com/mknopf/deskprep/internal/ports"
)

// Tee fans every log entry out to multiple loggers, typically the
// console and the run-log file.
type Tee struct {
	loggers []ports.Logger
}

// NewTee creates a logger that forwards to all given loggers.
func NewTee(loggers ...ports.Logger) *Tee {
	return &Tee{loggers: loggers}
}

// Debug forwards a debug message.
func (t *Tee) Debug(ctx context.Context, msg string, fields ...ports.Field) {
	for _, l := range t.loggers {
		l.Debug(ctx, msg, fields...)
	}
}

// Info forwards an informational message.
func (t *Tee) Info(ctx context.Context, msg string, fields ...ports.Field) {
	for _, l := range t.loggers {
		l.Info(ctx, msg, fields...)
	}
}

// Success forwards a success message.
func (t *Tee) Success(ctx context.Context, msg string, fields ...ports.Field) {
	for _, l := range t.loggers {
		l.Success(ctx, msg, fields...)
	}
}

// Warning forwards a warning message.
func (t *Tee) Warning(ctx context.Context, msg string, fields ...ports.Field) {
	for _, l := range t.loggers {
		l.Warning(ctx, msg, fields...)
	}
}

// Error forwards an error message.
func (t *Tee) Error(ctx context.Context, msg string, fields ...ports.Field) {
	for _, l := range t.loggers {
		l.Error(ctx, msg, fields...)
	}
}

// With returns a new Tee with the fields added to every member.
func (t *Tee) With(fields ...ports.Field) ports.Logger {
	loggers := make([]ports.Logger, len(t.loggers))
	for i, l := range t.loggers {
		loggers[i] = l.With(fields...)
	}
	return &Tee{loggers: loggers}
}

// Ensure Tee implements Logger.
var _ ports.Logger = (*Tee)(nil)
