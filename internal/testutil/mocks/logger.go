package mocks

import (
	"context"
	"sync"

	"github.com/mknopf/deskprep/internal/ports"
)

// LogEntry records one logged event.
type LogEntry struct {
	Level   ports.Level
	Message string
	Fields  []ports.Field
}

// Field returns the value of the named field, or nil.
func (e LogEntry) Field(key string) interface{} {
	for _, f := range e.Fields {
		if f.Key == key {
			return f.Value
		}
	}
	return nil
}

// Logger is a thread-safe recording test double for ports.Logger.
type Logger struct {
	mu      sync.Mutex
	entries []LogEntry
	base    []ports.Field
}

// NewLogger creates a new recording logger.
func NewLogger() *Logger {
	return &Logger{}
}

// Debug records a debug entry.
func (l *Logger) Debug(_ context.Context, msg string, fields ...ports.Field) {
	l.record(ports.LevelDebug, msg, fields)
}

// Info records an info entry.
func (l *Logger) Info(_ context.Context, msg string, fields ...ports.Field) {
	l.record(ports.LevelInfo, msg, fields)
}

// Success records a success entry.
func (l *Logger) Success(_ context.Context, msg string, fields ...ports.Field) {
	l.record(ports.LevelSuccess, msg, fields)
}

// Warning records a warning entry.
func (l *Logger) Warning(_ context.Context, msg string, fields ...ports.Field) {
	l.record(ports.LevelWarning, msg, fields)
}

// Error records an error entry.
func (l *Logger) Error(_ context.Context, msg string, fields ...ports.Field) {
	l.record(ports.LevelError, msg, fields)
}

// With returns the same recorder with extra base fields.
func (l *Logger) With(fields ...ports.Field) ports.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.base = append(l.base, fields...)
	return l
}

// Entries returns a copy of all recorded entries.
func (l *Logger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	entries := make([]LogEntry, len(l.entries))
	copy(entries, l.entries)
	return entries
}

// EntriesAt returns recorded entries with the given level.
func (l *Logger) EntriesAt(level ports.Level) []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []LogEntry
	for _, e := range l.entries {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

func (l *Logger) record(level ports.Level, msg string, fields []ports.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	all := make([]ports.Field, 0, len(l.base)+len(fields))
	all = append(all, l.base...)
	all = append(all, fields...)
	l.entries = append(l.entries, LogEntry{Level: level, Message: msg, Fields: all})
}

// Ensure Logger implements ports.Logger.
var _ ports.Logger = (*Logger)(nil)
