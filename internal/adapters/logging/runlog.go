package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mknopf/deskprep/internal/ports"
)

// runLogTimestamp is the ISO-like timestamp prefix used for every entry.
const runLogTimestamp = "2006-01-02T15:04:05"

// RunLog is an append-only log file for one provisioning run.
// Every event becomes exactly one line: timestamp, level tag, message,
// then any structured fields as key=value pairs.
type RunLog struct {
	mu     sync.Mutex
	file   io.WriteCloser
	path   string
	fields []ports.Field
	now    func() time.Time
}

// NewRunLog creates a timestamped run-log file under dir.
func NewRunLog(dir string) (*RunLog, error) {
	name := fmt.Sprintf("deskprep-%s.log", time.Now().Format("20060102-150405"))
	path := filepath.Join(dir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log: %w", err)
	}

	return &RunLog{file: f, path: path, now: time.Now}, nil
}

// NewRunLogWriter creates a RunLog writing to an arbitrary writer.
// Used by tests to capture entries without touching the disk.
func NewRunLogWriter(w io.Writer) *RunLog {
	return &RunLog{file: nopCloser{w}, now: time.Now}
}

// Path returns the run-log file path, empty when writer-backed.
func (l *RunLog) Path() string {
	return l.path
}

// Close closes the underlying file.
func (l *RunLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}

// Debug logs a debug message.
func (l *RunLog) Debug(ctx context.Context, msg string, fields ...ports.Field) {
	l.write(ports.LevelDebug, msg, fields)
}

// Info logs an informational message.
func (l *RunLog) Info(ctx context.Context, msg string, fields ...ports.Field) {
	l.write(ports.LevelInfo, msg, fields)
}

// Success logs a completed step.
func (l *RunLog) Success(ctx context.Context, msg string, fields ...ports.Field) {
	l.write(ports.LevelSuccess, msg, fields)
}

// Warning logs a warning message.
func (l *RunLog) Warning(ctx context.Context, msg string, fields ...ports.Field) {
	l.write(ports.LevelWarning, msg, fields)
}

// Error logs an error message.
func (l *RunLog) Error(ctx context.Context, msg string, fields ...ports.Field) {
	l.write(ports.LevelError, msg, fields)
}

// With returns a new RunLog view sharing the same file with extra fields.
func (l *RunLog) With(fields ...ports.Field) ports.Logger {
	newFields := make([]ports.Field, len(l.fields)+len(fields))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], fields)

	return &runLogView{parent: l, fields: newFields}
}

func (l *RunLog) write(level ports.Level, msg string, fields []ports.Field) {
	l.writeWithBase(level, msg, l.fields, fields)
}

func (l *RunLog) writeWithBase(level ports.Level, msg string, base, extra []ports.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()

	line := fmt.Sprintf("%s [%s] %s%s",
		l.now().Format(runLogTimestamp), level.String(), msg, formatFields(base, extra))
	_, _ = fmt.Fprintln(l.file, line)
}

// runLogView is a field-scoped view onto a shared RunLog file.
type runLogView struct {
	parent *RunLog
	fields []ports.Field
}

func (v *runLogView) Debug(ctx context.Context, msg string, fields ...ports.Field) {
	v.parent.writeWithBase(ports.LevelDebug, msg, v.fields, fields)
}

func (v *runLogView) Info(ctx context.Context, msg string, fields ...ports.Field) {
	v.parent.writeWithBase(ports.LevelInfo, msg, v.fields, fields)
}

func (v *runLogView) Success(ctx context.Context, msg string, fields ...ports.Field) {
	v.parent.writeWithBase(ports.LevelSuccess, msg, v.fields, fields)
}

func (v *runLogView) Warning(ctx context.Context, msg string, fields ...ports.Field) {
	v.parent.writeWithBase(ports.LevelWarning, msg, v.fields, fields)
}

func (v *runLogView) Error(ctx context.Context, msg string, fields ...ports.Field) {
	v.parent.writeWithBase(ports.LevelError, msg, v.fields, fields)
}

func (v *runLogView) With(fields ...ports.Field) ports.Logger {
	newFields := make([]ports.Field, len(v.fields)+len(fields))
	copy(newFields, v.fields)
	copy(newFields[len(v.fields):], fields)
	return &runLogView{parent: v.parent, fields: newFields}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// Ensure both implement Logger.
var (
	_ ports.Logger = (*RunLog)(nil)
	_ ports.Logger = (*runLogView)(nil)
)
