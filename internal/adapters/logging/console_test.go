package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/mknopf/deskprep/internal/adapters/logging"
	"github.com/mknopf/deskprep/internal/ports"
	"github.com/mknopf/deskprep/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewConsoleLogger(
		logging.WithOutput(&buf),
		logging.WithLevel(ports.LevelWarning),
	)

	ctx := context.Background()
	logger.Debug(ctx, "debug message")
	logger.Info(ctx, "info message")
	logger.Warning(ctx, "warning message")
	logger.Error(ctx, "error message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "[WARNING] warning message")
	assert.Contains(t, out, "[ERROR] error message")
}

func TestConsoleLogger_FieldsAndWith(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewConsoleLogger(logging.WithOutput(&buf))

	scoped := logger.With(ports.F("step", "apt:install:git"))
	scoped.Info(context.Background(), "installing", ports.F("attempt", 1))

	assert.Contains(t, buf.String(), "[INFO] installing step=apt:install:git attempt=1")
}

func TestTee_ForwardsToAllLoggers(t *testing.T) {
	t.Parallel()

	first := mocks.NewLogger()
	second := mocks.NewLogger()
	tee := logging.NewTee(first, second)

	tee.Error(context.Background(), "download failed", ports.F("step", "installer:script:brave"))

	for _, logger := range []*mocks.Logger{first, second} {
		entries := logger.EntriesAt(ports.LevelError)
		require.Len(t, entries, 1)
		assert.Equal(t, "download failed", entries[0].Message)
		assert.Equal(t, "installer:script:brave", entries[0].Field("step"))
	}
}

func TestTee_WithScopesAllMembers(t *testing.T) {
	t.Parallel()

	first := mocks.NewLogger()
	second := mocks.NewLogger()

	scoped := logging.NewTee(first, second).With(ports.F("run", "abc123"))
	scoped.Info(context.Background(), "run started")

	for _, logger := range []*mocks.Logger{first, second} {
		entries := logger.EntriesAt(ports.LevelInfo)
		require.Len(t, entries, 1)
		assert.Equal(t, "abc123", entries[0].Field("run"))
	}
}
