package ports_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mknopf/deskprep/internal/ports"
	"github.com/mknopf/deskprep/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "DEBUG", ports.LevelDebug.String())
	assert.Equal(t, "INFO", ports.LevelInfo.String())
	assert.Equal(t, "SUCCESS", ports.LevelSuccess.String())
	assert.Equal(t, "WARNING", ports.LevelWarning.String())
	assert.Equal(t, "ERROR", ports.LevelError.String())
	assert.Equal(t, "UNKNOWN", ports.Level(42).String())
}

func TestLoggerFromContext(t *testing.T) {
	t.Parallel()

	logger := mocks.NewLogger()
	ctx := ports.ContextWithLogger(context.Background(), logger)
	assert.Equal(t, ports.Logger(logger), ports.LoggerFromContext(ctx))
}

func TestLoggerFromContext_FallsBackToNop(t *testing.T) {
	t.Parallel()

	logger := ports.LoggerFromContext(context.Background())
	require.NotNil(t, logger)

	// Safe to use without a nil check.
	logger.Info(context.Background(), "discarded")
	logger.With(ports.F("k", "v")).Error(context.Background(), "discarded")
}

func TestCommandResult_Success(t *testing.T) {
	t.Parallel()

	assert.True(t, ports.CommandResult{ExitCode: 0}.Success())
	assert.False(t, ports.CommandResult{ExitCode: 1}.Success())
}

func TestExpandPath(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "profile.yaml"), ports.ExpandPath("~/profile.yaml"))
	assert.Equal(t, "/etc/profile.yaml", ports.ExpandPath("/etc/profile.yaml"))
	assert.Equal(t, "profile.yaml", ports.ExpandPath("profile.yaml"))
	assert.Equal(t, "~", ports.ExpandPath("~"))
}
