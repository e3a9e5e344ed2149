package command_test

import (
	"context"
	"strings"
	"testing"

	"github.com/mknopf/deskprep/internal/adapters/command"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealRunner_Run(t *testing.T) {
	t.Parallel()

	runner := command.NewRealRunner()
	result, err := runner.Run(context.Background(), "echo", "hello")
	require.NoError(t, err)

	assert.True(t, result.Success())
	assert.Equal(t, "hello\n", result.Stdout)
}

func TestRealRunner_NonZeroExitIsNotAnError(t *testing.T) {
	t.Parallel()

	runner := command.NewRealRunner()
	result, err := runner.Run(context.Background(), "sh", "-c", "echo oops >&2; exit 3")
	require.NoError(t, err)

	assert.False(t, result.Success())
	assert.Equal(t, 3, result.ExitCode)
	assert.Equal(t, "oops\n", result.Stderr)
}

func TestRealRunner_MissingBinary(t *testing.T) {
	t.Parallel()

	runner := command.NewRealRunner()
	_, err := runner.Run(context.Background(), "definitely-not-a-binary-xyz")
	require.Error(t, err)
}

func TestRealRunner_RunStdin(t *testing.T) {
	t.Parallel()

	runner := command.NewRealRunner()
	result, err := runner.RunStdin(context.Background(), strings.NewReader("echo from-stdin\n"), "sh")
	require.NoError(t, err)

	assert.True(t, result.Success())
	assert.Equal(t, "from-stdin\n", result.Stdout)
}

func TestRealRunner_LookPath(t *testing.T) {
	t.Parallel()

	runner := command.NewRealRunner()

	path, err := runner.LookPath("sh")
	require.NoError(t, err)
	assert.NotEmpty(t, path)

	_, err = runner.LookPath("definitely-not-a-binary-xyz")
	require.Error(t, err)
}

func TestRealRunner_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := command.NewRealRunner()
	_, err := runner.Run(ctx, "sleep", "10")
	require.Error(t, err)
}
