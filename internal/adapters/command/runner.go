// Package command provides command execution adapters.
package command

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"

	"github.com/mknopf/deskprep/internal/ports"
)

// RealRunner executes actual system commands.
type RealRunner struct{}

// NewRealRunner creates a new RealRunner.
func NewRealRunner() *RealRunner {
	return &RealRunner{}
}

// Run executes a command and returns the result.
func (r *RealRunner) Run(ctx context.Context, command string, args ...string) (ports.CommandResult, error) {
	return r.run(ctx, nil, command, args)
}

// RunStdin executes a command with the given reader as its standard input.
func (r *RealRunner) RunStdin(ctx context.Context, stdin io.Reader, command string, args ...string) (ports.CommandResult, error) {
	return r.run(ctx, stdin, command, args)
}

// LookPath resolves a command against the PATH.
func (r *RealRunner) LookPath(command string) (string, error) {
	return exec.LookPath(command)
}

func (r *RealRunner) run(ctx context.Context, stdin io.Reader, command string, args []string) (ports.CommandResult, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Stdin = stdin

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := ports.CommandResult{
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, err
	}

	return result, nil
}

// Ensure RealRunner implements ports.CommandRunner.
var _ ports.CommandRunner = (*RealRunner)(nil)
