// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
	"io"
)

// CommandResult represents the result of executing a shell command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success returns true if the command exited with code 0.
func (r CommandResult) Success() bool {
	return r.ExitCode == 0
}

// CommandCall records a command invocation.
type CommandCall struct {
	Command string
	Args    []string
	Stdin   string
}

// CommandRunner executes external commands.
type CommandRunner interface {
	Run(ctx context.Context, command string, args ...string) (CommandResult, error)

	// RunStdin executes a command with the given reader wired to its
	// standard input. Used for steps that feed fetched content into an
	// interpreter.
	RunStdin(ctx context.Context, stdin io.Reader, command string, args ...string) (CommandResult, error)

	// LookPath reports where command resolves on the PATH. Used for
	// steps whose satisfied state is the presence of a binary.
	LookPath(command string) (string, error)
}
