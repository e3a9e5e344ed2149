// Package mocks provides test doubles for testing.
package mocks

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/mknopf/deskprep/internal/ports"
)

// CommandRunner is a thread-safe test double for ports.CommandRunner.
type CommandRunner struct {
	mu       sync.RWMutex
	results  map[string]ports.CommandResult
	errors   map[string]error
	binaries map[string]string
	calls    []ports.CommandCall
}

// NewCommandRunner creates a new CommandRunner mock.
func NewCommandRunner() *CommandRunner {
	return &CommandRunner{
		results:  make(map[string]ports.CommandResult),
		errors:   make(map[string]error),
		binaries: make(map[string]string),
		calls:    make([]ports.CommandCall, 0),
	}
}

// AddResult registers an expected command and its result.
func (m *CommandRunner) AddResult(command string, args []string, result ports.CommandResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[buildKey(command, args)] = result
}

// AddError registers an expected command that should return an error.
func (m *CommandRunner) AddError(command string, args []string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[buildKey(command, args)] = err
}

// AddBinary registers a binary as present on the mock PATH.
func (m *CommandRunner) AddBinary(name, path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.binaries[name] = path
}

// LookPath resolves a command against binaries registered with AddBinary.
func (m *CommandRunner) LookPath(command string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if path, ok := m.binaries[command]; ok {
		return path, nil
	}
	return "", fmt.Errorf("exec: %q: executable file not found in $PATH", command)
}

// Run executes a mock command.
func (m *CommandRunner) Run(ctx context.Context, command string, args ...string) (ports.CommandResult, error) {
	return m.RunStdin(ctx, nil, command, args...)
}

// RunStdin executes a mock command, recording any stdin content.
func (m *CommandRunner) RunStdin(_ context.Context, stdin io.Reader, command string, args ...string) (ports.CommandResult, error) {
	var stdinData string
	if stdin != nil {
		data, _ := io.ReadAll(stdin)
		stdinData = string(data)
	}

	m.mu.Lock()
	m.calls = append(m.calls, ports.CommandCall{
		Command: command,
		Args:    args,
		Stdin:   stdinData,
	})
	m.mu.Unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()

	key := buildKey(command, args)

	// Check for registered error first
	if err, ok := m.errors[key]; ok {
		return ports.CommandResult{}, err
	}

	if result, ok := m.results[key]; ok {
		return result, nil
	}

	return ports.CommandResult{}, fmt.Errorf("no mock result for command: %s %v", command, args)
}

// Calls returns all recorded command invocations.
func (m *CommandRunner) Calls() []ports.CommandCall {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Return a copy to prevent data races
	calls := make([]ports.CommandCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// CallsFor returns recorded invocations of one command, in order.
func (m *CommandRunner) CallsFor(command string) []ports.CommandCall {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var calls []ports.CommandCall
	for _, c := range m.calls {
		if c.Command == command {
			calls = append(calls, c)
		}
	}
	return calls
}

// Reset clears all registered results, errors, and recorded calls.
func (m *CommandRunner) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = make(map[string]ports.CommandResult)
	m.errors = make(map[string]error)
	m.binaries = make(map[string]string)
	m.calls = make([]ports.CommandCall, 0)
}

// buildKey creates a unique key for a command and its arguments.
func buildKey(command string, args []string) string {
	return command + ":" + strings.Join(args, ":")
}

// Ensure CommandRunner implements ports.CommandRunner.
var _ ports.CommandRunner = (*CommandRunner)(nil)
