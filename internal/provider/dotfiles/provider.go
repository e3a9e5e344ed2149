// Package dotfiles provides the provider for syncing configuration
// directories from personal git repositories. Each mapping is
// independent and best-effort: one failed sync never aborts the run or
// the remaining mappings.
package dotfiles

import (
	"path/filepath"

	"github.com/mknopf/deskprep/internal/domain/step"
	"github.com/mknopf/deskprep/internal/ports"
)

// Provider compiles the dotfiles profile section into executable steps.
type Provider struct {
	runner    ports.CommandRunner
	fs        ports.FileSystem
	cloneRoot string
}

// NewProvider creates a new dotfiles Provider. Clones land in a scratch
// directory under the config root and are discarded after relocation.
func NewProvider(runner ports.CommandRunner, fs ports.FileSystem) *Provider {
	return &Provider{
		runner: runner,
		fs:     fs,
	}
}

// WithCloneRoot overrides the scratch directory, used by tests.
func (p *Provider) WithCloneRoot(dir string) *Provider {
	return &Provider{
		runner:    p.runner,
		fs:        p.fs,
		cloneRoot: dir,
	}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "dotfiles"
}

// Compile transforms the dotfiles section into executable steps.
func (p *Provider) Compile(ctx step.CompileContext) ([]step.Step, error) {
	mappings := ctx.Profile().Dotfiles
	configRoot := ctx.Settings().ConfigRoot

	// Clones must land on the same filesystem as the config root so the
	// final rename works; the system temp dir is often a tmpfs on a
	// different device.
	cloneRoot := p.cloneRoot
	if cloneRoot == "" {
		cloneRoot = filepath.Join(configRoot, ".deskprep-tmp")
	}

	steps := make([]step.Step, 0, len(mappings))
	for _, m := range mappings {
		steps = append(steps, NewMappingStep(m, configRoot, cloneRoot, p.runner, p.fs))
	}

	return steps, nil
}

// Ensure Provider implements step.Provider.
var _ step.Provider = (*Provider)(nil)
