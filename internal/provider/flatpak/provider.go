// Package flatpak provides the flatpak provider for remotes and
// application installs.
package flatpak

import (
	"github.com/mknopf/deskprep/internal/domain/step"
	"github.com/mknopf/deskprep/internal/ports"
)

// Provider compiles the flatpak profile section into executable steps.
type Provider struct {
	runner ports.CommandRunner
}

// NewProvider creates a new flatpak Provider.
func NewProvider(runner ports.CommandRunner) *Provider {
	return &Provider{runner: runner}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "flatpak"
}

// Compile transforms the flatpak section into executable steps.
// Remotes come first so app installs can resolve against them.
func (p *Provider) Compile(ctx step.CompileContext) ([]step.Step, error) {
	cfg := ctx.Profile().Flatpak

	steps := make([]step.Step, 0, len(cfg.Remotes)+len(cfg.Apps))

	for _, remote := range cfg.Remotes {
		steps = append(steps, NewRemoteStep(remote.Name, remote.URL, p.runner))
	}

	for _, app := range cfg.Apps {
		steps = append(steps, NewAppStep(app.ID, app.Remote, p.runner))
	}

	return steps, nil
}

// Ensure Provider implements step.Provider.
var _ step.Provider = (*Provider)(nil)
