// Package aptpkg provides the apt provider for package management on
// Debian and derivatives.
package aptpkg

import (
	"github.com/mknopf/deskprep/internal/domain/step"
	"github.com/mknopf/deskprep/internal/ports"
)

// Provider compiles the apt profile section into executable steps.
type Provider struct {
	runner ports.CommandRunner
}

// NewProvider creates a new apt Provider.
func NewProvider(runner ports.CommandRunner) *Provider {
	return &Provider{runner: runner}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "apt"
}

// Compile transforms the apt section into executable steps.
// Order: refresh first, then repository registrations, then packages.
func (p *Provider) Compile(ctx step.CompileContext) ([]step.Step, error) {
	cfg := ctx.Profile().Apt

	steps := make([]step.Step, 0, len(cfg.Repos)+len(cfg.Packages)+1)

	if cfg.Upgrade {
		steps = append(steps, NewRefreshStep(p.runner))
	}

	for _, repo := range cfg.Repos {
		steps = append(steps, NewRepoStep(repo, p.runner))
	}

	for _, pkg := range cfg.Packages {
		steps = append(steps, NewPackageStep(pkg, p.runner))
	}

	return steps, nil
}

// Ensure Provider implements step.Provider.
var _ step.Provider = (*Provider)(nil)
