// Package system provides the provider for group membership and
// service enablement.
package system

import (
	"github.com/mknopf/deskprep/internal/domain/step"
	"github.com/mknopf/deskprep/internal/ports"
)

// Provider compiles the system profile section into executable steps.
type Provider struct {
	runner ports.CommandRunner
}

// NewProvider creates a new system Provider.
func NewProvider(runner ports.CommandRunner) *Provider {
	return &Provider{runner: runner}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "system"
}

// Compile transforms the system section into executable steps.
func (p *Provider) Compile(ctx step.CompileContext) ([]step.Step, error) {
	cfg := ctx.Profile().System
	user := ctx.Settings().User

	steps := make([]step.Step, 0, len(cfg.Groups)+len(cfg.Services))

	for _, group := range cfg.Groups {
		steps = append(steps, NewGroupStep(user, group, p.runner))
	}

	for _, service := range cfg.Services {
		steps = append(steps, NewServiceStep(service, p.runner))
	}

	return steps, nil
}

// Ensure Provider implements step.Provider.
var _ step.Provider = (*Provider)(nil)
