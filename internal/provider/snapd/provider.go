// Package snapd provides the snap provider for the AppList backend.
package snapd

import (
	"github.com/mknopf/deskprep/internal/domain/step"
	"github.com/mknopf/deskprep/internal/ports"
)

// Provider compiles the snap profile section into executable steps.
type Provider struct {
	runner ports.CommandRunner
}

// NewProvider creates a new snap Provider.
func NewProvider(runner ports.CommandRunner) *Provider {
	return &Provider{runner: runner}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "snap"
}

// Compile transforms the snap AppList into executable steps,
// preserving the declared order.
func (p *Provider) Compile(ctx step.CompileContext) ([]step.Step, error) {
	cfg := ctx.Profile().Snap

	steps := make([]step.Step, 0, len(cfg.Apps))
	for _, app := range cfg.Apps {
		steps = append(steps, NewAppStep(app.Name, app.Classic, p.runner))
	}

	return steps, nil
}

// Ensure Provider implements step.Provider.
var _ step.Provider = (*Provider)(nil)
