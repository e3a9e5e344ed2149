// Package installer provides the provider for vendor-supplied remote
// installer scripts. Installer steps are best-effort: a failed download
// or a failed script never aborts the run.
package installer

import (
	"net/http"
	"time"

	"github.com/mknopf/deskprep/internal/domain/step"
	"github.com/mknopf/deskprep/internal/ports"
)

// defaultFetchTimeout bounds one installer script download.
const defaultFetchTimeout = 2 * time.Minute

// Provider compiles the installers profile section into executable steps.
type Provider struct {
	runner ports.CommandRunner
	client *http.Client
}

// NewProvider creates a new installer Provider.
func NewProvider(runner ports.CommandRunner) *Provider {
	return &Provider{
		runner: runner,
		client: &http.Client{Timeout: defaultFetchTimeout},
	}
}

// WithHTTPClient overrides the HTTP client, used by tests.
func (p *Provider) WithHTTPClient(client *http.Client) *Provider {
	return &Provider{
		runner: p.runner,
		client: client,
	}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "installer"
}

// Compile transforms the installers section into executable steps.
func (p *Provider) Compile(ctx step.CompileContext) ([]step.Step, error) {
	installers := ctx.Profile().Installers

	steps := make([]step.Step, 0, len(installers))
	for _, inst := range installers {
		steps = append(steps, NewScriptStep(inst, p.runner, p.client))
	}

	return steps, nil
}

// Ensure Provider implements step.Provider.
var _ step.Provider = (*Provider)(nil)
