package flatpak

import (
	"fmt"
	"strings"

	"github.com/mknopf/deskprep/internal/domain/step"
	"github.com/mknopf/deskprep/internal/ports"
	"github.com/mknopf/deskprep/internal/validation"
)

// RemoteStep registers a flatpak remote if it is not already configured.
type RemoteStep struct {
	name   string
	url    string
	id     step.StepID
	runner ports.CommandRunner
}

// NewRemoteStep creates a new RemoteStep.
func NewRemoteStep(name, url string, runner ports.CommandRunner) *RemoteStep {
	return &RemoteStep{
		name:   name,
		url:    url,
		id:     step.MustNewStepID("flatpak:remote:" + name),
		runner: runner,
	}
}

// ID returns the step identifier.
func (s *RemoteStep) ID() step.StepID {
	return s.id
}

// Policy returns the failure policy.
func (s *RemoteStep) Policy() step.Policy {
	return step.PolicyFailFast
}

// Check determines if the remote is already configured.
// The match is an exact name comparison per output line, not a
// substring containment.
func (s *RemoteStep) Check(ctx step.RunContext) (step.StepStatus, error) {
	result, err := s.runner.Run(ctx.Context(), "flatpak", "remotes", "--columns=name")
	if err != nil {
		return step.StatusUnknown, err
	}
	if !result.Success() {
		return step.StatusUnknown, fmt.Errorf("flatpak remotes failed: %s", result.Stderr)
	}

	for _, line := range strings.Split(result.Stdout, "\n") {
		if strings.TrimSpace(line) == s.name {
			return step.StatusSatisfied, nil
		}
	}
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *RemoteStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeAdd, "remote", s.name, "", s.url), nil
}

// Apply registers the remote.
func (s *RemoteStep) Apply(ctx step.RunContext) error {
	if err := validation.ValidateRemoteName(s.name); err != nil {
		return fmt.Errorf("invalid remote name: %w", err)
	}
	if err := validation.ValidateURL(s.url); err != nil {
		return fmt.Errorf("invalid remote URL: %w", err)
	}

	result, err := s.runner.Run(ctx.Context(), "flatpak", "remote-add", "--if-not-exists", s.name, s.url)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("flatpak remote-add %s failed: %s", s.name, result.Stderr)
	}
	return nil
}

// Explain provides a human-readable explanation.
func (s *RemoteStep) Explain() step.Explanation {
	return step.NewExplanation(
		fmt.Sprintf("Add flatpak remote %s", s.name),
		fmt.Sprintf("Registers the %s flatpak repository at %s.", s.name, s.url),
	)
}

// AppStep installs one flatpak application from a remote.
type AppStep struct {
	appID  string
	remote string
	id     step.StepID
	runner ports.CommandRunner
}

// NewAppStep creates a new AppStep.
func NewAppStep(appID, remote string, runner ports.CommandRunner) *AppStep {
	return &AppStep{
		appID:  appID,
		remote: remote,
		id:     step.MustNewStepID("flatpak:app:" + appID),
		runner: runner,
	}
}

// ID returns the step identifier.
func (s *AppStep) ID() step.StepID {
	return s.id
}

// Policy returns the failure policy.
func (s *AppStep) Policy() step.Policy {
	return step.PolicyFailFast
}

// Check determines if the application is already installed.
func (s *AppStep) Check(ctx step.RunContext) (step.StepStatus, error) {
	result, err := s.runner.Run(ctx.Context(), "flatpak", "info", s.appID)
	if err != nil {
		return step.StatusUnknown, err
	}

	// flatpak info exits non-zero for apps that are not installed
	if result.Success() {
		return step.StatusSatisfied, nil
	}
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *AppStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeAdd, "app", s.appID, "", s.remote), nil
}

// Apply installs the application.
func (s *AppStep) Apply(ctx step.RunContext) error {
	if err := validation.ValidateAppID(s.appID); err != nil {
		return fmt.Errorf("invalid app ID: %w", err)
	}
	if err := validation.ValidateRemoteName(s.remote); err != nil {
		return fmt.Errorf("invalid remote name: %w", err)
	}

	result, err := s.runner.Run(ctx.Context(), "flatpak", "install", "-y", s.remote, s.appID)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("flatpak install %s failed: %s", s.appID, result.Stderr)
	}
	return nil
}

// Explain provides a human-readable explanation.
func (s *AppStep) Explain() step.Explanation {
	return step.NewExplanation(
		fmt.Sprintf("Install %s", s.appID),
		fmt.Sprintf("Installs the %s flatpak application from the %s remote.", s.appID, s.remote),
	)
}
