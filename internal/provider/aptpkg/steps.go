package aptpkg

import (
	"fmt"
	"strings"

	"github.com/mknopf/deskprep/internal/domain/step"
	"github.com/mknopf/deskprep/internal/ports"
	"github.com/mknopf/deskprep/internal/validation"
)

// RefreshStep updates the package index and upgrades installed packages.
// The underlying package manager is itself idempotent, so no pre-check
// is performed.
type RefreshStep struct {
	id     step.StepID
	runner ports.CommandRunner
}

// NewRefreshStep creates a new RefreshStep.
func NewRefreshStep(runner ports.CommandRunner) *RefreshStep {
	return &RefreshStep{
		id:     step.MustNewStepID("apt:refresh"),
		runner: runner,
	}
}

// ID returns the step identifier.
func (s *RefreshStep) ID() step.StepID {
	return s.id
}

// Policy returns the failure policy.
func (s *RefreshStep) Policy() step.Policy {
	return step.PolicyFailFast
}

// Check always reports NeedsApply; apt update is safe to re-run.
func (s *RefreshStep) Check(_ step.RunContext) (step.StepStatus, error) {
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *RefreshStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeModify, "index", "apt", "", "upgraded"), nil
}

// Apply runs apt-get update followed by apt-get upgrade.
func (s *RefreshStep) Apply(ctx step.RunContext) error {
	result, err := s.runner.Run(ctx.Context(), "sudo", "apt-get", "update")
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("apt-get update failed: %s", result.Stderr)
	}

	result, err = s.runner.Run(ctx.Context(), "sudo", "apt-get", "upgrade", "-y")
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("apt-get upgrade failed: %s", result.Stderr)
	}
	return nil
}

// Explain provides a human-readable explanation.
func (s *RefreshStep) Explain() step.Explanation {
	return step.NewExplanation(
		"Update and upgrade apt packages",
		"Refreshes the apt package index and upgrades all installed packages to their latest versions.",
	)
}

// RepoStep registers an apt software source if it is not already
// registered.
type RepoStep struct {
	repo   string
	id     step.StepID
	runner ports.CommandRunner
}

// NewRepoStep creates a new RepoStep.
func NewRepoStep(repo string, runner ports.CommandRunner) *RepoStep {
	// Sanitize repo spec for step ID (replace colon with dash)
	sanitized := strings.ReplaceAll(repo, ":", "-")
	return &RepoStep{
		repo:   repo,
		id:     step.MustNewStepID("apt:repo:" + sanitized),
		runner: runner,
	}
}

// ID returns the step identifier.
func (s *RepoStep) ID() step.StepID {
	return s.id
}

// Policy returns the failure policy.
func (s *RepoStep) Policy() step.Policy {
	return step.PolicyFailFast
}

// Check determines if the repository is already registered.
func (s *RepoStep) Check(ctx step.RunContext) (step.StepStatus, error) {
	result, err := s.runner.Run(ctx.Context(), "apt-cache", "policy")
	if err != nil {
		return step.StatusUnknown, err
	}

	repoURL := strings.TrimPrefix(s.repo, "ppa:")
	if strings.Contains(result.Stdout, repoURL) {
		return step.StatusSatisfied, nil
	}
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *RepoStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeAdd, "repo", s.repo, "", s.repo), nil
}

// Apply registers the repository.
func (s *RepoStep) Apply(ctx step.RunContext) error {
	if err := validation.ValidateRepoSpec(s.repo); err != nil {
		return fmt.Errorf("invalid repository spec: %w", err)
	}

	result, err := s.runner.Run(ctx.Context(), "sudo", "add-apt-repository", "-y", s.repo)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("add-apt-repository %s failed: %s", s.repo, result.Stderr)
	}
	return nil
}

// Explain provides a human-readable explanation.
func (s *RepoStep) Explain() step.Explanation {
	return step.NewExplanation(
		"Add apt repository",
		fmt.Sprintf("Registers the %s software source so its packages become installable.", s.repo),
	)
}

// PackageStep installs one apt package.
type PackageStep struct {
	pkg    string
	id     step.StepID
	runner ports.CommandRunner
}

// NewPackageStep creates a new PackageStep.
func NewPackageStep(pkg string, runner ports.CommandRunner) *PackageStep {
	return &PackageStep{
		pkg:    pkg,
		id:     step.MustNewStepID("apt:package:" + pkg),
		runner: runner,
	}
}

// ID returns the step identifier.
func (s *PackageStep) ID() step.StepID {
	return s.id
}

// Policy returns the failure policy.
func (s *PackageStep) Policy() step.Policy {
	return step.PolicyFailFast
}

// Check determines if the package is already installed.
func (s *PackageStep) Check(ctx step.RunContext) (step.StepStatus, error) {
	result, err := s.runner.Run(ctx.Context(), "dpkg-query", "-W", "-f=${Package}\t${db:Status-Status}\n", s.pkg)
	if err != nil {
		return step.StatusUnknown, err
	}

	// dpkg-query exits 1 when the package is unknown
	if !result.Success() {
		return step.StatusNeedsApply, nil
	}

	if strings.Contains(result.Stdout, "installed") {
		return step.StatusSatisfied, nil
	}
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *PackageStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeAdd, "package", s.pkg, "", "latest"), nil
}

// Apply installs the package.
func (s *PackageStep) Apply(ctx step.RunContext) error {
	if err := validation.ValidatePackageName(s.pkg); err != nil {
		return fmt.Errorf("invalid package name: %w", err)
	}

	result, err := s.runner.Run(ctx.Context(), "sudo", "apt-get", "install", "-y", s.pkg)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("apt-get install %s failed: %s", s.pkg, result.Stderr)
	}
	return nil
}

// Explain provides a human-readable explanation.
func (s *PackageStep) Explain() step.Explanation {
	return step.NewExplanation(
		fmt.Sprintf("Install %s", s.pkg),
		fmt.Sprintf("Installs the %s package via apt.", s.pkg),
	)
}
