package snapd

import (
	"fmt"
	"strings"

	"github.com/mknopf/deskprep/internal/domain/step"
	"github.com/mknopf/deskprep/internal/ports"
	"github.com/mknopf/deskprep/internal/validation"
)

// AppStep installs one snap application.
type AppStep struct {
	name    string
	classic bool
	id      step.StepID
	runner  ports.CommandRunner
}

// NewAppStep creates a new AppStep.
func NewAppStep(name string, classic bool, runner ports.CommandRunner) *AppStep {
	return &AppStep{
		name:    name,
		classic: classic,
		id:      step.MustNewStepID("snap:app:" + name),
		runner:  runner,
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

// Check queries the local snap inventory for the app.
// The match is anchored: only the first whitespace-delimited token of
// each inventory line counts, so "nvim" never matches an installed
// "nvim-something".
func (s *AppStep) Check(ctx step.RunContext) (step.StepStatus, error) {
	result, err := s.runner.Run(ctx.Context(), "snap", "list")
	if err != nil {
		return step.StatusUnknown, err
	}
	if !result.Success() {
		return step.StatusUnknown, fmt.Errorf("snap list failed: %s", result.Stderr)
	}

	if inventoryContains(result.Stdout, s.name) {
		return step.StatusSatisfied, nil
	}
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *AppStep) Plan(_ step.RunContext) (step.Diff, error) {
	mode := "strict"
	if s.classic {
		mode = "classic"
	}
	return step.NewDiff(step.DiffTypeAdd, "snap", s.name, "", mode), nil
}

// Apply installs the snap.
func (s *AppStep) Apply(ctx step.RunContext) error {
	if err := validation.ValidateSnapName(s.name); err != nil {
		return fmt.Errorf("invalid snap name: %w", err)
	}

	args := []string{"snap", "install", s.name}
	if s.classic {
		args = append(args, "--classic")
	}

	result, err := s.runner.Run(ctx.Context(), "sudo", args...)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("snap install %s failed: %s", s.name, result.Stderr)
	}
	return nil
}

// Explain provides a human-readable explanation.
func (s *AppStep) Explain() step.Explanation {
	detail := fmt.Sprintf("Installs the %s snap.", s.name)
	if s.classic {
		detail = fmt.Sprintf("Installs the %s snap in classic confinement.", s.name)
	}
	return step.NewExplanation(
		fmt.Sprintf("Install %s", s.name),
		detail,
	)
}

// inventoryContains reports whether the snap list output names the app
// as an exact first-column entry. The first line is the column header.
func inventoryContains(output, name string) bool {
	lines := strings.Split(output, "\n")
	for i, line := range lines {
		if i == 0 {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) > 0 && fields[0] == name {
			return true
		}
	}
	return false
}
