package system

import (
	"fmt"
	"strings"

	"github.com/mknopf/deskprep/internal/domain/step"
	"github.com/mknopf/deskprep/internal/ports"
	"github.com/mknopf/deskprep/internal/validation"
)

// GroupStep adds the invoking user to one system group.
// New group membership applies only to new sessions, so an applied
// group step surfaces a session-restart notice.
type GroupStep struct {
	user   string
	group  string
	id     step.StepID
	runner ports.CommandRunner
}

// NewGroupStep creates a new GroupStep.
func NewGroupStep(user, group string, runner ports.CommandRunner) *GroupStep {
	return &GroupStep{
		user:   user,
		group:  group,
		id:     step.MustNewStepID("system:group:" + group),
		runner: runner,
	}
}

// ID returns the step identifier.
func (s *GroupStep) ID() step.StepID {
	return s.id
}

// Policy returns the failure policy.
func (s *GroupStep) Policy() step.Policy {
	return step.PolicyFailFast
}

// Check determines if the user already belongs to the group.
func (s *GroupStep) Check(ctx step.RunContext) (step.StepStatus, error) {
	result, err := s.runner.Run(ctx.Context(), "id", "-nG", s.user)
	if err != nil {
		return step.StatusUnknown, err
	}
	if !result.Success() {
		return step.StatusUnknown, fmt.Errorf("id -nG %s failed: %s", s.user, result.Stderr)
	}

	for _, g := range strings.Fields(result.Stdout) {
		if g == s.group {
			return step.StatusSatisfied, nil
		}
	}
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *GroupStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeAdd, "group", s.group, "", s.user), nil
}

// Apply adds the user to the group.
func (s *GroupStep) Apply(ctx step.RunContext) error {
	if err := validation.ValidateGroupName(s.group); err != nil {
		return fmt.Errorf("invalid group name: %w", err)
	}

	result, err := s.runner.Run(ctx.Context(), "sudo", "usermod", "-aG", s.group, s.user)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("usermod -aG %s %s failed: %s", s.group, s.user, result.Stderr)
	}
	return nil
}

// Explain provides a human-readable explanation.
func (s *GroupStep) Explain() step.Explanation {
	return step.NewExplanation(
		fmt.Sprintf("Add %s to group %s", s.user, s.group),
		fmt.Sprintf("Adds the %s account to the %s system group.", s.user, s.group),
	)
}

// Notice surfaces the session-restart requirement.
func (s *GroupStep) Notice() string {
	return fmt.Sprintf("group %s membership takes effect after you log out and back in", s.group)
}

// ExplainSatisfied describes the existing membership.
func (s *GroupStep) ExplainSatisfied() string {
	return fmt.Sprintf("%s already belongs to group %s", s.user, s.group)
}

// ServiceStep enables and starts one systemd service unit.
type ServiceStep struct {
	unit   string
	id     step.StepID
	runner ports.CommandRunner
}

// NewServiceStep creates a new ServiceStep.
func NewServiceStep(unit string, runner ports.CommandRunner) *ServiceStep {
	return &ServiceStep{
		unit:   unit,
		id:     step.MustNewStepID("system:service:" + unit),
		runner: runner,
	}
}

// ID returns the step identifier.
func (s *ServiceStep) ID() step.StepID {
	return s.id
}

// Policy returns the failure policy.
func (s *ServiceStep) Policy() step.Policy {
	return step.PolicyFailFast
}

// Check determines if the unit is already enabled and active.
func (s *ServiceStep) Check(ctx step.RunContext) (step.StepStatus, error) {
	enabled, err := s.runner.Run(ctx.Context(), "systemctl", "is-enabled", "--quiet", s.unit)
	if err != nil {
		return step.StatusUnknown, err
	}
	active, err := s.runner.Run(ctx.Context(), "systemctl", "is-active", "--quiet", s.unit)
	if err != nil {
		return step.StatusUnknown, err
	}

	if enabled.Success() && active.Success() {
		return step.StatusSatisfied, nil
	}
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *ServiceStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeModify, "service", s.unit, "disabled", "enabled"), nil
}

// Apply enables and starts the unit.
func (s *ServiceStep) Apply(ctx step.RunContext) error {
	if err := validation.ValidateUnitName(s.unit); err != nil {
		return fmt.Errorf("invalid unit name: %w", err)
	}

	result, err := s.runner.Run(ctx.Context(), "sudo", "systemctl", "enable", "--now", s.unit)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("systemctl enable --now %s failed: %s", s.unit, result.Stderr)
	}
	return nil
}

// Explain provides a human-readable explanation.
func (s *ServiceStep) Explain() step.Explanation {
	return step.NewExplanation(
		fmt.Sprintf("Enable service %s", s.unit),
		fmt.Sprintf("Enables and starts the %s service unit.", s.unit),
	)
}

// ExplainSatisfied describes the running unit.
func (s *ServiceStep) ExplainSatisfied() string {
	return fmt.Sprintf("service %s already enabled and active", s.unit)
}
