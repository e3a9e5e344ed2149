// Package execution handles step orchestration and runtime execution.
package execution

import (
	"time"

	"github.com/mknopf/deskprep/internal/domain/step"
)

// StepResult captures the outcome of executing a single step.
type StepResult struct {
	stepID   step.StepID
	policy   step.Policy
	status   step.StepStatus
	err      error
	duration time.Duration
	diff     step.Diff
}

// NewStepResult creates a new StepResult.
func NewStepResult(stepID step.StepID, policy step.Policy, status step.StepStatus, err error) StepResult {
	return StepResult{
		stepID: stepID,
		policy: policy,
		status: status,
		err:    err,
	}
}

// StepID returns the ID of the step that was executed.
func (r StepResult) StepID() step.StepID {
	return r.stepID
}

// Policy returns the failure policy of the executed step.
func (r StepResult) Policy() step.Policy {
	return r.policy
}

// Status returns the final status of the step.
func (r StepResult) Status() step.StepStatus {
	return r.status
}

// Error returns any error that occurred during execution.
func (r StepResult) Error() error {
	return r.err
}

// Duration returns how long the step took to execute.
func (r StepResult) Duration() time.Duration {
	return r.duration
}

// Diff returns the diff that was applied (if any).
func (r StepResult) Diff() step.Diff {
	return r.diff
}

// Success returns true if the step completed successfully.
func (r StepResult) Success() bool {
	return r.status == step.StatusSatisfied
}

// Skipped returns true if the step was never attempted.
func (r StepResult) Skipped() bool {
	return r.status == step.StatusSkipped
}

// Fatal returns true if this result aborted the run.
func (r StepResult) Fatal() bool {
	return r.status == step.StatusFailed && r.policy.Fatal()
}

// WithDuration returns a new StepResult with duration set.
func (r StepResult) WithDuration(d time.Duration) StepResult {
	r.duration = d
	return r
}

// WithDiff returns a new StepResult with diff set.
func (r StepResult) WithDiff(d step.Diff) StepResult {
	r.diff = d
	return r
}
