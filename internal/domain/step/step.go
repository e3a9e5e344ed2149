// Package step defines the provisioning step model: typed, idempotent
// units of work with an explicit failure policy, executed in declared order.
package step

// Step represents one idempotent unit of provisioning work.
// Each step can check whether it is already satisfied, describe the
// change it would make, and apply that change.
type Step interface {
	// ID returns the unique identifier for this step.
	ID() StepID

	// Policy returns the failure policy attached to this step.
	Policy() Policy

	// Check determines the current status of this step.
	// Returns StatusSatisfied if no action is needed, StatusNeedsApply
	// if changes are required.
	Check(ctx RunContext) (StepStatus, error)

	// Plan returns the diff describing what changes this step will make.
	Plan(ctx RunContext) (Diff, error)

	// Apply executes the step's changes.
	// Applying an already-satisfied step must leave the system unchanged.
	Apply(ctx RunContext) error

	// Explain returns human-readable context for this step.
	Explain() Explanation
}

// Noticer is implemented by steps that need to surface an operator
// notice after the run, such as a required session restart.
type Noticer interface {
	// Notice returns the message to show the operator, or empty when
	// nothing needs surfacing.
	Notice() string
}

// NoticeOf returns the notice attached to a step, or empty when the
// step carries none.
func NoticeOf(s Step) string {
	if n, ok := s.(Noticer); ok {
		return n.Notice()
	}
	return ""
}

// SatisfiedExplainer is implemented by steps whose satisfied state reads
// better than the default install phrasing, such as group membership.
type SatisfiedExplainer interface {
	// ExplainSatisfied returns the log message for a step found already
	// satisfied.
	ExplainSatisfied() string
}

// SatisfiedMessage returns the log message for a step found already
// satisfied.
func SatisfiedMessage(s Step) string {
	if e, ok := s.(SatisfiedExplainer); ok {
		return e.ExplainSatisfied()
	}
	return "already installed"
}
