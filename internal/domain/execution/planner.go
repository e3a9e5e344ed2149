package execution

import (
	"context"
	"fmt"

	"github.com/mknopf/deskprep/internal/domain/step"
)

// Planner generates a Plan from an ordered list of steps by checking
// each step's current status.
type Planner struct{}

// NewPlanner creates a new Planner.
func NewPlanner() *Planner {
	return &Planner{}
}

// Plan checks every step and returns the resulting plan in declared
// order.
func (p *Planner) Plan(ctx context.Context, steps []step.Step) (*Plan, error) {
	plan := NewPlan()
	runCtx := step.NewRunContext(ctx)

	for _, s := range steps {
		entry, err := p.planStep(s, runCtx)
		if err != nil {
			return nil, fmt.Errorf("failed to plan step %q: %w", s.ID().String(), err)
		}
		plan.Add(entry)
	}

	return plan, nil
}

// planStep checks a single step and generates a PlanEntry.
func (p *Planner) planStep(s step.Step, ctx step.RunContext) (PlanEntry, error) {
	status, err := s.Check(ctx)
	if err != nil {
		// A check can fail on a machine that does not yet have the
		// step's backend installed; the executor re-checks before it
		// applies, so record the entry as unknown instead of aborting.
		status = step.StatusUnknown
	}

	var diff step.Diff

	// Only get diff if the step may need to be applied
	if status != step.StatusSatisfied {
		diff, err = s.Plan(ctx)
		if err != nil {
			return PlanEntry{}, fmt.Errorf("plan failed: %w", err)
		}
	}

	return NewPlanEntry(s, status, diff), nil
}
