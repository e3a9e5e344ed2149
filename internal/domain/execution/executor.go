package execution

import (
	"context"
	"time"

	"github.com/mknopf/deskprep/internal/domain/step"
	"github.com/mknopf/deskprep/internal/ports"
)

// Executor runs the steps of a Plan strictly in order, honoring each
// step's failure policy: a failed fail-fast step aborts the remaining
// run, a failed best-effort step is logged and skipped over.
type Executor struct {
	logger ports.Logger
	dryRun bool
}

// NewExecutor creates a new Executor logging through the given logger.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{logger: logger}
}

// WithDryRun returns an Executor that simulates execution without
// applying.
func (e *Executor) WithDryRun(dryRun bool) *Executor {
	return &Executor{
		logger: e.logger,
		dryRun: dryRun,
	}
}

// ExecuteResult contains the results of one run.
type ExecuteResult struct {
	// RunID identifies the run; assigned by the caller.
	RunID   string
	Results []StepResult
	// Aborted is true when a fail-fast step failed and the remaining
	// steps were skipped.
	Aborted bool
	// FailedStep identifies the step that aborted the run.
	FailedStep step.StepID
	// Notices are operator messages collected from applied steps, such
	// as a required session restart.
	Notices []string
	// Duration is the total wall-clock time of the run.
	Duration time.Duration
}

// Succeeded returns true when no fail-fast step failed.
func (r ExecuteResult) Succeeded() bool {
	return !r.Aborted
}

// BestEffortFailures returns the results of best-effort steps that
// failed without aborting the run.
func (r ExecuteResult) BestEffortFailures() []StepResult {
	var failed []StepResult
	for _, res := range r.Results {
		if res.Status() == step.StatusFailed && !res.Policy().Fatal() {
			failed = append(failed, res)
		}
	}
	return failed
}

// Execute runs all plan entries in order and returns per-step results.
func (e *Executor) Execute(ctx context.Context, plan *Plan) ExecuteResult {
	start := time.Now()
	result := ExecuteResult{
		Results: make([]StepResult, 0, plan.Len()),
	}

	runCtx := step.NewRunContext(ports.ContextWithLogger(ctx, e.logger)).WithDryRun(e.dryRun)

	for _, entry := range plan.Entries() {
		s := entry.Step()

		// Once aborted (fail-fast failure or cancellation), the rest of
		// the plan is recorded as skipped.
		if result.Aborted || ctx.Err() != nil {
			result.Results = append(result.Results,
				NewStepResult(s.ID(), s.Policy(), step.StatusSkipped, nil))
			continue
		}

		res := e.executeEntry(ctx, entry, runCtx)
		result.Results = append(result.Results, res)

		switch {
		case res.Status() == step.StatusFailed && s.Policy().Fatal():
			result.Aborted = true
			result.FailedStep = s.ID()
		case res.Success() && !e.dryRun && !res.Diff().IsEmpty():
			if notice := step.NoticeOf(s); notice != "" {
				result.Notices = append(result.Notices, notice)
			}
		}
	}

	result.Duration = time.Since(start)
	return result
}

// executeEntry executes a single plan entry and logs its outcome.
func (e *Executor) executeEntry(ctx context.Context, entry PlanEntry, runCtx step.RunContext) StepResult {
	s := entry.Step()
	id := s.ID()

	// Dry run: report the plan-time status without touching the system.
	if runCtx.DryRun() {
		if entry.Status() == step.StatusSatisfied {
			e.logger.Info(ctx, step.SatisfiedMessage(s), ports.F("step", id.String()))
			return NewStepResult(id, s.Policy(), step.StatusSatisfied, nil)
		}
		return NewStepResult(id, s.Policy(), entry.Status(), nil).WithDiff(entry.Diff())
	}

	// Re-check immediately before applying: an earlier step may have
	// installed the backend this check needs, or satisfied this step
	// outright.
	status, err := s.Check(runCtx)
	if err == nil && status == step.StatusSatisfied {
		e.logger.Info(ctx, step.SatisfiedMessage(s), ports.F("step", id.String()))
		return NewStepResult(id, s.Policy(), step.StatusSatisfied, nil)
	}
	if err != nil {
		// A failed check is not fatal; apply and let the step decide.
		e.logger.Debug(ctx, "check failed, applying",
			ports.F("step", id.String()),
			ports.F("error", err.Error()))
	}

	start := time.Now()
	applyErr := s.Apply(runCtx)
	duration := time.Since(start)

	if applyErr != nil {
		e.logger.Error(ctx, applyErr.Error(),
			ports.F("step", id.String()),
			ports.F("policy", s.Policy().String()))
		return NewStepResult(id, s.Policy(), step.StatusFailed, applyErr).WithDuration(duration)
	}

	e.logger.Success(ctx, s.Explain().Summary(),
		ports.F("step", id.String()),
		ports.F("duration", duration.Round(time.Millisecond).String()))

	return NewStepResult(id, s.Policy(), step.StatusSatisfied, nil).
		WithDuration(duration).
		WithDiff(entry.Diff())
}
