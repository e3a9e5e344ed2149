package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/mknopf/deskprep/internal/domain/execution"
	"github.com/mknopf/deskprep/internal/domain/step"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClient is a scriptable deskprepClient.
type stubClient struct {
	plan         *execution.Plan
	planErr      error
	applyResult  execution.ExecuteResult
	applyLogPath string
	applyErr     error

	planPrinted    bool
	resultsPrinted bool
	applied        bool
	appliedDryRun  bool
}

func (c *stubClient) Plan(_ context.Context, _ string) (*execution.Plan, error) {
	return c.plan, c.planErr
}

func (c *stubClient) PrintPlan(_ *execution.Plan) { c.planPrinted = true }

func (c *stubClient) Apply(_ context.Context, _ *execution.Plan, dryRun bool) (execution.ExecuteResult, string, error) {
	c.applied = true
	c.appliedDryRun = dryRun
	return c.applyResult, c.applyLogPath, c.applyErr
}

func (c *stubClient) PrintResults(_ execution.ExecuteResult, _ string) { c.resultsPrinted = true }

type stubStep struct {
	id step.StepID
}

func (s *stubStep) ID() step.StepID     { return s.id }
func (s *stubStep) Policy() step.Policy { return step.PolicyFailFast }

func (s *stubStep) Check(_ step.RunContext) (step.StepStatus, error) {
	return step.StatusNeedsApply, nil
}

func (s *stubStep) Plan(_ step.RunContext) (step.Diff, error) { return step.Diff{}, nil }
func (s *stubStep) Apply(_ step.RunContext) error             { return nil }
func (s *stubStep) Explain() step.Explanation                 { return step.Explanation{} }

func planWithChanges() *execution.Plan {
	plan := execution.NewPlan()
	plan.Add(execution.NewPlanEntry(
		&stubStep{id: step.MustNewStepID("test:one")},
		step.StatusNeedsApply,
		step.NewDiff(step.DiffTypeAdd, "test", "one", "", "done"),
	))
	return plan
}

func satisfiedPlan() *execution.Plan {
	plan := execution.NewPlan()
	plan.Add(execution.NewPlanEntry(
		&stubStep{id: step.MustNewStepID("test:one")},
		step.StatusSatisfied,
		step.Diff{},
	))
	return plan
}

// withStubClient swaps the client factory for the duration of one test.
func withStubClient(t *testing.T, client *stubClient) {
	t.Helper()
	orig := newDeskprep
	newDeskprep = func(_ io.Writer) (deskprepClient, error) {
		return client, nil
	}
	t.Cleanup(func() { newDeskprep = orig })
}

func TestRunApply_ExecutesPlan(t *testing.T) {
	client := &stubClient{
		plan:         planWithChanges(),
		applyLogPath: "/tmp/deskprep-test.log",
	}
	withStubClient(t, client)
	applyDryRun = false

	require.NoError(t, runApply(applyCmd, nil))
	assert.True(t, client.planPrinted)
	assert.True(t, client.applied)
	assert.False(t, client.appliedDryRun)
	assert.True(t, client.resultsPrinted)
}

func TestRunApply_AllSatisfiedPlanStillRuns(t *testing.T) {
	// Every run produces a run log, including one with nothing to do.
	client := &stubClient{
		plan:         satisfiedPlan(),
		applyLogPath: "/tmp/deskprep-test.log",
	}
	withStubClient(t, client)
	applyDryRun = false

	require.NoError(t, runApply(applyCmd, nil))
	assert.True(t, client.planPrinted)
	assert.True(t, client.applied)
	assert.True(t, client.resultsPrinted)
}

func TestRunApply_DryRunNeverApplies(t *testing.T) {
	client := &stubClient{plan: planWithChanges()}
	withStubClient(t, client)
	applyDryRun = true
	t.Cleanup(func() { applyDryRun = false })

	require.NoError(t, runApply(applyCmd, nil))
	assert.True(t, client.planPrinted)
	assert.False(t, client.applied)
}

func TestRunApply_AbortedRunReturnsError(t *testing.T) {
	client := &stubClient{
		plan: planWithChanges(),
		applyResult: execution.ExecuteResult{
			Aborted:    true,
			FailedStep: step.MustNewStepID("apt:package:git"),
		},
		applyLogPath: "/tmp/deskprep-test.log",
	}
	withStubClient(t, client)
	applyDryRun = false

	err := runApply(applyCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apt:package:git")
	assert.Contains(t, err.Error(), "/tmp/deskprep-test.log")
	assert.True(t, client.resultsPrinted)
}

func TestRunApply_PlanFailure(t *testing.T) {
	client := &stubClient{planErr: errors.New("bad profile")}
	withStubClient(t, client)

	err := runApply(applyCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plan failed")
	assert.False(t, client.applied)
}

func TestRunPlan_PrintsWithoutApplying(t *testing.T) {
	client := &stubClient{plan: planWithChanges()}
	withStubClient(t, client)

	require.NoError(t, runPlan(planCmd, nil))
	assert.True(t, client.planPrinted)
	assert.False(t, client.applied)
}

func TestPrintErrorTo(t *testing.T) {
	var buf bytes.Buffer
	printErrorTo(&buf, errors.New("step apt:package:git failed"))
	assert.Equal(t, "Error: step apt:package:git failed\n", buf.String())
}
