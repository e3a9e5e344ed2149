package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mknopf/deskprep/internal/app"
	"github.com/mknopf/deskprep/internal/domain/execution"
	"github.com/mknopf/deskprep/internal/ports"
	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply the profile to this machine",
	Long: `Apply compiles the profile, plans, and executes every step in order.

This command:
1. Creates an execution plan (same as 'plan')
2. Executes each step in declared order
3. Writes every event to a timestamped run log
4. Reports results and any operator notices

A failing fail-fast step aborts the remaining steps and exits non-zero.
Best-effort failures (installer scripts, dotfile syncs) are logged and
the run continues.

Use --dry-run to see what would happen without making changes.`,
	RunE: runApply,
}

var (
	applyProfilePath string
	applyDryRun      bool
)

type deskprepClient interface {
	Plan(context.Context, string) (*execution.Plan, error)
	PrintPlan(*execution.Plan)
	Apply(context.Context, *execution.Plan, bool) (execution.ExecuteResult, string, error)
	PrintResults(execution.ExecuteResult, string)
}

var newDeskprep = func(out io.Writer) (deskprepClient, error) {
	return app.New(out)
}

func init() {
	rootCmd.AddCommand(applyCmd)

	applyCmd.Flags().StringVarP(&applyProfilePath, "profile", "p", "", "Path to a profile YAML (default: built-in profile)")
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Show what would be done without making changes")
}

func runApply(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	deskprep, err := newDeskprep(os.Stdout)
	if err != nil {
		return err
	}

	plan, err := deskprep.Plan(ctx, ports.ExpandPath(applyProfilePath))
	if err != nil {
		return fmt.Errorf("plan failed: %w", err)
	}

	// Show the plan first
	deskprep.PrintPlan(plan)

	if applyDryRun {
		fmt.Println("\n[Dry run - no changes made]")
		return nil
	}

	// An all-satisfied plan still runs: the run log records every step,
	// applied or already in place.
	if plan.HasChanges() {
		fmt.Println("\nApplying changes...")
	}

	result, logPath, err := deskprep.Apply(ctx, plan, applyDryRun)
	if err != nil {
		return fmt.Errorf("apply failed: %w", err)
	}

	deskprep.PrintResults(result, logPath)

	if result.Aborted {
		return fmt.Errorf("step %s failed, see run log at %s", result.FailedStep.String(), logPath)
	}

	return nil
}
