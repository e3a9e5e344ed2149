package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mknopf/deskprep/internal/ports"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show what changes deskprep would make",
	Long: `Plan compiles the profile and shows what would change.

This command:
1. Loads the profile (built-in default or --profile)
2. Compiles it into executable steps
3. Checks current system state
4. Shows what would be changed (without making changes)`,
	RunE: runPlan,
}

var planProfilePath string

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().StringVarP(&planProfilePath, "profile", "p", "", "Path to a profile YAML (default: built-in profile)")
}

func runPlan(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	deskprep, err := newDeskprep(os.Stdout)
	if err != nil {
		return err
	}

	plan, err := deskprep.Plan(ctx, ports.ExpandPath(planProfilePath))
	if err != nil {
		return fmt.Errorf("plan failed: %w", err)
	}

	deskprep.PrintPlan(plan)
	return nil
}
