// Package app provides the main application logic for deskprep.
package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/mknopf/deskprep/internal/adapters/command"
	"github.com/mknopf/deskprep/internal/adapters/filesystem"
	"github.com/mknopf/deskprep/internal/adapters/logging"
	"github.com/mknopf/deskprep/internal/domain/execution"
	"github.com/mknopf/deskprep/internal/domain/step"
	"github.com/mknopf/deskprep/internal/ports"
	"github.com/mknopf/deskprep/internal/profile"
	"github.com/mknopf/deskprep/internal/provider/aptpkg"
	"github.com/mknopf/deskprep/internal/provider/dotfiles"
	"github.com/mknopf/deskprep/internal/provider/flatpak"
	"github.com/mknopf/deskprep/internal/provider/installer"
	"github.com/mknopf/deskprep/internal/provider/snapd"
	"github.com/mknopf/deskprep/internal/provider/system"
)

// Terminal styles for plan and result rendering.
var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	skipStyle    = lipgloss.NewStyle().Faint(true)
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// Deskprep is the main application orchestrator.
type Deskprep struct {
	providers []step.Provider
	planner   *execution.Planner
	settings  profile.Settings
	out       io.Writer
}

// New creates a new Deskprep application wired to the real system.
// The environment is resolved exactly once here.
func New(out io.Writer) (*Deskprep, error) {
	settings, err := profile.ResolveSettings()
	if err != nil {
		return nil, err
	}

	runner := command.NewRealRunner()
	fs := filesystem.NewRealFileSystem()

	return &Deskprep{
		providers: []step.Provider{
			aptpkg.NewProvider(runner),
			flatpak.NewProvider(runner),
			snapd.NewProvider(runner),
			installer.NewProvider(runner),
			system.NewProvider(runner),
			dotfiles.NewProvider(runner, fs),
		},
		planner:  execution.NewPlanner(),
		settings: settings,
		out:      out,
	}, nil
}

// NewWith creates a Deskprep with explicit providers and settings,
// used by tests.
func NewWith(out io.Writer, settings profile.Settings, providers ...step.Provider) *Deskprep {
	return &Deskprep{
		providers: providers,
		planner:   execution.NewPlanner(),
		settings:  settings,
		out:       out,
	}
}

// Settings returns the resolved environment record.
func (d *Deskprep) Settings() profile.Settings {
	return d.settings
}

// Compile loads the profile and compiles it into the ordered step list.
func (d *Deskprep) Compile(profilePath string) ([]step.Step, error) {
	prof, err := profile.Load(profilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	compileCtx := step.NewCompileContext(prof, d.settings)

	var steps []step.Step
	for _, p := range d.providers {
		compiled, err := p.Compile(compileCtx)
		if err != nil {
			return nil, fmt.Errorf("provider %s failed to compile: %w", p.Name(), err)
		}
		steps = append(steps, compiled...)
	}

	return steps, nil
}

// Plan compiles the profile and checks every step.
func (d *Deskprep) Plan(ctx context.Context, profilePath string) (*execution.Plan, error) {
	steps, err := d.Compile(profilePath)
	if err != nil {
		return nil, err
	}

	plan, err := d.planner.Plan(ctx, steps)
	if err != nil {
		return nil, fmt.Errorf("failed to plan: %w", err)
	}

	return plan, nil
}

// Apply executes the plan, logging every event to the console and a
// timestamped run-log file. It returns the execution result and the
// run-log path.
func (d *Deskprep) Apply(ctx context.Context, plan *execution.Plan, dryRun bool) (execution.ExecuteResult, string, error) {
	runID := uuid.NewString()

	runLog, err := logging.NewRunLog(d.settings.LogDir)
	if err != nil {
		return execution.ExecuteResult{}, "", err
	}
	defer func() { _ = runLog.Close() }()

	console := logging.NewConsoleLogger(logging.WithOutput(d.out))
	logger := logging.NewTee(console, runLog)

	logger.Info(ctx, "run started",
		ports.F("run_id", runID),
		ports.F("user", d.settings.User),
		ports.F("steps", plan.Len()))

	executor := execution.NewExecutor(logger).WithDryRun(dryRun)
	result := executor.Execute(ctx, plan)
	result.RunID = runID

	if result.Aborted {
		logger.Error(ctx, "run aborted by fail-fast step",
			ports.F("run_id", runID),
			ports.F("step", result.FailedStep.String()),
			ports.F("log", runLog.Path()))
	} else {
		logger.Info(ctx, "run finished", ports.F("run_id", runID))
	}

	return result, runLog.Path(), nil
}

// PrintPlan outputs a human-readable plan summary.
func (d *Deskprep) PrintPlan(plan *execution.Plan) {
	summary := plan.Summary()

	d.printf("\n%s\n\n", headerStyle.Render("Deskprep Plan"))

	if !plan.HasChanges() {
		d.printf("No changes needed. Your system is up to date.\n")
		return
	}

	d.printf("Steps: %d total, %d to apply, %d satisfied\n\n",
		summary.Total, summary.NeedsApply, summary.Satisfied)

	for _, entry := range plan.Entries() {
		marker := successStyle.Render("✓")
		switch entry.Status() {
		case step.StatusNeedsApply:
			marker = "+"
		case step.StatusUnknown:
			marker = "?"
		case step.StatusSatisfied, step.StatusFailed, step.StatusSkipped:
		}

		d.printf("  %s %s [%s]\n", marker, entry.Step().ID().String(), entry.Step().Policy())

		diff := entry.Diff()
		if !diff.IsEmpty() {
			d.printf("      %s\n", skipStyle.Render(diff.Summary()))
		}
	}

	d.printf("\nRun 'deskprep apply' to execute this plan.\n")
}

// PrintResults outputs execution results, operator notices, and the
// run-log path.
func (d *Deskprep) PrintResults(result execution.ExecuteResult, logPath string) {
	d.printf("\n%s\n\n", headerStyle.Render("Execution Results"))

	var succeeded, failed, skipped int
	for _, res := range result.Results {
		switch res.Status() {
		case step.StatusSatisfied:
			succeeded++
			d.printf("  %s %s\n", successStyle.Render("✓"), res.StepID().String())
		case step.StatusFailed:
			failed++
			d.printf("  %s %s: %v\n", errorStyle.Render("✗"), res.StepID().String(), res.Error())
		case step.StatusSkipped:
			skipped++
			d.printf("  %s\n", skipStyle.Render("- "+res.StepID().String()+" (skipped)"))
		case step.StatusNeedsApply:
			d.printf("  + %s (needs apply)\n", res.StepID().String())
		case step.StatusUnknown:
			d.printf("  ? %s (unknown)\n", res.StepID().String())
		}
	}

	d.printf("\nRun %s: %d succeeded, %d failed, %d skipped in %s\n",
		result.RunID, succeeded, failed, skipped, result.Duration.Round(time.Millisecond))

	for _, notice := range result.Notices {
		d.printf("%s\n", noticeStyle.Render("! "+notice))
	}

	if logPath != "" {
		d.printf("Run log: %s\n", logPath)
	}
}

// printf is a helper that writes to the output writer, ignoring errors.
func (d *Deskprep) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(d.out, format, args...)
}
