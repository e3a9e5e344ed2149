package dotfiles

import (
	"fmt"
	"path/filepath"

	"github.com/mknopf/deskprep/internal/domain/step"
	"github.com/mknopf/deskprep/internal/ports"
	"github.com/mknopf/deskprep/internal/profile"
	"github.com/mknopf/deskprep/internal/validation"
)

// MappingStep syncs one ConfigMapping: clean-slate clone of the remote
// repository, verification of the expected internal path, relocation to
// the destination under the config root, and disposal of the clone.
type MappingStep struct {
	mapping    profile.ConfigMapping
	configRoot string
	cloneRoot  string
	id         step.StepID
	runner     ports.CommandRunner
	fs         ports.FileSystem
}

// NewMappingStep creates a new MappingStep.
func NewMappingStep(mapping profile.ConfigMapping, configRoot, cloneRoot string, runner ports.CommandRunner, fs ports.FileSystem) *MappingStep {
	return &MappingStep{
		mapping:    mapping,
		configRoot: configRoot,
		cloneRoot:  cloneRoot,
		id:         step.MustNewStepID("dotfiles:sync:" + mapping.Name),
		runner:     runner,
		fs:         fs,
	}
}

// ID returns the step identifier.
func (s *MappingStep) ID() step.StepID {
	return s.id
}

// Policy returns the failure policy. Config syncs are best-effort.
func (s *MappingStep) Policy() step.Policy {
	return step.PolicyBestEffort
}

// Check always reports NeedsApply: each run refetches the mapping from
// its remote (clean-slate sync).
func (s *MappingStep) Check(_ step.RunContext) (step.StepStatus, error) {
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *MappingStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeAdd, "dotfiles", s.mapping.Name, "", s.destination()), nil
}

// Apply performs the sync.
func (s *MappingStep) Apply(ctx step.RunContext) error {
	if err := validation.ValidateGitURL(s.mapping.Repo); err != nil {
		return s.failf("invalid repo URL: %v", err)
	}
	if s.mapping.Path != "." {
		if err := validation.ValidateRelativePath(s.mapping.Path); err != nil {
			return s.failf("invalid path: %v", err)
		}
	}

	cloneDir := filepath.Join(s.cloneRoot, s.mapping.Name)

	// Clean slate: discard any clone left over from a previous run.
	if err := s.fs.RemoveAll(cloneDir); err != nil {
		return s.failf("failed to remove stale clone: %v", err)
	}
	if err := s.fs.MkdirAll(s.cloneRoot, 0o755); err != nil {
		return s.failf("failed to create clone dir: %v", err)
	}
	defer func() { _ = s.fs.RemoveAll(cloneDir) }()

	result, err := s.runner.Run(ctx.Context(), "git", "clone", "--depth", "1", s.mapping.Repo, cloneDir)
	if err != nil {
		return s.failf("clone failed: %v", err)
	}
	if !result.Success() {
		return s.failf("clone failed: %s", result.Stderr)
	}

	src := cloneDir
	if s.mapping.Path != "." && s.mapping.Path != "" {
		src = filepath.Join(cloneDir, s.mapping.Path)
	}
	if !s.fs.Exists(src) {
		return s.failf("expected path %s missing in clone of %s", s.mapping.Path, s.mapping.Repo)
	}

	dest := s.destination()
	if err := s.fs.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return s.failf("failed to create config root: %v", err)
	}
	if err := s.fs.RemoveAll(dest); err != nil {
		return s.failf("failed to clear destination: %v", err)
	}
	if err := s.fs.Rename(src, dest); err != nil {
		return s.failf("failed to relocate into place: %v", err)
	}

	return nil
}

// Explain provides a human-readable explanation.
func (s *MappingStep) Explain() step.Explanation {
	return step.NewExplanation(
		fmt.Sprintf("Sync %s config", s.mapping.Name),
		fmt.Sprintf("Clones %s and relocates %s to %s.", s.mapping.Repo, s.mapping.Path, s.destination()),
	)
}

// destination returns the absolute destination path under the config root.
func (s *MappingStep) destination() string {
	return filepath.Join(s.configRoot, s.mapping.Destination())
}

// failf wraps a sync failure with the mapping name and target path, so
// a single ERROR line identifies both.
func (s *MappingStep) failf(format string, args ...interface{}) error {
	return fmt.Errorf("dotfiles mapping %s (target %s): %s",
		s.mapping.Name, s.destination(), fmt.Sprintf(format, args...))
}
