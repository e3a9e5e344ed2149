package installer

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mknopf/deskprep/internal/domain/step"
	"github.com/mknopf/deskprep/internal/ports"
	"github.com/mknopf/deskprep/internal/profile"
	"github.com/mknopf/deskprep/internal/validation"
)

// maxScriptSize bounds the fetched script body. Vendor installers are
// small shell scripts; anything larger is suspect.
const maxScriptSize = 4 << 20

// ScriptStep downloads a vendor installer script and pipes it into the
// configured interpreter. When a SHA-256 pin is declared, the script
// content is verified before a single byte reaches the interpreter.
type ScriptStep struct {
	inst   profile.Installer
	id     step.StepID
	runner ports.CommandRunner
	client *http.Client
}

// NewScriptStep creates a new ScriptStep.
func NewScriptStep(inst profile.Installer, runner ports.CommandRunner, client *http.Client) *ScriptStep {
	return &ScriptStep{
		inst:   inst,
		id:     step.MustNewStepID("installer:script:" + inst.Name),
		runner: runner,
		client: client,
	}
}

// ID returns the step identifier.
func (s *ScriptStep) ID() step.StepID {
	return s.id
}

// Policy returns the failure policy. Installer scripts are best-effort.
func (s *ScriptStep) Policy() step.Policy {
	return step.PolicyBestEffort
}

// Check looks for the binary the installer creates. Without a declared
// binary the step always reapplies and the script is trusted to be
// idempotent.
func (s *ScriptStep) Check(_ step.RunContext) (step.StepStatus, error) {
	if s.inst.Creates == "" {
		return step.StatusNeedsApply, nil
	}
	if _, err := s.runner.LookPath(s.inst.Creates); err == nil {
		return step.StatusSatisfied, nil
	}
	return step.StatusNeedsApply, nil
}

// ExplainSatisfied describes the binary already on the PATH.
func (s *ScriptStep) ExplainSatisfied() string {
	return fmt.Sprintf("%s already on PATH", s.inst.Creates)
}

// Plan returns the diff for this step.
func (s *ScriptStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeAdd, "installer", s.inst.Name, "", s.inst.URL), nil
}

// Apply fetches the script, verifies the pin when present, and pipes
// the content into the interpreter.
func (s *ScriptStep) Apply(ctx step.RunContext) error {
	if err := validation.ValidateURL(s.inst.URL); err != nil {
		return fmt.Errorf("invalid installer URL: %w", err)
	}

	body, err := s.fetch(ctx)
	if err != nil {
		return err
	}

	if s.inst.SHA256 != "" {
		if err := verifyChecksum(body, s.inst.SHA256); err != nil {
			return fmt.Errorf("installer %s: %w", s.inst.Name, err)
		}
	} else {
		ports.LoggerFromContext(ctx.Context()).Warning(ctx.Context(),
			"no checksum pinned, executing unverified installer script",
			ports.F("installer", s.inst.Name),
			ports.F("url", s.inst.URL))
	}

	interp := s.inst.Interpreter
	if len(interp) == 0 {
		interp = []string{"sh"}
	}

	result, err := s.runner.RunStdin(ctx.Context(), bytes.NewReader(body), interp[0], interp[1:]...)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("installer %s exited with status %d: %s",
			s.inst.Name, result.ExitCode, strings.TrimSpace(result.Stderr))
	}
	return nil
}

// Explain provides a human-readable explanation.
func (s *ScriptStep) Explain() step.Explanation {
	return step.NewExplanation(
		fmt.Sprintf("Run %s installer", s.inst.Name),
		fmt.Sprintf("Downloads the %s installer script from %s and executes it.", s.inst.Name, s.inst.URL),
	)
}

// fetch downloads the installer script body.
func (s *ScriptStep) fetch(ctx step.RunContext) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx.Context(), http.MethodGet, s.inst.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("installer %s: %w", s.inst.Name, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("installer %s: download failed: %w", s.inst.Name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("installer %s: download failed: %s", s.inst.Name, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxScriptSize+1))
	if err != nil {
		return nil, fmt.Errorf("installer %s: read failed: %w", s.inst.Name, err)
	}
	if len(body) > maxScriptSize {
		return nil, fmt.Errorf("installer %s: script exceeds %d bytes", s.inst.Name, maxScriptSize)
	}
	return body, nil
}

// verifyChecksum compares the body's SHA-256 with the pinned hex digest.
func verifyChecksum(body []byte, pin string) error {
	sum := sha256.Sum256(body)
	digest := hex.EncodeToString(sum[:])
	if !strings.EqualFold(digest, pin) {
		return fmt.Errorf("checksum mismatch: got %s, pinned %s", digest, pin)
	}
	return nil
}
