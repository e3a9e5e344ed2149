package installer_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mknopf/deskprep/internal/domain/step"
	"github.com/mknopf/deskprep/internal/ports"
	"github.com/mknopf/deskprep/internal/profile"
	"github.com/mknopf/deskprep/internal/provider/installer"
	"github.com/mknopf/deskprep/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scriptBody = "#!/bin/sh\necho installing\n"

// scriptServer serves a fixed installer script over TLS; the
// HTTPS-only URL validation accepts its address.
func scriptServer(t *testing.T, body string, status int) (*httptest.Server, *http.Client) {
	t.Helper()
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, srv.Client()
}

func sha256Hex(data string) string {
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}

func TestScriptStep_ApplyPipesScriptIntoInterpreter(t *testing.T) {
	t.Parallel()

	srv, client := scriptServer(t, scriptBody, http.StatusOK)

	runner := mocks.NewCommandRunner()
	runner.AddResult("sh", nil, ports.CommandResult{ExitCode: 0})

	s := installer.NewScriptStep(profile.Installer{
		Name:   "brave",
		URL:    srv.URL,
		SHA256: sha256Hex(scriptBody),
	}, runner, client)

	require.NoError(t, s.Apply(step.NewRunContext(context.Background())))

	calls := runner.CallsFor("sh")
	require.Len(t, calls, 1)
	assert.Empty(t, calls[0].Args)
	assert.Equal(t, scriptBody, calls[0].Stdin)
}

func TestScriptStep_ApplyUsesConfiguredInterpreter(t *testing.T) {
	t.Parallel()

	srv, client := scriptServer(t, scriptBody, http.StatusOK)

	runner := mocks.NewCommandRunner()
	runner.AddResult("bash", []string{"-s"}, ports.CommandResult{ExitCode: 0})

	s := installer.NewScriptStep(profile.Installer{
		Name:        "starship",
		URL:         srv.URL,
		SHA256:      sha256Hex(scriptBody),
		Interpreter: []string{"bash", "-s"},
	}, runner, client)

	require.NoError(t, s.Apply(step.NewRunContext(context.Background())))

	calls := runner.CallsFor("bash")
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"-s"}, calls[0].Args)
	assert.Equal(t, scriptBody, calls[0].Stdin)
}

func TestScriptStep_ChecksumMismatchNeverRunsScript(t *testing.T) {
	t.Parallel()

	srv, client := scriptServer(t, scriptBody, http.StatusOK)

	runner := mocks.NewCommandRunner()
	s := installer.NewScriptStep(profile.Installer{
		Name:   "brave",
		URL:    srv.URL,
		SHA256: sha256Hex("something else entirely"),
	}, runner, client)

	err := s.Apply(step.NewRunContext(context.Background()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum mismatch")
	assert.Empty(t, runner.Calls())
}

func TestScriptStep_MissingChecksumWarnsAndRuns(t *testing.T) {
	t.Parallel()

	srv, client := scriptServer(t, scriptBody, http.StatusOK)

	runner := mocks.NewCommandRunner()
	runner.AddResult("sh", nil, ports.CommandResult{ExitCode: 0})

	s := installer.NewScriptStep(profile.Installer{
		Name: "ohmyzsh",
		URL:  srv.URL,
	}, runner, client)

	logger := mocks.NewLogger()
	ctx := step.NewRunContext(ports.ContextWithLogger(context.Background(), logger))
	require.NoError(t, s.Apply(ctx))

	warnings := logger.EntriesAt(ports.LevelWarning)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "unverified")
	assert.Equal(t, "ohmyzsh", warnings[0].Field("installer"))
	assert.Len(t, runner.CallsFor("sh"), 1)
}

func TestScriptStep_DownloadFailure(t *testing.T) {
	t.Parallel()

	srv, client := scriptServer(t, "not found", http.StatusNotFound)

	runner := mocks.NewCommandRunner()
	s := installer.NewScriptStep(profile.Installer{
		Name: "brave",
		URL:  srv.URL,
	}, runner, client)

	err := s.Apply(step.NewRunContext(context.Background()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "download failed")
	assert.Empty(t, runner.Calls())
}

func TestScriptStep_InterpreterFailureSurfacesStderr(t *testing.T) {
	t.Parallel()

	srv, client := scriptServer(t, scriptBody, http.StatusOK)

	runner := mocks.NewCommandRunner()
	runner.AddResult("sh", nil, ports.CommandResult{ExitCode: 1, Stderr: "unsupported distro"})

	s := installer.NewScriptStep(profile.Installer{
		Name:   "brave",
		URL:    srv.URL,
		SHA256: sha256Hex(scriptBody),
	}, runner, client)

	err := s.Apply(step.NewRunContext(context.Background()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported distro")
}

func TestScriptStep_CheckWithoutCreatesAlwaysApplies(t *testing.T) {
	t.Parallel()

	s := installer.NewScriptStep(profile.Installer{
		Name: "ohmyzsh",
		URL:  "https://example.com/install.sh",
	}, mocks.NewCommandRunner(), nil)

	status, err := s.Check(step.NewRunContext(context.Background()))
	require.NoError(t, err)
	assert.Equal(t, step.StatusNeedsApply, status)
	assert.Equal(t, step.PolicyBestEffort, s.Policy())
}

func TestScriptStep_CheckLooksUpCreatedBinary(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddBinary("brave-browser", "/usr/bin/brave-browser")

	s := installer.NewScriptStep(profile.Installer{
		Name:    "brave",
		URL:     "https://brave.com/install.sh",
		Creates: "brave-browser",
	}, runner, nil)

	status, err := s.Check(step.NewRunContext(context.Background()))
	require.NoError(t, err)
	assert.Equal(t, step.StatusSatisfied, status)

	missing := installer.NewScriptStep(profile.Installer{
		Name:    "starship",
		URL:     "https://starship.rs/install.sh",
		Creates: "starship",
	}, runner, nil)

	status, err = missing.Check(step.NewRunContext(context.Background()))
	require.NoError(t, err)
	assert.Equal(t, step.StatusNeedsApply, status)
}

func TestProvider_CompilePreservesOrder(t *testing.T) {
	t.Parallel()

	p := &profile.Profile{
		Installers: []profile.Installer{
			{Name: "brave", URL: "https://brave.com/install.sh"},
			{Name: "starship", URL: "https://starship.rs/install.sh"},
		},
	}

	steps, err := installer.NewProvider(mocks.NewCommandRunner()).Compile(
		step.NewCompileContext(p, profile.Settings{}))
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, "installer:script:brave", steps[0].ID().String())
	assert.Equal(t, "installer:script:starship", steps[1].ID().String())
}
