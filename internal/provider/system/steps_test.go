package system_test

import (
	"context"
	"testing"

	"github.com/mknopf/deskprep/internal/domain/step"
	"github.com/mknopf/deskprep/internal/ports"
	"github.com/mknopf/deskprep/internal/profile"
	"github.com/mknopf/deskprep/internal/provider/system"
	"github.com/mknopf/deskprep/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_CompileGroupsBeforeServices(t *testing.T) {
	t.Parallel()

	p := &profile.Profile{
		System: profile.SystemConfig{
			Groups:   []string{"libvirt", "kvm"},
			Services: []string{"libvirtd"},
		},
	}
	settings := profile.Settings{User: "alex"}

	steps, err := system.NewProvider(mocks.NewCommandRunner()).Compile(
		step.NewCompileContext(p, settings))
	require.NoError(t, err)
	require.Len(t, steps, 3)

	assert.Equal(t, "system:group:libvirt", steps[0].ID().String())
	assert.Equal(t, "system:group:kvm", steps[1].ID().String())
	assert.Equal(t, "system:service:libvirtd", steps[2].ID().String())
}

func TestGroupStep_Check(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		groups string
		want   step.StepStatus
	}{
		{
			name:   "already a member",
			groups: "alex adm sudo libvirt kvm\n",
			want:   step.StatusSatisfied,
		},
		{
			name:   "not a member",
			groups: "alex adm sudo\n",
			want:   step.StatusNeedsApply,
		},
		{
			name:   "group name is not matched as substring",
			groups: "alex libvirt-qemu\n",
			want:   step.StatusNeedsApply,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			runner := mocks.NewCommandRunner()
			runner.AddResult("id", []string{"-nG", "alex"},
				ports.CommandResult{ExitCode: 0, Stdout: tt.groups})

			s := system.NewGroupStep("alex", "libvirt", runner)
			status, err := s.Check(step.NewRunContext(context.Background()))
			require.NoError(t, err)
			assert.Equal(t, tt.want, status)
		})
	}
}

func TestGroupStep_ApplyAddsUserToGroup(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("sudo", []string{"usermod", "-aG", "libvirt", "alex"},
		ports.CommandResult{ExitCode: 0})

	s := system.NewGroupStep("alex", "libvirt", runner)
	require.NoError(t, s.Apply(step.NewRunContext(context.Background())))

	calls := runner.CallsFor("sudo")
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"usermod", "-aG", "libvirt", "alex"}, calls[0].Args)
}

func TestGroupStep_NoticeNamesGroup(t *testing.T) {
	t.Parallel()

	s := system.NewGroupStep("alex", "libvirt", mocks.NewCommandRunner())
	notice := step.NoticeOf(s)
	assert.Contains(t, notice, "libvirt")
	assert.Contains(t, notice, "log out")
}

func TestServiceStep_Check(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		enabled int
		active  int
		want    step.StepStatus
	}{
		{name: "enabled and active", enabled: 0, active: 0, want: step.StatusSatisfied},
		{name: "enabled but stopped", enabled: 0, active: 3, want: step.StatusNeedsApply},
		{name: "disabled", enabled: 1, active: 3, want: step.StatusNeedsApply},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			runner := mocks.NewCommandRunner()
			runner.AddResult("systemctl", []string{"is-enabled", "--quiet", "libvirtd"},
				ports.CommandResult{ExitCode: tt.enabled})
			runner.AddResult("systemctl", []string{"is-active", "--quiet", "libvirtd"},
				ports.CommandResult{ExitCode: tt.active})

			s := system.NewServiceStep("libvirtd", runner)
			status, err := s.Check(step.NewRunContext(context.Background()))
			require.NoError(t, err)
			assert.Equal(t, tt.want, status)
		})
	}
}

func TestServiceStep_ApplyEnablesAndStarts(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("sudo", []string{"systemctl", "enable", "--now", "libvirtd"},
		ports.CommandResult{ExitCode: 0})

	s := system.NewServiceStep("libvirtd", runner)
	require.NoError(t, s.Apply(step.NewRunContext(context.Background())))
}

func TestServiceStep_HasNoNotice(t *testing.T) {
	t.Parallel()

	s := system.NewServiceStep("libvirtd", mocks.NewCommandRunner())
	assert.Empty(t, step.NoticeOf(s))
}

func TestSatisfiedMessagesReadPerResource(t *testing.T) {
	t.Parallel()

	// "already installed" reads wrong for groups and services, so both
	// step kinds carry their own satisfied phrasing.
	group := system.NewGroupStep("alex", "libvirt", mocks.NewCommandRunner())
	msg := step.SatisfiedMessage(group)
	assert.Contains(t, msg, "alex")
	assert.Contains(t, msg, "libvirt")
	assert.NotContains(t, msg, "installed")

	service := system.NewServiceStep("libvirtd", mocks.NewCommandRunner())
	msg = step.SatisfiedMessage(service)
	assert.Contains(t, msg, "libvirtd")
	assert.Contains(t, msg, "enabled")
	assert.NotContains(t, msg, "installed")
}
