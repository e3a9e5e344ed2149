package step_test

import (
	"testing"

	"github.com/mknopf/deskprep/internal/domain/step"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStepID_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
	}{
		{"simple", "apt"},
		{"two segments", "apt:refresh"},
		{"three segments", "apt:package:git"},
		{"with dots", "flatpak:app:com.spotify.Client"},
		{"with slash", "apt:repo:ppa-git-core/ppa"},
		{"with hyphen", "system:service:libvirtd"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			id, err := step.NewStepID(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.value, id.String())
		})
	}
}

func TestNewStepID_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"leading colon", ":apt"},
		{"trailing colon", "apt:"},
		{"space inside", "apt: package"},
		{"double colon", "apt::package"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := step.NewStepID(tt.value)
			assert.Error(t, err)
		})
	}
}

func TestStepID_Provider(t *testing.T) {
	t.Parallel()

	id := step.MustNewStepID("snap:app:nvim")
	assert.Equal(t, "snap", id.Provider())
}

func TestStepID_Equals(t *testing.T) {
	t.Parallel()

	a := step.MustNewStepID("apt:package:git")
	b := step.MustNewStepID("apt:package:git")
	c := step.MustNewStepID("apt:package:curl")

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

func TestStepID_IsZero(t *testing.T) {
	t.Parallel()

	var zero step.StepID
	assert.True(t, zero.IsZero())
	assert.False(t, step.MustNewStepID("apt").IsZero())
}

func TestMustNewStepID_PanicsOnInvalid(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		step.MustNewStepID(":bad:")
	})
}
