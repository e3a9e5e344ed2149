package step

import "github.com/mknopf/deskprep/internal/profile"

// Provider compiles one section of the profile into executable steps.
// Each provider handles a specific backend (apt, flatpak, snap, ...).
type Provider interface {
	// Name returns the provider's identifier (e.g., "apt", "snap").
	Name() string

	// Compile transforms its profile section into an ordered list of
	// steps. Returning an empty list is fine when the section is unset.
	Compile(ctx CompileContext) ([]Step, error)
}

// CompileContext provides the profile and resolved environment to
// providers during compilation.
type CompileContext struct {
	profile  *profile.Profile
	settings profile.Settings
}

// NewCompileContext creates a new CompileContext.
func NewCompileContext(p *profile.Profile, settings profile.Settings) CompileContext {
	return CompileContext{
		profile:  p,
		settings: settings,
	}
}

// Profile returns the profile being compiled.
func (c CompileContext) Profile() *profile.Profile {
	return c.profile
}

// Settings returns the resolved environment record.
func (c CompileContext) Settings() profile.Settings {
	return c.settings
}
