// Package profile defines the declarative provisioning profile and the
// resolved environment settings a run operates on.
package profile

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Profile is the declarative description of the desired machine state.
// It is compiled into an ordered list of steps by the registered providers.
type Profile struct {
	Apt        AptConfig       `yaml:"apt"`
	Flatpak    FlatpakConfig   `yaml:"flatpak"`
	Snap       SnapConfig      `yaml:"snap"`
	Installers []Installer     `yaml:"installers"`
	System     SystemConfig    `yaml:"system"`
	Dotfiles   []ConfigMapping `yaml:"dotfiles"`
}

// AptConfig describes the apt backend: source repositories to register
// and packages to install. Upgrade controls the initial update+upgrade.
type AptConfig struct {
	Upgrade  bool     `yaml:"upgrade"`
	Repos    []string `yaml:"repos"`
	Packages []string `yaml:"packages"`
}

// FlatpakConfig describes flatpak remotes and applications.
type FlatpakConfig struct {
	Remotes []FlatpakRemote `yaml:"remotes"`
	Apps    []FlatpakApp    `yaml:"apps"`
}

// FlatpakRemote is a named flatpak repository.
type FlatpakRemote struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// FlatpakApp is one application reference installed from a remote.
type FlatpakApp struct {
	ID     string `yaml:"id"`
	Remote string `yaml:"remote"`
}

// SnapConfig holds the AppList for the snap backend.
// Order among apps is irrelevant to the outcome but preserved for
// log readability.
type SnapConfig struct {
	Apps []SnapApp `yaml:"apps"`
}

// SnapApp is one snap application, optionally installed in classic
// confinement.
type SnapApp struct {
	Name    string `yaml:"name"`
	Classic bool   `yaml:"classic"`
}

// Installer describes a vendor-provided remote installer script.
// SHA256 optionally pins the script content; an empty pin is allowed
// but logged as a warning before execution.
type Installer struct {
	Name        string   `yaml:"name"`
	URL         string   `yaml:"url"`
	SHA256      string   `yaml:"sha256"`
	Interpreter []string `yaml:"interpreter"`
	// Creates names a binary whose presence on PATH marks the
	// installer as already applied. Empty means always run.
	Creates string `yaml:"creates"`
}

// SystemConfig describes group memberships and service units.
type SystemConfig struct {
	Groups   []string `yaml:"groups"`
	Services []string `yaml:"services"`
}

// ConfigMapping is a (remote repo, internal path, destination) triple
// used to sync one configuration directory into the config root.
type ConfigMapping struct {
	Name string `yaml:"name"`
	Repo string `yaml:"repo"`
	// Path is the path inside the clone to relocate; "." means the
	// whole clone.
	Path string `yaml:"path"`
	// Dest is the destination path relative to the config root;
	// defaults to Name when empty.
	Dest string `yaml:"dest"`
}

// Destination returns the destination relative to the config root.
func (m ConfigMapping) Destination() string {
	if m.Dest != "" {
		return m.Dest
	}
	return m.Name
}

// Parse decodes a YAML profile and validates it.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate rejects structurally incomplete profiles before any step runs.
func (p *Profile) Validate() error {
	for _, r := range p.Flatpak.Remotes {
		if r.Name == "" || r.URL == "" {
			return fmt.Errorf("flatpak remote requires both name and url")
		}
	}
	for _, a := range p.Flatpak.Apps {
		if a.ID == "" {
			return fmt.Errorf("flatpak app requires an id")
		}
	}
	for _, a := range p.Snap.Apps {
		if a.Name == "" {
			return fmt.Errorf("snap app requires a name")
		}
	}
	for _, inst := range p.Installers {
		if inst.Name == "" || inst.URL == "" {
			return fmt.Errorf("installer requires both name and url")
		}
	}
	for _, m := range p.Dotfiles {
		if m.Name == "" || m.Repo == "" {
			return fmt.Errorf("dotfile mapping requires both name and repo")
		}
	}
	return nil
}
