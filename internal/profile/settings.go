package profile

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
)

// Settings is the environment record a run operates on. It is resolved
// exactly once at startup; nothing re-reads the environment ambiently
// after that.
type Settings struct {
	// User is the invoking account name.
	User string
	// Home is the invoking account's home directory.
	Home string
	// ConfigRoot is where synced configuration lands. Defaults to
	// $XDG_CONFIG_HOME, falling back to $HOME/.config.
	ConfigRoot string
	// LogDir is where the timestamped run log is created. Defaults to
	// the system temp directory.
	LogDir string
}

// ResolveSettings reads the environment once and returns the resolved
// record.
func ResolveSettings() (Settings, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Settings{}, fmt.Errorf("failed to resolve home directory: %w", err)
	}

	name := os.Getenv("USER")
	if u, err := user.Current(); err == nil && u.Username != "" {
		name = u.Username
	}
	if name == "" {
		return Settings{}, fmt.Errorf("failed to resolve invoking user name")
	}

	configRoot := os.Getenv("XDG_CONFIG_HOME")
	if configRoot == "" {
		configRoot = filepath.Join(home, ".config")
	}

	return Settings{
		User:       name,
		Home:       home,
		ConfigRoot: configRoot,
		LogDir:     os.TempDir(),
	}, nil
}
