package profile

import (
	_ "embed"
	"fmt"
	"os"
)

//go:embed default.yaml
var defaultProfile []byte

// Default returns the built-in profile for a fresh Debian/GNOME desktop.
func Default() *Profile {
	p, err := Parse(defaultProfile)
	if err != nil {
		// The embedded profile is validated by tests; a parse failure
		// here is a build defect.
		panic("embedded default profile invalid: " + err.Error())
	}
	return p
}

// Load reads a profile from the given path, or the built-in default
// when path is empty.
func Load(path string) (*Profile, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}
	return Parse(data)
}
