// Package validation provides input validation utilities to prevent
// command injection and path traversal through profile values.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Common validation errors.
var (
	ErrEmptyInput         = errors.New("input cannot be empty")
	ErrInvalidPackageName = errors.New("invalid package name")
	ErrInvalidRepoSpec    = errors.New("invalid repository spec")
	ErrInvalidURL         = errors.New("invalid URL")
	ErrInvalidRemoteName  = errors.New("invalid flatpak remote name")
	ErrInvalidAppID       = errors.New("invalid flatpak app ID")
	ErrInvalidSnapName    = errors.New("invalid snap name")
	ErrInvalidGroupName   = errors.New("invalid group name")
	ErrInvalidUnitName    = errors.New("invalid service unit name")
	ErrInvalidGitURL      = errors.New("invalid git URL")
	ErrPathTraversal      = errors.New("path traversal detected")
)

// Compiled regex patterns for validation (compiled once for performance).
var (
	// packageNameRegex matches valid apt package names.
	// Examples: "git", "gnome-software-plugin-flatpak", "g++"
	packageNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9._+-]*$`)

	// repoSpecRegex matches "ppa:owner/name" or "owner/name" specs.
	repoSpecRegex = regexp.MustCompile(`^(ppa:)?[a-zA-Z0-9_-]+/[a-zA-Z0-9_.-]+$`)

	// urlRegex matches HTTPS URLs; installer and flatpak endpoints are
	// HTTPS only.
	urlRegex = regexp.MustCompile(`^https://[a-zA-Z0-9][a-zA-Z0-9._-]*(:[0-9]+)?(/[a-zA-Z0-9._~%/?=&+-]*)?$`)

	// remoteNameRegex matches flatpak remote names.
	// Examples: "flathub", "gnome-nightly"
	remoteNameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9._-]*$`)

	// appIDRegex matches reverse-DNS flatpak application IDs.
	// Examples: "com.spotify.Client", "org.signal.Signal"
	appIDRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*(\.[a-zA-Z0-9][a-zA-Z0-9_-]*){2,}$`)

	// snapNameRegex matches snap store names: lowercase, digits and
	// single hyphens.
	// Examples: "nvim", "alacritty", "go"
	snapNameRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

	// groupNameRegex matches POSIX group names.
	// Examples: "libvirt", "kvm"
	groupNameRegex = regexp.MustCompile(`^[a-z_][a-z0-9_-]*$`)

	// unitNameRegex matches systemd unit names without a type suffix.
	// Examples: "libvirtd", "docker"
	unitNameRegex = regexp.MustCompile(`^[a-zA-Z0-9:_.\\-]+$`)
)

// ValidatePackageName checks an apt package name.
func ValidatePackageName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyInput
	}
	if !packageNameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidPackageName, name)
	}
	return nil
}

// ValidateRepoSpec checks an apt repository spec.
func ValidateRepoSpec(spec string) error {
	if strings.TrimSpace(spec) == "" {
		return ErrEmptyInput
	}
	if !repoSpecRegex.MatchString(spec) {
		return fmt.Errorf("%w: %q", ErrInvalidRepoSpec, spec)
	}
	return nil
}

// ValidateURL checks an HTTPS endpoint URL.
func ValidateURL(url string) error {
	if strings.TrimSpace(url) == "" {
		return ErrEmptyInput
	}
	if !urlRegex.MatchString(url) {
		return fmt.Errorf("%w: %q", ErrInvalidURL, url)
	}
	return nil
}

// ValidateRemoteName checks a flatpak remote name.
func ValidateRemoteName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyInput
	}
	if !remoteNameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidRemoteName, name)
	}
	return nil
}

// ValidateAppID checks a flatpak application ID.
func ValidateAppID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrEmptyInput
	}
	if !appIDRegex.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidAppID, id)
	}
	return nil
}

// ValidateSnapName checks a snap application name.
func ValidateSnapName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyInput
	}
	if !snapNameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidSnapName, name)
	}
	return nil
}

// ValidateGroupName checks a system group name.
func ValidateGroupName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyInput
	}
	if !groupNameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidGroupName, name)
	}
	return nil
}

// ValidateUnitName checks a systemd unit name.
func ValidateUnitName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyInput
	}
	if !unitNameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidUnitName, name)
	}
	return nil
}

// ValidateGitURL checks a git clone URL: HTTPS or scp-like SSH.
func ValidateGitURL(url string) error {
	if strings.TrimSpace(url) == "" {
		return ErrEmptyInput
	}
	if strings.HasPrefix(url, "https://") {
		return ValidateURL(url)
	}
	// scp-like: git@host:owner/repo.git
	if matched, _ := regexp.MatchString(`^[a-z0-9_-]+@[a-zA-Z0-9._-]+:[a-zA-Z0-9._/-]+$`, url); matched {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidGitURL, url)
}

// ValidateRelativePath rejects absolute paths and traversal segments in
// profile-supplied paths.
func ValidateRelativePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return ErrEmptyInput
	}
	if strings.HasPrefix(path, "/") {
		return fmt.Errorf("%w: %q", ErrPathTraversal, path)
	}
	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return fmt.Errorf("%w: %q", ErrPathTraversal, path)
		}
	}
	return nil
}
