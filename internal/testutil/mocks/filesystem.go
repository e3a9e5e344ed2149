package mocks

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mknopf/deskprep/internal/ports"
)

// FileSystem is an in-memory test double for ports.FileSystem.
// Directories are tracked implicitly: a path is a directory when it was
// created via MkdirAll or has children.
type FileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]bool
	// RenameErr, when set, is returned by the next Rename call.
	RenameErr error
}

// NewFileSystem creates a new FileSystem mock.
func NewFileSystem() *FileSystem {
	return &FileSystem{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

// ReadFile reads a stored file.
func (m *FileSystem) ReadFile(path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if data, ok := m.files[path]; ok {
		return data, nil
	}
	return nil, fmt.Errorf("file not found: %s", path)
}

// WriteFile stores a file.
func (m *FileSystem) WriteFile(path string, data []byte, _ os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = data
	return nil
}

// Exists returns true if the path is a known file or directory.
func (m *FileSystem) Exists(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.exists(path)
}

func (m *FileSystem) exists(path string) bool {
	if _, ok := m.files[path]; ok {
		return true
	}
	if m.dirs[path] {
		return true
	}
	prefix := path + string(filepath.Separator)
	for p := range m.files {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	for p := range m.dirs {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

// IsDir returns true if the path is a known directory.
func (m *FileSystem) IsDir(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.dirs[path] {
		return true
	}
	prefix := path + string(filepath.Separator)
	for p := range m.files {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

// MkdirAll records a directory.
func (m *FileSystem) MkdirAll(path string, _ os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[path] = true
	return nil
}

// Remove deletes a single file or empty directory.
func (m *FileSystem) Remove(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[path]; ok {
		delete(m.files, path)
		return nil
	}
	if m.dirs[path] {
		delete(m.dirs, path)
		return nil
	}
	return fmt.Errorf("file not found: %s", path)
}

// RemoveAll deletes a path and everything under it. Removing a missing
// path is a no-op, matching os.RemoveAll.
func (m *FileSystem) RemoveAll(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	prefix := path + string(filepath.Separator)
	delete(m.files, path)
	delete(m.dirs, path)
	for p := range m.files {
		if strings.HasPrefix(p, prefix) {
			delete(m.files, p)
		}
	}
	for p := range m.dirs {
		if strings.HasPrefix(p, prefix) {
			delete(m.dirs, p)
		}
	}
	return nil
}

// Rename moves a file or directory tree.
func (m *FileSystem) Rename(oldPath, newPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.RenameErr != nil {
		err := m.RenameErr
		m.RenameErr = nil
		return err
	}

	if !m.exists(oldPath) {
		return fmt.Errorf("file not found: %s", oldPath)
	}

	if data, ok := m.files[oldPath]; ok {
		m.files[newPath] = data
		delete(m.files, oldPath)
		return nil
	}

	prefix := oldPath + string(filepath.Separator)
	moved := make(map[string][]byte)
	for p, data := range m.files {
		if strings.HasPrefix(p, prefix) {
			moved[newPath+string(filepath.Separator)+strings.TrimPrefix(p, prefix)] = data
			delete(m.files, p)
		}
	}
	for p, data := range moved {
		m.files[p] = data
	}
	if m.dirs[oldPath] {
		delete(m.dirs, oldPath)
	}
	m.dirs[newPath] = true
	for p := range m.dirs {
		if strings.HasPrefix(p, prefix) {
			delete(m.dirs, p)
			m.dirs[newPath+string(filepath.Separator)+strings.TrimPrefix(p, prefix)] = true
		}
	}
	return nil
}

// AddDir seeds a directory into the mock.
func (m *FileSystem) AddDir(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[path] = true
}

// AddFile seeds a file into the mock.
func (m *FileSystem) AddFile(path string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = data
}

// Ensure FileSystem implements ports.FileSystem.
var _ ports.FileSystem = (*FileSystem)(nil)
