// Package testutil provides common test helpers for the venvx project.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TempProject creates an empty temporary project directory and returns its path.
func TempProject(t *testing.T) string {
	t.Helper()
	return t.TempDir()
}

// TempProjectWithVenv creates a temporary project directory containing a
// venv layout (pyvenv.cfg + bin directory) and returns the project path.
func TempProjectWithVenv(t *testing.T, pyVersion string) string {
	t.Helper()

	dir := t.TempDir()
	WriteVenv(t, filepath.Join(dir, "venv"), pyVersion)
	return dir
}

// WriteVenv writes a minimal venv layout at venvPath. The layout mimics what
// python -m venv produces, to the extent venvx reads it: pyvenv.cfg and bin/.
func WriteVenv(t *testing.T, venvPath, pyVersion string) {
	t.Helper()

	binDir := filepath.Join(venvPath, "bin")
	if err := os.MkdirAll(binDir, 0755); err != nil {
		t.Fatalf("WriteVenv: mkdir failed: %v", err)
	}

	cfg := "home = /usr/bin\nversion = " + pyVersion + "\nprompt = venv\n"
	if err := os.WriteFile(filepath.Join(venvPath, "pyvenv.cfg"), []byte(cfg), 0644); err != nil {
		t.Fatalf("WriteVenv: pyvenv.cfg write failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(binDir, "activate"), []byte("# venv activate\n"), 0644); err != nil {
		t.Fatalf("WriteVenv: activate write failed: %v", err)
	}
}

// TempConfigFile creates a temporary config.toml with the given content
// and returns its path. The file is automatically cleaned up.
func TempConfigFile(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("TempConfigFile: write failed: %v", err)
	}

	return path
}

// TempCachePath returns a path for a cache.json inside a fresh temp directory.
// The file itself is not created.
func TempCachePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "cache.json")
}
