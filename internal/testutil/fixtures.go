// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// MustWriteFile writes data to path, creating parent directories.
func MustWriteFile(t testing.TB, path, data string) {
	t.Helper()
	MustMkdirAll(t, filepath.Dir(path), 0o755)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// MustWriteExecutable writes an executable script to path.
func MustWriteExecutable(t testing.TB, path, data string) {
	t.Helper()
	MustMkdirAll(t, filepath.Dir(path), 0o755)
	if err := os.WriteFile(path, []byte(data), 0o755); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// WriteManifest writes dir/package.json and returns its path.
func WriteManifest(t testing.TB, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "package.json")
	MustWriteFile(t, path, contents)
	return path
}

// InstallPackage fakes an installed npm package under dir/node_modules/<name>.
// bin is encoded as the package's "bin" field (nil omits it). It returns
// the package folder.
func InstallPackage(t testing.TB, dir, name, version string, bin any) string {
	t.Helper()

	meta := map[string]any{"name": name, "version": version}
	if bin != nil {
		meta["bin"] = bin
	}
	data, err := json.Marshal(meta)
	if err != nil {
		t.Fatalf("failed to encode package.json for %s: %v", name, err)
	}

	folder := filepath.Join(dir, "node_modules", filepath.FromSlash(name))
	MustWriteFile(t, filepath.Join(folder, "package.json"), string(data))
	return folder
}

// MustMkdirAll creates a directory along with any necessary parents.
// The test fails immediately if the operation fails.
func MustMkdirAll(t testing.TB, path string, perm os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(path, perm); err != nil {
		t.Fatalf("failed to create directory %s: %v", path, err)
	}
}
