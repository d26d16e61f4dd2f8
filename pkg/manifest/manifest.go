// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invowk/taskr/pkg/ordered"
)

// FileName is the manifest file name.
const FileName = "package.json"

// ErrNotFound is returned when no manifest exists in the searched directories.
var ErrNotFound = errors.New("no package.json found")

type (
	// Manifest is a parsed package.json.
	Manifest struct {
		// Path is the absolute path of the manifest file.
		Path string
		// Name is the package name (may be empty for private projects).
		Name string
		// Version is the package version (may be empty).
		Version string
		// Scripts maps script names to shell scripts in declaration order.
		Scripts *ordered.Map[string, string]

		dependencies         *ordered.Map[string, string]
		devDependencies      *ordered.Map[string, string]
		optionalDependencies *ordered.Map[string, string]
	}

	// Dependency is one declared dependency with its parsed requirement.
	Dependency struct {
		// Name is the key under which the dependency is declared (and installed).
		Name string
		// Raw is the requirement string as written.
		Raw string
		// Requirement is the parsed requirement; nil when Err is set.
		Requirement *Requirement
		// Err is set when Raw could not be parsed.
		Err error
	}

	rawManifest struct {
		Name                 string                       `json:"name"`
		Version              string                       `json:"version"`
		Scripts              *ordered.Map[string, string] `json:"scripts"`
		Dependencies         *ordered.Map[string, string] `json:"dependencies"`
		DevDependencies      *ordered.Map[string, string] `json:"devDependencies"`
		OptionalDependencies *ordered.Map[string, string] `json:"optionalDependencies"`
	}
)

// Parse decodes manifest contents. path is recorded as the manifest location.
func Parse(data []byte, path string) (*Manifest, error) {
	var raw rawManifest
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	m := &Manifest{
		Path:                 path,
		Name:                 raw.Name,
		Version:              raw.Version,
		Scripts:              raw.Scripts,
		dependencies:         raw.Dependencies,
		devDependencies:      raw.DevDependencies,
		optionalDependencies: raw.OptionalDependencies,
	}
	if m.Scripts == nil {
		m.Scripts = ordered.New[string, string]()
	}
	return m, nil
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve manifest path: %w", err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data, abs)
}

// Discover walks up from startDir and loads the first package.json found.
// It returns ErrNotFound when none exists.
func Discover(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("resolve start directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return Load(candidate)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, ErrNotFound
		}
		dir = parent
	}
}

// Dir returns the directory containing the manifest.
func (m *Manifest) Dir() string {
	return filepath.Dir(m.Path)
}

// Dependencies returns declared dependencies in declaration order:
// dependencies, then devDependencies, then optionalDependencies. A name
// declared in more than one group is reported once, from its first group.
func (m *Manifest) Dependencies() []Dependency {
	var deps []Dependency
	seen := make(map[string]struct{})

	for _, group := range []*ordered.Map[string, string]{m.dependencies, m.devDependencies, m.optionalDependencies} {
		for name, raw := range group.All() {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}

			req, err := ParseRequirement(raw)
			deps = append(deps, Dependency{Name: name, Raw: raw, Requirement: req, Err: err})
		}
	}
	return deps
}
