// SPDX-License-Identifier: MPL-2.0

package npm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/invowk/taskr/pkg/manifest"
	"github.com/invowk/taskr/pkg/ordered"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMetaCacheSize bounds the number of cached package.json files.
const DefaultMetaCacheSize = 512

// ErrPackageNotInstalled is returned when a package folder has no package.json.
var ErrPackageNotInstalled = errors.New("package not installed")

type (
	// PackageMeta is the part of an installed package.json the resolver uses.
	PackageMeta struct {
		Name    string
		Version string
		// Bins maps binary names to paths relative to the package folder.
		Bins *ordered.Map[string, string]
	}

	rawPackageMeta struct {
		Name        string          `json:"name"`
		Version     string          `json:"version"`
		Bin         json.RawMessage `json:"bin"`
		Directories struct {
			Bin string `json:"bin"`
		} `json:"directories"`
	}

	metaEntry struct {
		meta    *PackageMeta
		size    int64
		modTime time.Time
	}

	// metaCache caches parsed package.json files keyed by folder. Entries
	// are revalidated against the file's size and modification time.
	metaCache struct {
		lru *lru.Cache[string, metaEntry]
	}
)

// ReadPackageMeta reads folder/package.json.
func ReadPackageMeta(folder string) (*PackageMeta, error) {
	data, err := os.ReadFile(filepath.Join(folder, manifest.FileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrPackageNotInstalled, folder)
		}
		return nil, err
	}
	return parsePackageMeta(data, folder)
}

func parsePackageMeta(data []byte, folder string) (*PackageMeta, error) {
	var raw rawPackageMeta
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Join(folder, manifest.FileName), err)
	}

	meta := &PackageMeta{Name: raw.Name, Version: raw.Version, Bins: ordered.New[string, string]()}

	bin := bytes.TrimSpace(raw.Bin)
	switch {
	case len(bin) > 0 && bin[0] == '"':
		var single string
		if err := json.Unmarshal(bin, &single); err != nil {
			return nil, fmt.Errorf("invalid bin field in %s: %w", folder, err)
		}
		meta.Bins.Set(UnscopedName(raw.Name), single)
	case len(bin) > 0 && bin[0] == '{':
		if err := json.Unmarshal(bin, meta.Bins); err != nil {
			return nil, fmt.Errorf("invalid bin field in %s: %w", folder, err)
		}
	case raw.Directories.Bin != "":
		dir := path.Clean(filepath.ToSlash(raw.Directories.Bin))
		entries, err := os.ReadDir(filepath.Join(folder, filepath.FromSlash(dir)))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read bin directory of %s: %w", folder, err)
		}
		// os.ReadDir returns entries sorted by name
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			meta.Bins.Set(e.Name(), path.Join(dir, e.Name()))
		}
	}

	return meta, nil
}

func newMetaCache(size int) (*metaCache, error) {
	c, err := lru.New[string, metaEntry](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create package metadata cache: %w", err)
	}
	return &metaCache{lru: c}, nil
}

// Load returns the metadata of folder, reading package.json only when the
// cached copy is missing or stale.
func (c *metaCache) Load(folder string) (*PackageMeta, error) {
	file := filepath.Join(folder, manifest.FileName)
	fi, err := os.Stat(file)
	if err != nil {
		c.lru.Remove(folder)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrPackageNotInstalled, folder)
		}
		return nil, err
	}

	if e, ok := c.lru.Get(folder); ok && e.size == fi.Size() && e.modTime.Equal(fi.ModTime()) {
		return e.meta, nil
	}

	meta, err := ReadPackageMeta(folder)
	if err != nil {
		return nil, err
	}
	c.lru.Add(folder, metaEntry{meta: meta, size: fi.Size(), modTime: fi.ModTime()})
	return meta, nil
}

// Purge drops every cached entry.
func (c *metaCache) Purge() { c.lru.Purge() }
