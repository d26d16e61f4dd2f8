// SPDX-License-Identifier: MPL-2.0

package taskfile

import (
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/invowk/taskr/pkg/ordered"
	"github.com/invowk/taskr/pkg/platform"
)

const (
	// CUEFileName is the CUE task file name.
	CUEFileName = "taskr.cue"
	// YAMLFileName is the preferred YAML task file name.
	YAMLFileName = "taskr.yaml"
	// YMLFileName is the alternate YAML task file name.
	YMLFileName = "taskr.yml"
)

//go:embed taskfile_schema.cue
var schema []byte

var (
	// FileNames lists task file names in lookup order within one directory.
	FileNames = []string{CUEFileName, YAMLFileName, YMLFileName}

	// ErrNotFound is returned when no task file exists in the searched directories.
	ErrNotFound = errors.New("no task file found")
	// ErrNotLocal is returned when a local path is requested for a remote task file.
	ErrNotLocal = errors.New("only local configuration files are supported")
	// ErrUnsupportedFormat is returned for task files with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported task file format")
)

type (
	// Taskfile is a loaded task file.
	Taskfile struct {
		// Location is where the file was loaded from (file, http or https URL).
		Location *url.URL
		// Tasks maps task names to scripts in declaration order.
		Tasks *ordered.Map[string, string]
	}

	// Format identifies a task file encoding.
	Format string
)

const (
	// FormatCUE is the CUE encoding.
	FormatCUE Format = "cue"
	// FormatYAML is the YAML encoding.
	FormatYAML Format = "yaml"
)

// FormatOf detects the format from a file name or URL path extension.
func FormatOf(name string) (Format, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".cue":
		return FormatCUE, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
}

// IsLocal reports whether the task file was loaded from the local filesystem.
func (f *Taskfile) IsLocal() bool {
	return f.Location != nil && f.Location.Scheme == "file"
}

// LocalPath returns the filesystem path of a local task file, or ErrNotLocal.
func (f *Taskfile) LocalPath() (string, error) {
	if !f.IsLocal() {
		loc := "<none>"
		if f.Location != nil {
			loc = f.Location.String()
		}
		return "", fmt.Errorf("%w: %s", ErrNotLocal, loc)
	}
	return PathFromURL(f.Location), nil
}

// FileURL converts an absolute filesystem path to a file URL.
func FileURL(absPath string) *url.URL {
	p := filepath.ToSlash(absPath)
	if platform.IsWindows(runtime.GOOS) && !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return &url.URL{Scheme: "file", Path: p}
}

// PathFromURL converts a file URL to a filesystem path.
func PathFromURL(u *url.URL) string {
	p := u.Path
	if platform.IsWindows(runtime.GOOS) && len(p) > 2 && p[0] == '/' && p[2] == ':' {
		p = p[1:]
	}
	return filepath.FromSlash(p)
}

// ParseLocation interprets s as a file path (relative to baseDir), a file
// URL or an http(s) URL.
func ParseLocation(s, baseDir string) (*url.URL, error) {
	if u, err := url.Parse(s); err == nil {
		switch u.Scheme {
		case "http", "https":
			return u, nil
		case "file":
			return u, nil
		}
	}

	p := s
	if !filepath.IsAbs(p) {
		p = filepath.Join(baseDir, p)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return nil, fmt.Errorf("resolve task file path %s: %w", s, err)
	}
	return FileURL(abs), nil
}
