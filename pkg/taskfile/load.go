// SPDX-License-Identifier: MPL-2.0

package taskfile

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultFetchTimeout bounds remote task file downloads.
const DefaultFetchTimeout = 30 * time.Second

type (
	// Loader reads task files from local or remote locations.
	Loader struct {
		client *resty.Client
	}
)

// NewLoader creates a Loader with a default HTTP client.
func NewLoader() *Loader {
	return &Loader{
		client: resty.New().
			SetTimeout(DefaultFetchTimeout).
			SetHeader("Accept", "application/yaml, text/plain, */*"),
	}
}

// Load reads the task file at loc.
func (l *Loader) Load(ctx context.Context, loc *url.URL) (*Taskfile, error) {
	var (
		data []byte
		err  error
		name string
	)

	switch loc.Scheme {
	case "file":
		name = PathFromURL(loc)
		data, err = os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read task file: %w", err)
		}
	case "http", "https":
		name = loc.Path
		data, err = l.fetch(ctx, loc)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported task file location scheme %q", loc.Scheme)
	}

	tasks, err := Parse(data, name)
	if err != nil {
		return nil, err
	}
	return &Taskfile{Location: loc, Tasks: tasks}, nil
}

func (l *Loader) fetch(ctx context.Context, loc *url.URL) ([]byte, error) {
	resp, err := l.client.R().SetContext(ctx).Get(loc.String())
	if err != nil {
		return nil, fmt.Errorf("fetch task file %s: %w", loc, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch task file %s: unexpected status %s", loc, resp.Status())
	}
	return resp.Body(), nil
}

// Discover walks up from startDir and returns the URL of the first task file
// found. It returns ErrNotFound when none exists.
func Discover(startDir string) (*url.URL, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("resolve start directory: %w", err)
	}

	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			info, err := os.Stat(candidate)
			if err == nil && !info.IsDir() {
				return FileURL(candidate), nil
			}
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("stat %s: %w", candidate, err)
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, ErrNotFound
		}
		dir = parent
	}
}
