// SPDX-License-Identifier: MPL-2.0

package execute

import (
	"context"
	"errors"
	"net/url"

	"github.com/invowk/taskr/pkg/manifest"
	"github.com/invowk/taskr/pkg/taskfile"
)

// Sources are the task definitions visible from a directory. Either may be nil.
type Sources struct {
	Taskfile *taskfile.Taskfile
	Manifest *manifest.Manifest
}

// LoadSources loads the task file at location (a path, file URL or http(s)
// URL) or, when location is empty, the first task file found walking up
// from startDir. The nearest package.json is loaded alongside. A missing
// task file or manifest is not an error.
func LoadSources(ctx context.Context, loader *taskfile.Loader, startDir, location string) (*Sources, error) {
	var (
		src Sources
		err error
	)

	loc, err := locateTaskfile(startDir, location)
	if err != nil {
		return nil, err
	}
	if loc != nil {
		if src.Taskfile, err = loader.Load(ctx, loc); err != nil {
			return nil, err
		}
	}

	src.Manifest, err = manifest.Discover(startDir)
	if err != nil && !errors.Is(err, manifest.ErrNotFound) {
		return nil, err
	}
	return &src, nil
}

// Tasks returns the task file map, or nil.
func (s *Sources) Tasks() *TaskMap {
	if s == nil || s.Taskfile == nil {
		return nil
	}
	return s.Taskfile.Tasks
}

// Scripts returns the package.json scripts, or nil.
func (s *Sources) Scripts() *TaskMap {
	if s == nil || s.Manifest == nil {
		return nil
	}
	return s.Manifest.Scripts
}

func locateTaskfile(startDir, location string) (loc *url.URL, err error) {
	if location != "" {
		return taskfile.ParseLocation(location, startDir)
	}
	loc, err = taskfile.Discover(startDir)
	if errors.Is(err, taskfile.ErrNotFound) {
		return nil, nil
	}
	return loc, err
}
