// SPDX-License-Identifier: MPL-2.0

package execute

import (
	"github.com/invowk/taskr/pkg/ordered"
)

// Task source constants.
const (
	SourceTaskfile Source = iota
	SourceManifest
)

type (
	// Source identifies where a task is defined.
	Source int

	// TaskMap maps task names to scripts in declaration order.
	TaskMap = ordered.Map[string, string]

	// Task is one named script.
	Task struct {
		Name   string
		Script string
		Source Source
	}
)

// String returns the display name of the source.
func (s Source) String() string {
	switch s {
	case SourceTaskfile:
		return "taskfile"
	case SourceManifest:
		return "package.json"
	default:
		return "unknown"
	}
}

// Select picks the source that owns name. The task file map takes
// absolute precedence over the package.json scripts. Either map may be nil.
func Select(name string, tasks, scripts *TaskMap) (Task, error) {
	if name == "" {
		return Task{}, ErrNoTaskName
	}
	if script, ok := tasks.Get(name); ok {
		return Task{Name: name, Script: script, Source: SourceTaskfile}, nil
	}
	if script, ok := scripts.Get(name); ok {
		return Task{Name: name, Script: script, Source: SourceManifest}, nil
	}
	return Task{}, &TaskNotFoundError{Name: name}
}

// HookSteps returns the package.json steps for name: "pre<name>", name and
// "post<name>", each only when defined.
func HookSteps(name string, scripts *TaskMap) []Task {
	var steps []Task
	for _, step := range []string{"pre" + name, name, "post" + name} {
		if script, ok := scripts.Get(step); ok {
			steps = append(steps, Task{Name: step, Script: script, Source: SourceManifest})
		}
	}
	return steps
}

// AvailableTasks lists the task file entries in declaration order followed
// by the package.json scripts the task file does not shadow.
func AvailableTasks(tasks, scripts *TaskMap) []Task {
	var out []Task
	for name, script := range tasks.All() {
		out = append(out, Task{Name: name, Script: script, Source: SourceTaskfile})
	}
	for name, script := range scripts.All() {
		if tasks.Has(name) {
			continue
		}
		out = append(out, Task{Name: name, Script: script, Source: SourceManifest})
	}
	return out
}
