// SPDX-License-Identifier: MPL-2.0

package taskfile

import (
	"fmt"

	"github.com/invowk/taskr/pkg/cueutil"
	"github.com/invowk/taskr/pkg/ordered"

	"github.com/goccy/go-yaml"
)

// Parse decodes task file contents. The name selects the format and is used
// in error messages.
func Parse(data []byte, name string) (*ordered.Map[string, string], error) {
	format, err := FormatOf(name)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatCUE:
		return parseCUE(data, name)
	default:
		return parseYAML(data, name)
	}
}

func parseCUE(data []byte, name string) (*ordered.Map[string, string], error) {
	unified, err := cueutil.Unify(schema, data, "#Taskfile", cueutil.WithFilename(name))
	if err != nil {
		return nil, err
	}
	return cueutil.StringFields(unified, "tasks")
}

func parseYAML(data []byte, name string) (*ordered.Map[string, string], error) {
	tasks := ordered.New[string, string]()

	var doc any
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if doc == nil {
		return tasks, nil
	}

	root, ok := doc.(yaml.MapSlice)
	if !ok {
		return nil, fmt.Errorf("%s: top level must be a mapping", name)
	}

	for _, item := range root {
		key, _ := item.Key.(string)
		if key != "tasks" {
			return nil, fmt.Errorf("%s: unknown field %v", name, item.Key)
		}
		if item.Value == nil {
			continue
		}
		entries, ok := item.Value.(yaml.MapSlice)
		if !ok {
			return nil, fmt.Errorf("%s: tasks must be a mapping", name)
		}
		for _, entry := range entries {
			taskName := fmt.Sprint(entry.Key)
			script, ok := entry.Value.(string)
			if !ok {
				return nil, fmt.Errorf("%s: tasks.%s: script must be a string, got %T", name, taskName, entry.Value)
			}
			tasks.Set(taskName, script)
		}
	}
	return tasks, nil
}
