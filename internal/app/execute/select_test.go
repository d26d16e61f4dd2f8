// SPDX-License-Identifier: MPL-2.0

package execute

import (
	"errors"
	"testing"

	"github.com/invowk/taskr/pkg/ordered"
)

func taskMap(kv ...string) *TaskMap {
	m := ordered.New[string, string]()
	for i := 0; i+1 < len(kv); i += 2 {
		m.Set(kv[i], kv[i+1])
	}
	return m
}

func TestWithArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		script string
		args   []string
		want   string
	}{
		{name: "no args trims", script: "  echo hi  ", want: "echo hi"},
		{name: "plain args", script: "echo", args: []string{"a", "b c"}, want: `echo "a" "b c"`},
		{name: "double quotes escaped", script: "echo", args: []string{`say "hi"`}, want: `echo "say \"hi\""`},
		{name: "dollar escaped", script: "echo", args: []string{"$HOME", "$(rm -rf /)"}, want: `echo "\$HOME" "\$(rm -rf /)"`},
		{name: "empty script", args: []string{"x"}, want: `"x"`},
		{name: "empty arg", script: "echo", args: []string{""}, want: `echo ""`},
		{name: "backticks escaped", script: "echo", args: []string{"`id`"}, want: "echo \"\\`id\\`\""},
		{name: "trailing backslash", script: "echo", args: []string{`a\`, "b"}, want: `echo "a\\" "b"`},
		{name: "escaped quote stays escaped", script: "echo", args: []string{`\"`}, want: `echo "\\\""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := WithArgs(tt.script, tt.args); got != tt.want {
				t.Errorf("WithArgs(%q, %q) = %q, want %q", tt.script, tt.args, got, tt.want)
			}
		})
	}
}

func TestSelect(t *testing.T) {
	t.Parallel()

	tasks := taskMap("build", "make all", "lint", "golangci-lint run")
	scripts := taskMap("build", "tsc", "test", "jest")

	tests := []struct {
		name       string
		task       string
		tasks      *TaskMap
		scripts    *TaskMap
		wantSource Source
		wantScript string
		wantErr    error
	}{
		{name: "task file wins", task: "build", tasks: tasks, scripts: scripts, wantSource: SourceTaskfile, wantScript: "make all"},
		{name: "task file only", task: "lint", tasks: tasks, scripts: scripts, wantSource: SourceTaskfile, wantScript: "golangci-lint run"},
		{name: "manifest only", task: "test", tasks: tasks, scripts: scripts, wantSource: SourceManifest, wantScript: "jest"},
		{name: "no task file", task: "build", scripts: scripts, wantSource: SourceManifest, wantScript: "tsc"},
		{name: "no name", tasks: tasks, scripts: scripts, wantErr: ErrNoTaskName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Select(tt.task, tt.tasks, tt.scripts)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Select() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Select() error = %v", err)
			}
			if got.Source != tt.wantSource || got.Script != tt.wantScript || got.Name != tt.task {
				t.Errorf("Select() = %+v, want source %v script %q", got, tt.wantSource, tt.wantScript)
			}
		})
	}
}

func TestSelect_NotFound(t *testing.T) {
	t.Parallel()

	_, err := Select("deploy", taskMap("build", "make"), nil)
	var notFound *TaskNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Select() error = %v, want *TaskNotFoundError", err)
	}
	if notFound.Name != "deploy" {
		t.Errorf("Name = %q", notFound.Name)
	}
	if got, want := err.Error(), "Task not found: `deploy`"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestHookSteps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		scripts *TaskMap
		want    []string
	}{
		{name: "single step", scripts: taskMap("build", "echo build"), want: []string{"build"}},
		{
			name:    "pre and post",
			scripts: taskMap("postbuild", "echo post", "build", "echo build", "prebuild", "echo pre"),
			want:    []string{"prebuild", "build", "postbuild"},
		},
		{name: "pre only", scripts: taskMap("build", "b", "prebuild", "p"), want: []string{"prebuild", "build"}},
		{name: "unrelated prefix", scripts: taskMap("build", "b", "pre-build", "x"), want: []string{"build"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			steps := HookSteps("build", tt.scripts)
			if len(steps) != len(tt.want) {
				t.Fatalf("HookSteps() = %+v, want %v", steps, tt.want)
			}
			for i, step := range steps {
				if step.Name != tt.want[i] || step.Source != SourceManifest {
					t.Errorf("step %d = %+v, want %s", i, step, tt.want[i])
				}
			}
		})
	}
}

func TestAvailableTasks(t *testing.T) {
	t.Parallel()

	got := AvailableTasks(
		taskMap("lint", "golangci-lint run", "build", "make"),
		taskMap("test", "jest", "build", "tsc", "dev", "vite"),
	)
	want := []Task{
		{Name: "lint", Script: "golangci-lint run", Source: SourceTaskfile},
		{Name: "build", Script: "make", Source: SourceTaskfile},
		{Name: "test", Script: "jest", Source: SourceManifest},
		{Name: "dev", Script: "vite", Source: SourceManifest},
	}
	if len(got) != len(want) {
		t.Fatalf("AvailableTasks() = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AvailableTasks()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	if got := AvailableTasks(nil, nil); len(got) != 0 {
		t.Errorf("AvailableTasks(nil, nil) = %+v, want empty", got)
	}
}
