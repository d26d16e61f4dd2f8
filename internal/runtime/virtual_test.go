// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/invowk/taskr/internal/shellcmd"
)

func execute(t *testing.T, script string, ectx *ExecutionContext) (*Result, string) {
	t.Helper()

	shell := NewVirtualShell()
	prog, err := shell.Parse(script, "test")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	var stdout bytes.Buffer
	if ectx == nil {
		ectx = &ExecutionContext{}
	}
	ectx.IO.Stdout = &stdout
	if ectx.IO.Stderr == nil {
		ectx.IO.Stderr = &bytes.Buffer{}
	}
	return shell.Execute(t.Context(), prog, ectx), stdout.String()
}

func TestVirtualShell_ExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		script string
		want   ExitCode
	}{
		{"exit 0", "exit 0", 0},
		{"exit 1", "exit 1", 1},
		{"exit 42", "exit 42", 42},
		{"false command", "false", 1},
		{"true command", "true", 0},
		{"last command wins", "false; true", 0},
		{"and list stops", "false && exit 7", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, _ := execute(t, tt.script, nil)
			if result.Error != nil {
				t.Fatalf("Execute() error = %v", result.Error)
			}
			if result.ExitCode != tt.want {
				t.Errorf("Execute() exit code = %d, want %d", result.ExitCode, tt.want)
			}
		})
	}
}

func TestVirtualShell_EnvAndDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	result, out := execute(t, `echo "$GREETING"; pwd`, &ExecutionContext{
		Dir: dir,
		Env: map[string]string{"GREETING": "hello"},
	})
	if !result.Success() {
		t.Fatalf("Execute() = %+v", result)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || lines[0] != "hello" || lines[1] != dir {
		t.Errorf("output = %q, want hello and %s", out, dir)
	}
}

func TestVirtualShell_CommandTable(t *testing.T) {
	t.Parallel()

	var got []string
	table := shellcmd.Table{
		"tsc": shellcmd.HandlerFunc(func(_ context.Context, hc *shellcmd.HandlerContext) error {
			got = hc.Args
			return shellcmd.ExitStatus(2)
		}),
	}

	result, _ := execute(t, `tsc --noEmit "src dir"`, &ExecutionContext{Commands: table})
	if result.ExitCode != 2 {
		t.Errorf("exit code = %d, want 2", result.ExitCode)
	}
	if len(got) != 2 || got[0] != "--noEmit" || got[1] != "src dir" {
		t.Errorf("args = %q", got)
	}
}

func TestVirtualShell_ParseError(t *testing.T) {
	t.Parallel()

	if _, err := NewVirtualShell().Parse("echo 'unterminated", "broken"); err == nil {
		t.Error("Parse() succeeded on an unterminated quote")
	}
}

func TestVirtualShell_BadDir(t *testing.T) {
	t.Parallel()

	result, _ := execute(t, "true", &ExecutionContext{Dir: "/definitely/not/here"})
	if result.Error == nil || result.ExitCode == 0 {
		t.Errorf("Execute() = %+v, want an infrastructure error", result)
	}
}

func TestVirtualShell_ContextCancellation(t *testing.T) {
	t.Parallel()

	shell := NewVirtualShell()
	prog, err := shell.Parse("while true; do true; done", "loop")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	result := shell.Execute(ctx, prog, &ExecutionContext{IO: IOStreams{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}})
	if result.Success() {
		t.Error("Execute() should fail when context is cancelled")
	}
}

func TestResult_Success(t *testing.T) {
	t.Parallel()

	if !NewExitCodeResult(0).Success() {
		t.Error("exit code 0 should succeed")
	}
	if NewExitCodeResult(2).Success() {
		t.Error("exit code 2 should fail")
	}
	if NewErrorResult(1, errors.New("boom")).Success() {
		t.Error("an error result should fail")
	}
}
