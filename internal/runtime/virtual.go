// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/invowk/taskr/internal/shellcmd"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// VirtualShell executes scripts on the embedded mvdan/sh interpreter.
// Scripts are parsed in the bash dialect.
type VirtualShell struct{}

// NewVirtualShell creates a VirtualShell.
func NewVirtualShell() *VirtualShell {
	return &VirtualShell{}
}

// Parse parses script into a program.
func (s *VirtualShell) Parse(script, name string) (*syntax.File, error) {
	prog, err := syntax.NewParser().Parse(strings.NewReader(script), name)
	if err != nil {
		return nil, fmt.Errorf("script syntax error: %w", err)
	}
	return prog, nil
}

// Execute runs prog on a fresh interpreter. Every call gets its own runner so
// shell state (variables, cwd changes) never leaks between hook steps.
func (s *VirtualShell) Execute(ctx context.Context, prog *syntax.File, ectx *ExecutionContext) *Result {
	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(EnvToSlice(ectx.Env)...)),
		interp.StdIO(ectx.IO.Stdin, ectx.IO.Stdout, ectx.IO.Stderr),
		interp.ExecHandlers(shellcmd.Middleware(ectx.Commands)),
	}
	if ectx.Dir != "" {
		opts = append(opts, interp.Dir(ectx.Dir))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return NewErrorResult(1, fmt.Errorf("failed to create interpreter: %w", err))
	}

	err = runner.Run(ctx, prog)
	if err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return NewExitCodeResult(ExitCode(exitStatus))
		}
		return NewErrorResult(1, fmt.Errorf("script execution failed: %w", err))
	}

	return NewExitCodeResult(0)
}
