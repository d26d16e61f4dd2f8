// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"io"

	"github.com/invowk/taskr/internal/shellcmd"

	"mvdan.cc/sh/v3/syntax"
)

type (
	// Shell parses and runs task scripts.
	Shell interface {
		// Parse turns script text into a program. name is used in error positions.
		Parse(script, name string) (*syntax.File, error)
		// Execute runs prog to completion and reports its exit status.
		Execute(ctx context.Context, prog *syntax.File, ectx *ExecutionContext) *Result
	}

	// IOStreams groups the standard streams a script is attached to.
	IOStreams struct {
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// ExecutionContext contains everything a Shell needs to run one program.
	ExecutionContext struct {
		// Dir is the working directory of the script.
		Dir string
		// Env is the full environment of the script.
		Env map[string]string
		// Commands are consulted before PATH when the script runs a command.
		Commands shellcmd.Table
		// IO holds the script's standard streams.
		IO IOStreams
	}
)
