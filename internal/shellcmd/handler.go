// SPDX-License-Identifier: MPL-2.0

package shellcmd

import (
	"context"
	"errors"
	"io"
	"slices"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
)

type (
	// Handler runs a command inside the virtual shell.
	//
	// A non-zero exit status is reported as an interp.ExitStatus error; any
	// other error aborts the script.
	Handler interface {
		Run(ctx context.Context, hc *HandlerContext) error
	}

	// HandlerFunc adapts a function to the Handler interface.
	HandlerFunc func(ctx context.Context, hc *HandlerContext) error

	// HandlerContext is the execution context of one command invocation.
	// It is extracted from mvdan/sh's interp.HandlerCtx.
	HandlerContext struct {
		// Args are the command arguments, without the command name.
		Args []string
		// Stdin is the input stream for the command.
		Stdin io.Reader
		// Stdout is the output stream for the command.
		Stdout io.Writer
		// Stderr is the error output stream for the command.
		Stderr io.Writer
		// Dir is the current working directory of the shell.
		Dir string
		// Env holds the exported variables as "KEY=VALUE" strings.
		Env []string
		// Commands is the table the command was resolved from.
		Commands Table
	}
)

// Run calls f(ctx, hc).
func (f HandlerFunc) Run(ctx context.Context, hc *HandlerContext) error { return f(ctx, hc) }

// WithArgs returns a copy of hc with Args replaced.
func (hc *HandlerContext) WithArgs(args []string) *HandlerContext {
	clone := *hc
	clone.Args = args
	return &clone
}

// Environ returns hc.Env as an expand.Environ for PATH lookups.
func (hc *HandlerContext) Environ() expand.Environ {
	return expand.ListEnviron(hc.Env...)
}

// ExtractHandlerContext builds a HandlerContext from mvdan/sh's handler
// context. args[0] is the command name and is dropped.
func ExtractHandlerContext(ctx context.Context, args []string, table Table) *HandlerContext {
	shc := interp.HandlerCtx(ctx)

	var env []string
	shc.Env.Each(func(name string, vr expand.Variable) bool {
		if vr.Exported && vr.Kind == expand.String {
			env = append(env, name+"="+vr.Str)
		}
		return true
	})
	slices.Sort(env)

	return &HandlerContext{
		Args:     slices.Clone(args[1:]),
		Stdin:    shc.Stdin,
		Stdout:   shc.Stdout,
		Stderr:   shc.Stderr,
		Dir:      shc.Dir,
		Env:      env,
		Commands: table,
	}
}

// ExitStatus converts an exit code into the error a Handler returns.
// Code 0 yields nil.
func ExitStatus(code int) error {
	if code == 0 {
		return nil
	}
	if code < 0 || code > 255 {
		code = 1
	}
	return interp.ExitStatus(uint8(code))
}

// ExitCode decodes a Handler error back into an exit code. nil is 0, an
// interp.ExitStatus is its value and any other error is 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var status interp.ExitStatus
	if errors.As(err, &status) {
		return int(status)
	}
	return 1
}
