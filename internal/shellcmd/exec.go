// SPDX-License-Identifier: MPL-2.0

package shellcmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"mvdan.cc/sh/v3/interp"
)

// ExecutableHandler runs an external program with the handler context's
// directory, environment and streams.
type ExecutableHandler struct {
	// Path is an absolute path, or a name looked up in the shell's PATH.
	Path string
}

// SelfHandler returns an ExecutableHandler for the running taskr binary.
func SelfHandler() (*ExecutableHandler, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to locate taskr executable: %w", err)
	}
	return &ExecutableHandler{Path: exe}, nil
}

// Run implements Handler.
func (h *ExecutableHandler) Run(ctx context.Context, hc *HandlerContext) error {
	path := h.Path
	if !filepath.IsAbs(path) {
		resolved, err := interp.LookPathDir(hc.Dir, hc.Environ(), path)
		if err != nil {
			fmt.Fprintf(hc.Stderr, "%s: command not found\n", path)
			return ExitStatus(127)
		}
		path = resolved
	}

	cmd := exec.CommandContext(ctx, path, hc.Args...)
	cmd.Dir = hc.Dir
	cmd.Env = hc.Env
	cmd.Stdin = hc.Stdin
	cmd.Stdout = hc.Stdout
	cmd.Stderr = hc.Stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return ExitStatus(exitErr.ExitCode())
	}
	fmt.Fprintf(hc.Stderr, "%s: %v\n", filepath.Base(path), err)
	return ExitStatus(1)
}
