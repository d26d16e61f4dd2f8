// SPDX-License-Identifier: MPL-2.0

package shellcmd

import (
	"context"
	"fmt"

	"github.com/invowk/taskr/internal/npm"
)

// RunPackageName is the command bound to RunPackageHandler.
const RunPackageName = "npx"

type (
	// PackageBinHandler runs one binary of an installed npm package by
	// re-invoking the host tool's exec capability.
	PackageBinHandler struct {
		// Name is the binary name as registered in the table.
		Name string
		// Package identifies the package that provides Name.
		Package npm.PackageNv
		// Host receives "exec -A <specifier> args...".
		Host Handler
	}

	// RunPackageHandler implements npx on top of the command table.
	RunPackageHandler struct{}
)

// Specifier returns the fully qualified package specifier for the binary.
// The "/<bin>" suffix is only present when the binary and package names differ.
func (h *PackageBinHandler) Specifier() string {
	spec := "npm:" + h.Package.String()
	if h.Name != h.Package.Name {
		spec += "/" + h.Name
	}
	return spec
}

// Run implements Handler.
func (h *PackageBinHandler) Run(ctx context.Context, hc *HandlerContext) error {
	args := make([]string, 0, len(hc.Args)+3)
	args = append(args, "exec", "-A", h.Specifier())
	args = append(args, hc.Args...)
	return h.Host.Run(ctx, hc.WithArgs(args))
}

// Run implements Handler. The first argument is resolved against the same
// table, so "npx npx tsc" works.
func (RunPackageHandler) Run(ctx context.Context, hc *HandlerContext) error {
	if len(hc.Args) == 0 {
		fmt.Fprintln(hc.Stderr, "npx: missing command")
		return ExitStatus(1)
	}

	name := hc.Args[0]
	h, ok := hc.Commands.Lookup(name)
	if !ok {
		fmt.Fprintf(hc.Stderr, "npx: could not resolve command '%s'\n", name)
		return ExitStatus(1)
	}
	return h.Run(ctx, hc.WithArgs(hc.Args[1:]))
}
