// SPDX-License-Identifier: MPL-2.0

package shellcmd

import (
	"context"
	"fmt"

	"github.com/invowk/taskr/internal/npm"
)

type (
	// PackageSource lists installed top-level packages and their binaries.
	PackageSource interface {
		TopLevelPackages(ctx context.Context) ([]npm.PackageNv, error)
		PackageFolder(nv npm.PackageNv) (string, error)
		BinaryNames(folder string) ([]string, error)
	}

	// ResolutionError reports a package whose folder or binaries could not
	// be determined while building the table.
	ResolutionError struct {
		Package npm.PackageNv
		Err     error
	}
)

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	if e.Package.Name == "" {
		return fmt.Sprintf("failed to resolve npm packages: %v", e.Err)
	}
	return fmt.Sprintf("failed to resolve binaries of npm package '%s': %v", e.Package, e.Err)
}

// Unwrap returns the underlying error.
func (e *ResolutionError) Unwrap() error { return e.Err }

// Resolve builds the command table from src. For each package in source
// order every binary is registered; a later package overwrites an earlier
// one with the same binary name. npx is added last unless a package
// already provides it. A nil host defaults to SelfHandler.
func Resolve(ctx context.Context, src PackageSource, host Handler) (Table, error) {
	if host == nil {
		self, err := SelfHandler()
		if err != nil {
			return nil, err
		}
		host = self
	}

	packages, err := src.TopLevelPackages(ctx)
	if err != nil {
		return nil, &ResolutionError{Err: err}
	}

	table := make(Table)
	for _, nv := range packages {
		folder, err := src.PackageFolder(nv)
		if err != nil {
			return nil, &ResolutionError{Package: nv, Err: err}
		}
		bins, err := src.BinaryNames(folder)
		if err != nil {
			return nil, &ResolutionError{Package: nv, Err: err}
		}
		for _, bin := range bins {
			table[bin] = &PackageBinHandler{Name: bin, Package: nv, Host: host}
		}
	}

	if _, claimed := table[RunPackageName]; !claimed {
		table[RunPackageName] = RunPackageHandler{}
	}
	return table, nil
}
