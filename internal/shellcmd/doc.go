// SPDX-License-Identifier: MPL-2.0

// Package shellcmd maps command names to in-process handlers for the
// virtual shell.
//
// A Table is built once per task invocation from the installed top-level
// npm packages: every binary a package exposes becomes a PackageBinHandler
// that re-invokes taskr's own `exec` capability with a fully qualified
// package specifier. The name "npx" is bound to RunPackageHandler unless a
// package claims it. Middleware plugs the table into mvdan/sh so table
// entries win over PATH lookup.
package shellcmd
