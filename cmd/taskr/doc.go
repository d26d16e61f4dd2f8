// SPDX-License-Identifier: MPL-2.0

// Package cmd implements the taskr command line.
//
// The App type is the composition root: it owns the configuration provider,
// the task file loader and the shell, and every subcommand reads its
// collaborators from it so tests can swap them.
package cmd
