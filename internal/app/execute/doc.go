// SPDX-License-Identifier: MPL-2.0

// Package execute resolves a task name to a task source and runs it.
//
// Two sources compete for a name: the project task file (taskr.cue,
// taskr.yaml) and the scripts of package.json. The task file always wins.
// Scripts from package.json run with their "pre" and "post" hooks, the
// package bin directory on PATH and installed package binaries available
// as shell commands. Driver decouples this orchestration from the CLI
// layer, which only loads sources and renders results.
package execute
