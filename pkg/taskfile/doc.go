// SPDX-License-Identifier: MPL-2.0

// Package taskfile loads the project task file, the primary task source.
//
// A task file is named taskr.cue, taskr.yaml or taskr.yml and maps task
// names to shell scripts:
//
//	tasks: {
//		build: "go build ./..."
//		test:  "go test ./..."
//	}
//
// Task order is declaration order. A task file is addressed by URL so that a
// remote file (http or https) can be listed; only local files can run tasks.
package taskfile
