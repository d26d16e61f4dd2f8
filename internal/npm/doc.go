// SPDX-License-Identifier: MPL-2.0

// Package npm resolves npm packages installed in a node_modules tree.
//
// LocalResolver answers the questions the task driver asks about a
// manifest's dependencies: which top-level packages are installed, where
// they live and which binaries they expose. It can also run the configured
// install command when declared dependencies are missing. Run implements
// `taskr exec`, the capability package binaries are re-invoked through.
package npm
