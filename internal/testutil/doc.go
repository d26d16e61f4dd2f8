// SPDX-License-Identifier: MPL-2.0

// Package testutil provides fixture helpers for tests that fail the test
// immediately on filesystem errors: task files and manifests
// (MustWriteFile, WriteManifest), executables (MustWriteExecutable) and
// fake node_modules installs (InstallPackage).
package testutil
