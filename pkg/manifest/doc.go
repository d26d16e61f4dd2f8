// SPDX-License-Identifier: MPL-2.0

// Package manifest reads package.json manifests: the secondary task source
// (the scripts map) and the declared npm dependencies whose binaries become
// resolvable commands inside running scripts.
package manifest
