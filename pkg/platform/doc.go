// SPDX-License-Identifier: MPL-2.0

// Package platform holds the GOOS names that path and environment handling
// branch on.
package platform
