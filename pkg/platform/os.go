// SPDX-License-Identifier: MPL-2.0

package platform

// Windows is the GOOS value that switches PATH handling to ';' separators
// with case-insensitive keys, and file URLs to drive-letter paths.
const Windows = "windows"

// IsWindows reports whether goos names Windows.
func IsWindows(goos string) bool { return goos == Windows }
