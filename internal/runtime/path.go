// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	goruntime "runtime"
	"strings"

	"github.com/invowk/taskr/pkg/platform"
)

const pathVar = "PATH"

// PathListSeparator returns the PATH list separator for the given GOOS.
func PathListSeparator(goos string) string {
	if platform.IsWindows(goos) {
		return ";"
	}
	return ":"
}

// PrependToPath puts dir in front of the PATH entry of env.
// An empty dir leaves env untouched. An unset or empty PATH becomes dir.
func PrependToPath(env map[string]string, dir string) {
	prependToPath(env, dir, goos())
}

func prependToPath(env map[string]string, dir, goos string) {
	if dir == "" {
		return
	}

	key := pathKey(env, goos)
	current := env[key]
	if current == "" {
		env[key] = dir
		return
	}
	env[key] = dir + PathListSeparator(goos) + current
}

// pathKey returns the key holding PATH in env. Windows environment names
// are case-insensitive, so an existing "Path" entry is reused there.
func pathKey(env map[string]string, goos string) string {
	if !platform.IsWindows(goos) {
		return pathVar
	}
	for k := range env {
		if strings.EqualFold(k, pathVar) {
			return k
		}
	}
	return pathVar
}

func goos() string { return goruntime.GOOS }
