// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"slices"
	"strings"
)

// EnvToSlice converts an environment map to a sorted "KEY=VALUE" slice.
func EnvToSlice(env map[string]string) []string {
	result := make([]string, 0, len(env))
	for k, v := range env {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}

// EnvFromSlice converts "KEY=VALUE" strings to a map. Entries without '='
// are skipped; later duplicates win.
func EnvFromSlice(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		env[k] = v
	}
	return env
}
