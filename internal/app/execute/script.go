// SPDX-License-Identifier: MPL-2.0

package execute

import (
	"strings"

	"github.com/samber/lo"
)

var argEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`, "`", "\\`")

// WithArgs appends args to script. Each argument is wrapped in double
// quotes with '\', '"', '$' and '`' escaped, so arguments reach the
// script literally and cannot start expansions or command substitutions.
func WithArgs(script string, args []string) string {
	quoted := lo.Map(args, func(arg string, _ int) string {
		return `"` + argEscaper.Replace(arg) + `"`
	})
	return strings.TrimSpace(script + " " + strings.Join(quoted, " "))
}
