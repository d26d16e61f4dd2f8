// SPDX-License-Identifier: MPL-2.0

package shellcmd

import (
	"context"
	"maps"
	"slices"

	"mvdan.cc/sh/v3/interp"
)

// Table maps command names to handlers. A Table is built once per
// invocation and only read afterwards.
type Table map[string]Handler

// Lookup retrieves a handler by name.
func (t Table) Lookup(name string) (Handler, bool) {
	h, ok := t[name]
	return h, ok
}

// Names returns the registered command names in sorted order.
func (t Table) Names() []string {
	return slices.Sorted(maps.Keys(t))
}

// Middleware returns an interp.ExecHandlers middleware that runs commands
// found in t and passes everything else to next.
func Middleware(t Table) func(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
		return func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return next(ctx, args)
			}
			h, ok := t.Lookup(args[0])
			if !ok {
				return next(ctx, args)
			}
			return h.Run(ctx, ExtractHandlerContext(ctx, args, t))
		}
	}
}
