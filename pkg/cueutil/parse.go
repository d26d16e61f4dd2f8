// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"github.com/invowk/taskr/pkg/ordered"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Unify compiles schema and data, unifies data with the schema definition at
// schemaPath (e.g. "#Taskfile") and validates the result.
func Unify(schema, data []byte, schemaPath string, opts ...Option) (cue.Value, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	filename := options.filename
	if filename == "" {
		filename = "<input>"
	}

	if err := CheckFileSize(data, options.maxFileSize, filename); err != nil {
		return cue.Value{}, err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileBytes(schema)
	if schemaValue.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(filename))
	if userValue.Err() != nil {
		return cue.Value{}, FormatError(userValue.Err(), filename)
	}

	schemaRoot := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if schemaRoot.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, schemaRoot.Err())
	}

	unified := schemaRoot.Unify(userValue)
	if err := unified.Validate(cue.Concrete(options.concrete)); err != nil {
		return cue.Value{}, FormatError(err, filename)
	}

	return unified, nil
}

// StringFields walks the struct at path in declaration order and returns its
// string-valued regular fields. A missing path yields an empty map.
func StringFields(v cue.Value, path string) (*ordered.Map[string, string], error) {
	fields := ordered.New[string, string]()

	target := v.LookupPath(cue.ParsePath(path))
	if !target.Exists() {
		return fields, nil
	}

	it, err := target.Fields()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for it.Next() {
		name := it.Selector().Unquoted()
		s, err := it.Value().String()
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", path, name, err)
		}
		fields.Set(name, s)
	}
	return fields, nil
}
