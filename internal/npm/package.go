// SPDX-License-Identifier: MPL-2.0

package npm

import (
	"errors"
	"fmt"
	"strings"
)

// SpecifierPrefix is the scheme of package specifiers.
const SpecifierPrefix = "npm:"

// ErrInvalidSpecifier is returned for malformed package specifiers.
var ErrInvalidSpecifier = errors.New("invalid npm package specifier")

type (
	// PackageNv identifies an installed package by name and version.
	PackageNv struct {
		Name    string
		Version string
	}

	// Specifier is a parsed "npm:<name>[@<version>][/<bin>]".
	Specifier struct {
		Name    string
		Version string
		Bin     string
	}
)

// String renders "name@version", or just the name when no version is known.
func (nv PackageNv) String() string {
	if nv.Version == "" {
		return nv.Name
	}
	return nv.Name + "@" + nv.Version
}

// ParseSpecifier parses "npm:<name>[@<version>][/<bin>]". Scoped names
// ("@scope/name") are supported.
func ParseSpecifier(s string) (Specifier, error) {
	rest, ok := strings.CutPrefix(s, SpecifierPrefix)
	if !ok || rest == "" {
		return Specifier{}, fmt.Errorf("%w: %q", ErrInvalidSpecifier, s)
	}

	var spec Specifier

	// The scope separator is part of the name, not the bin path.
	nameEnd := 0
	if strings.HasPrefix(rest, "@") {
		slash := strings.IndexByte(rest, '/')
		if slash <= 1 {
			return Specifier{}, fmt.Errorf("%w: %q", ErrInvalidSpecifier, s)
		}
		nameEnd = slash + 1
	}

	if slash := strings.IndexByte(rest[nameEnd:], '/'); slash >= 0 {
		spec.Bin = rest[nameEnd+slash+1:]
		rest = rest[:nameEnd+slash]
		if spec.Bin == "" {
			return Specifier{}, fmt.Errorf("%w: %q", ErrInvalidSpecifier, s)
		}
	}

	if at := strings.LastIndexByte(rest, '@'); at > 0 && at >= nameEnd {
		spec.Name, spec.Version = rest[:at], rest[at+1:]
		if spec.Version == "" {
			return Specifier{}, fmt.Errorf("%w: %q", ErrInvalidSpecifier, s)
		}
	} else {
		spec.Name = rest
	}

	if spec.Name == "" || strings.HasSuffix(spec.Name, "/") {
		return Specifier{}, fmt.Errorf("%w: %q", ErrInvalidSpecifier, s)
	}
	return spec, nil
}

// String renders the specifier in its canonical form.
func (s Specifier) String() string {
	out := SpecifierPrefix + s.Name
	if s.Version != "" {
		out += "@" + s.Version
	}
	if s.Bin != "" {
		out += "/" + s.Bin
	}
	return out
}

// UnscopedName strips an "@scope/" prefix from a package name.
func UnscopedName(name string) string {
	if strings.HasPrefix(name, "@") {
		if _, after, ok := strings.Cut(name, "/"); ok {
			return after
		}
	}
	return name
}
