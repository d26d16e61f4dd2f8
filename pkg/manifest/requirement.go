// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

const (
	// RequirementAny matches every version ("", "*", "latest").
	RequirementAny RequirementKind = "any"
	// RequirementRange is a semver range such as "^1.2.0" or ">=1 <3".
	RequirementRange RequirementKind = "range"
	// RequirementTag is a dist-tag such as "next" or "beta".
	RequirementTag RequirementKind = "tag"
)

// ErrUnsupportedSpecifier is returned for requirement forms that do not name
// a registry version (file:, link:, workspace:, git and URL specifiers).
var ErrUnsupportedSpecifier = errors.New("unsupported dependency specifier")

var (
	distTagPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9._-]*$`)

	unsupportedPrefixes = []string{
		"file:", "link:", "workspace:", "portal:", "patch:",
		"git:", "git+", "github:", "gitlab:", "bitbucket:",
		"http://", "https://",
	}
)

type (
	// RequirementKind classifies a parsed requirement.
	RequirementKind string

	// Requirement is a parsed npm version requirement.
	Requirement struct {
		Kind RequirementKind
		// Alias is the real package name for "npm:<name>@<range>" requirements.
		Alias string
		// Tag is the dist-tag for RequirementTag.
		Tag string
		// Constraints is set for RequirementRange.
		Constraints *semver.Constraints
	}
)

// ParseRequirement parses an npm dependency requirement string.
func ParseRequirement(raw string) (*Requirement, error) {
	s := strings.TrimSpace(raw)

	if rest, ok := strings.CutPrefix(s, "npm:"); ok {
		name, version := splitNameVersion(rest)
		if name == "" {
			return nil, fmt.Errorf("%w: missing package name in %q", ErrUnsupportedSpecifier, raw)
		}
		req, err := ParseRequirement(version)
		if err != nil {
			return nil, err
		}
		req.Alias = name
		return req, nil
	}

	for _, prefix := range unsupportedPrefixes {
		if strings.HasPrefix(s, prefix) {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedSpecifier, raw)
		}
	}
	// "user/repo" GitHub shorthand
	if strings.Contains(s, "/") && !strings.ContainsAny(s, " <>=^~|") {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSpecifier, raw)
	}

	switch s {
	case "", "*", "latest", "x", "X":
		return &Requirement{Kind: RequirementAny}, nil
	}

	constraints, err := semver.NewConstraint(s)
	if err == nil {
		return &Requirement{Kind: RequirementRange, Constraints: constraints}, nil
	}
	if distTagPattern.MatchString(s) {
		return &Requirement{Kind: RequirementTag, Tag: s}, nil
	}
	return nil, fmt.Errorf("invalid version requirement %q: %w", raw, err)
}

// Allows reports whether an installed version satisfies the requirement.
// Tags cannot be checked offline and always allow.
func (r *Requirement) Allows(version string) bool {
	if r.Kind != RequirementRange {
		return true
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	return r.Constraints.Check(v)
}

// String renders the requirement for diagnostics.
func (r *Requirement) String() string {
	var s string
	switch r.Kind {
	case RequirementRange:
		s = r.Constraints.String()
	case RequirementTag:
		s = r.Tag
	default:
		s = "*"
	}
	if r.Alias != "" {
		return "npm:" + r.Alias + "@" + s
	}
	return s
}

// splitNameVersion splits "name@version" or "@scope/name@version".
func splitNameVersion(s string) (name, version string) {
	at := strings.LastIndex(s, "@")
	if at <= 0 {
		return s, ""
	}
	return s[:at], s[at+1:]
}
