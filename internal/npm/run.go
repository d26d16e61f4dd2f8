// SPDX-License-Identifier: MPL-2.0

package npm

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/invowk/taskr/pkg/manifest"
)

// DefaultNodeExecutable runs JavaScript binaries.
const DefaultNodeExecutable = "node"

var (
	// ErrPackageNotFound is returned when no node_modules directory holds the package.
	ErrPackageNotFound = errors.New("npm package not found")
	// ErrNoBinary is returned when a package exposes no matching binary.
	ErrNoBinary = errors.New("npm package has no such binary")

	// allowedEnv is passed to binaries run without --allow-all.
	allowedEnv = []string{
		"PATH", "HOME", "USER", "LOGNAME", "SHELL", "TERM", "LANG",
		"TMPDIR", "TMP", "TEMP", "INIT_CWD", "NODE_OPTIONS", "NODE_PATH",
		"SYSTEMROOT", "COMSPEC", "PATHEXT", "USERPROFILE", "APPDATA", "LOCALAPPDATA",
	}
)

// RunOptions configures Run.
type RunOptions struct {
	// Dir is the working directory and the start of the node_modules search.
	Dir string
	// NodeModulesDir is the package directory name (default "node_modules").
	NodeModulesDir string
	// AllowAll passes the full environment to the binary.
	AllowAll bool
	// Environ is the ambient environment as "KEY=VALUE" strings.
	Environ []string
	// Node is the executable used for JavaScript binaries.
	Node string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run locates the package named by spec, runs its binary with args and
// returns the binary's exit code. Errors are reserved for failures to
// locate or start the binary.
func Run(ctx context.Context, spec Specifier, args []string, opts RunOptions) (int, error) {
	folder, meta, err := FindPackage(opts.Dir, opts.NodeModulesDir, spec)
	if err != nil {
		return 1, err
	}

	bin := spec.Bin
	if bin == "" {
		if bin, err = meta.DefaultBin(); err != nil {
			return 1, err
		}
	}
	binPath, err := meta.BinPath(folder, bin)
	if err != nil {
		return 1, err
	}

	name, argv := binPath, args
	if isNodeScript(binPath) {
		node := opts.Node
		if node == "" {
			node = DefaultNodeExecutable
		}
		name, argv = node, append([]string{binPath}, args...)
	}

	cmd := exec.CommandContext(ctx, name, argv...)
	cmd.Dir = opts.Dir
	cmd.Env = childEnv(opts.Environ, opts.AllowAll)
	cmd.Stdin = opts.Stdin
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if code := exitErr.ExitCode(); code > 0 {
				return code, nil
			}
			return 1, nil
		}
		return 1, fmt.Errorf("failed to run %s: %w", spec, err)
	}
	return 0, nil
}

// FindPackage walks up from startDir looking for nodeModules/<name> with a
// version satisfying spec.
func FindPackage(startDir, nodeModules string, spec Specifier) (string, *PackageMeta, error) {
	if nodeModules == "" {
		nodeModules = DefaultNodeModulesDir
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", nil, err
	}

	var req *manifest.Requirement
	if spec.Version != "" {
		if req, err = manifest.ParseRequirement(spec.Version); err != nil {
			return "", nil, fmt.Errorf("%w: %s: %w", ErrInvalidSpecifier, spec, err)
		}
	}

	for {
		folder := filepath.Join(dir, nodeModules, filepath.FromSlash(spec.Name))
		meta, err := ReadPackageMeta(folder)
		switch {
		case err == nil:
			if meta.Version == spec.Version || req == nil || req.Allows(meta.Version) {
				return folder, meta, nil
			}
		case !errors.Is(err, ErrPackageNotInstalled):
			return "", nil, err
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil, fmt.Errorf("%w: %s (searched %s directories from %s)",
				ErrPackageNotFound, spec, nodeModules, startDir)
		}
		dir = parent
	}
}

// DefaultBin picks the binary run when a specifier names none: the only
// binary, or the one named after the package.
func (m *PackageMeta) DefaultBin() (string, error) {
	switch keys := m.Bins.Keys(); {
	case len(keys) == 1:
		return keys[0], nil
	case m.Bins.Has(UnscopedName(m.Name)):
		return UnscopedName(m.Name), nil
	case len(keys) == 0:
		return "", fmt.Errorf("%w: %s exposes no binaries", ErrNoBinary, m.Name)
	default:
		return "", fmt.Errorf("%w: %s exposes %s; pick one with npm:%s/<bin>",
			ErrNoBinary, m.Name, strings.Join(keys, ", "), m.Name)
	}
}

// BinPath returns the absolute path of bin inside folder.
func (m *PackageMeta) BinPath(folder, bin string) (string, error) {
	rel, ok := m.Bins.Get(bin)
	if !ok {
		return "", fmt.Errorf("%w: %s has no binary '%s'", ErrNoBinary, m.Name, bin)
	}
	return filepath.Join(folder, filepath.FromSlash(rel)), nil
}

func isNodeScript(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".cjs", ".mjs":
		return true
	}

	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	return strings.HasPrefix(line, "#!") && strings.Contains(line, "node")
}

func childEnv(environ []string, allowAll bool) []string {
	if allowAll {
		return environ
	}
	return slices.DeleteFunc(slices.Clone(environ), func(kv string) bool {
		name, _, _ := strings.Cut(kv, "=")
		return !slices.Contains(allowedEnv, name) && !strings.HasPrefix(name, "LC_")
	})
}
