// SPDX-License-Identifier: MPL-2.0

package npm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/invowk/taskr/pkg/manifest"

	"github.com/charmbracelet/log"
	"github.com/gofrs/flock"
)

const (
	// DefaultNodeModulesDir is the package directory name next to the manifest.
	DefaultNodeModulesDir = "node_modules"
	// InstallLockFile is created inside node_modules while installing.
	InstallLockFile = ".taskr-install.lock"

	lockRetryDelay = 100 * time.Millisecond
)

var (
	// ErrVersionMismatch is returned when an installed package has another version.
	ErrVersionMismatch = errors.New("installed version does not match")
	// ErrMissingPackages is returned when declared packages are still not installed.
	ErrMissingPackages = errors.New("npm packages are not installed")
)

type (
	// Resolver answers questions about the packages a manifest depends on.
	Resolver interface {
		// Managed reports whether taskr installs and resolves packages itself.
		// An unmanaged resolver only contributes RootBinDir.
		Managed() bool
		// TopLevelPackages lists installed declared dependencies in declaration order.
		TopLevelPackages(ctx context.Context) ([]PackageNv, error)
		// PackageFolder returns the install folder of nv.
		PackageFolder(nv PackageNv) (string, error)
		// BinaryNames lists the binaries of the package installed in folder.
		BinaryNames(folder string) ([]string, error)
		// RootBinDir returns node_modules/.bin when node_modules exists.
		RootBinDir() (string, bool)
		// EnsureTopLevelInstalled installs missing declared dependencies.
		EnsureTopLevelInstalled(ctx context.Context) error
		// ResolvePending re-reads the tree and fails if packages are still missing.
		ResolvePending(ctx context.Context) error
	}

	// LocalResolver reads the node_modules directory next to a manifest.
	LocalResolver struct {
		manifest    *manifest.Manifest
		nodeModules string
		managed     bool
		installer   Installer
		logger      *log.Logger
		cache       *metaCache
	}

	// LocalResolverOption configures a LocalResolver.
	LocalResolverOption func(*LocalResolver)

	// MissingPackagesError lists declared packages absent from node_modules.
	MissingPackagesError struct {
		Packages []string
	}
)

// Error implements the error interface.
func (e *MissingPackagesError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingPackages, strings.Join(e.Packages, ", "))
}

// Unwrap returns ErrMissingPackages.
func (e *MissingPackagesError) Unwrap() error { return ErrMissingPackages }

// WithNodeModulesDir sets the package directory. Relative paths resolve
// against the manifest directory.
func WithNodeModulesDir(dir string) LocalResolverOption {
	return func(r *LocalResolver) {
		if dir == "" {
			return
		}
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(r.manifest.Dir(), dir)
		}
		r.nodeModules = dir
	}
}

// WithManaged controls whether the resolver installs packages (default true).
func WithManaged(managed bool) LocalResolverOption {
	return func(r *LocalResolver) { r.managed = managed }
}

// WithInstaller sets the installer used by EnsureTopLevelInstalled.
func WithInstaller(i Installer) LocalResolverOption {
	return func(r *LocalResolver) { r.installer = i }
}

// WithLogger sets the logger for debug output.
func WithLogger(l *log.Logger) LocalResolverOption {
	return func(r *LocalResolver) { r.logger = l }
}

// NewLocalResolver creates a resolver for the dependencies of m.
func NewLocalResolver(m *manifest.Manifest, opts ...LocalResolverOption) (*LocalResolver, error) {
	cache, err := newMetaCache(DefaultMetaCacheSize)
	if err != nil {
		return nil, err
	}

	r := &LocalResolver{
		manifest:    m,
		nodeModules: filepath.Join(m.Dir(), DefaultNodeModulesDir),
		managed:     true,
		installer:   &CommandInstaller{Command: DefaultInstallCommand, Stdout: os.Stderr, Stderr: os.Stderr},
		logger:      log.New(io.Discard),
		cache:       cache,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Managed implements Resolver.
func (r *LocalResolver) Managed() bool { return r.managed }

// NodeModulesDir returns the package directory.
func (r *LocalResolver) NodeModulesDir() string { return r.nodeModules }

// TopLevelPackages implements Resolver. Dependencies whose requirement did
// not parse and dependencies that are not installed are skipped.
func (r *LocalResolver) TopLevelPackages(_ context.Context) ([]PackageNv, error) {
	var out []PackageNv
	for _, dep := range r.manifest.Dependencies() {
		if dep.Err != nil {
			continue
		}
		meta, err := r.cache.Load(r.folderOf(dep.Name))
		if err != nil {
			if errors.Is(err, ErrPackageNotInstalled) {
				r.logger.Debug("dependency not installed", "name", dep.Name)
				continue
			}
			return nil, err
		}
		out = append(out, PackageNv{Name: dep.Name, Version: meta.Version})
	}
	return out, nil
}

// PackageFolder implements Resolver.
func (r *LocalResolver) PackageFolder(nv PackageNv) (string, error) {
	folder := r.folderOf(nv.Name)
	meta, err := r.cache.Load(folder)
	if err != nil {
		return "", err
	}
	if nv.Version != "" && meta.Version != nv.Version {
		return "", fmt.Errorf("%w: %s has %s installed", ErrVersionMismatch, nv, meta.Version)
	}
	return folder, nil
}

// BinaryNames implements Resolver.
func (r *LocalResolver) BinaryNames(folder string) ([]string, error) {
	meta, err := r.cache.Load(folder)
	if err != nil {
		return nil, err
	}
	return meta.Bins.Keys(), nil
}

// RootBinDir implements Resolver.
func (r *LocalResolver) RootBinDir() (string, bool) {
	info, err := os.Stat(r.nodeModules)
	if err != nil || !info.IsDir() {
		return "", false
	}
	return filepath.Join(r.nodeModules, ".bin"), true
}

// EnsureTopLevelInstalled implements Resolver. Declared dependencies that
// are missing or violate their version range trigger one run of the
// installer, serialized across processes by a lock inside node_modules.
func (r *LocalResolver) EnsureTopLevelInstalled(ctx context.Context) error {
	if len(r.missing()) == 0 {
		return nil
	}

	if err := os.MkdirAll(r.nodeModules, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", r.nodeModules, err)
	}

	lock := flock.New(filepath.Join(r.nodeModules, InstallLockFile))
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("failed to acquire install lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("failed to acquire install lock %s", lock.Path())
	}
	defer func() { _ = lock.Unlock() }()

	// another process may have installed while we waited
	r.cache.Purge()
	missing := r.missing()
	if len(missing) == 0 {
		return nil
	}

	if r.installer == nil {
		return &MissingPackagesError{Packages: missing}
	}
	r.logger.Debug("installing npm packages", "dir", r.manifest.Dir(), "missing", strings.Join(missing, ","))
	return r.installer.Install(ctx, r.manifest.Dir(), missing)
}

// ResolvePending implements Resolver.
func (r *LocalResolver) ResolvePending(_ context.Context) error {
	r.cache.Purge()
	if missing := r.missing(); len(missing) > 0 {
		return &MissingPackagesError{Packages: missing}
	}
	return nil
}

// missing lists parseable dependencies that are absent or out of range.
func (r *LocalResolver) missing() []string {
	var out []string
	for _, dep := range r.manifest.Dependencies() {
		if dep.Err != nil {
			continue
		}
		meta, err := r.cache.Load(r.folderOf(dep.Name))
		if err != nil {
			out = append(out, dep.Name)
			continue
		}
		if !dep.Requirement.Allows(meta.Version) {
			out = append(out, fmt.Sprintf("%s@%s (found %s)", dep.Name, dep.Raw, meta.Version))
		}
	}
	return out
}

func (r *LocalResolver) folderOf(name string) string {
	return filepath.Join(r.nodeModules, filepath.FromSlash(name))
}

var _ Resolver = (*LocalResolver)(nil)

