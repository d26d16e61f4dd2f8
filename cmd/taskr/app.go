// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/invowk/taskr/internal/config"
	"github.com/invowk/taskr/internal/npm"
	"github.com/invowk/taskr/internal/runtime"
	"github.com/invowk/taskr/internal/shellcmd"
	"github.com/invowk/taskr/pkg/manifest"
	"github.com/invowk/taskr/pkg/taskfile"

	"github.com/charmbracelet/log"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: every Cobra handler receives an App and reads
	// its collaborators from it.
	App struct {
		Config  ConfigProvider
		Loader  *taskfile.Loader
		Shell   runtime.Shell
		Host    shellcmd.Handler
		Getwd   func() (string, error)
		Environ func() []string

		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer

		// global flags
		verbose    bool
		configPath string
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp.
	Dependencies struct {
		Config  ConfigProvider
		Loader  *taskfile.Loader
		Shell   runtime.Shell
		Host    shellcmd.Handler
		Getwd   func() (string, error)
		Environ func() []string
		Stdin   io.Reader
		Stdout  io.Writer
		Stderr  io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Loader == nil {
		deps.Loader = taskfile.NewLoader()
	}
	if deps.Shell == nil {
		deps.Shell = runtime.NewVirtualShell()
	}
	if deps.Getwd == nil {
		deps.Getwd = os.Getwd
	}
	if deps.Environ == nil {
		deps.Environ = os.Environ
	}

	return &App{
		Config:  deps.Config,
		Loader:  deps.Loader,
		Shell:   deps.Shell,
		Host:    deps.Host,
		Getwd:   deps.Getwd,
		Environ: deps.Environ,
		stdin:   deps.Stdin,
		stdout:  deps.Stdout,
		stderr:  deps.Stderr,
	}
}

// loadConfig loads the application configuration honoring --config, and
// folds ui.verbose into the verbose flag.
func (a *App) loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.configPath})
	if err != nil {
		return nil, err
	}
	if cfg.UI.Verbose {
		a.verbose = true
	}
	return cfg, nil
}

// newLogger returns the stderr logger used for announcements, warnings and
// verbose diagnostics.
func (a *App) newLogger() *log.Logger {
	level := log.InfoLevel
	if a.verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(a.stderr, log.Options{
		ReportTimestamp: false,
		Level:           level,
	})
}

// resolverFactory builds package resolvers from the npm section of cfg.
func (a *App) resolverFactory(cfg *config.Config, logger *log.Logger) func(*manifest.Manifest) (npm.Resolver, error) {
	return func(m *manifest.Manifest) (npm.Resolver, error) {
		r, err := npm.NewLocalResolver(m,
			npm.WithManaged(cfg.NPM.Managed),
			npm.WithNodeModulesDir(cfg.NPM.NodeModulesDir),
			npm.WithInstaller(&npm.CommandInstaller{
				Command: cfg.NPM.InstallCommand,
				Stdout:  a.stderr,
				Stderr:  a.stderr,
			}),
			npm.WithLogger(logger),
		)
		if err != nil {
			return nil, err
		}
		logger.Debug("package resolver", "node_modules", r.NodeModulesDir(), "managed", r.Managed())
		return r, nil
	}
}

// streams returns the stdio given to task scripts and package binaries.
func (a *App) streams() runtime.IOStreams {
	return runtime.IOStreams{Stdin: a.stdin, Stdout: a.stdout, Stderr: a.stderr}
}
