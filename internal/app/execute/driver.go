// SPDX-License-Identifier: MPL-2.0

package execute

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/invowk/taskr/internal/npm"
	"github.com/invowk/taskr/internal/runtime"
	"github.com/invowk/taskr/internal/shellcmd"
	"github.com/invowk/taskr/pkg/manifest"
	"github.com/invowk/taskr/pkg/taskfile"

	"github.com/charmbracelet/log"
)

type (
	// ResolverFactory creates the package resolver for a manifest. A nil
	// resolver disables package binaries and the node_modules PATH entry.
	ResolverFactory func(m *manifest.Manifest) (npm.Resolver, error)

	// Driver runs tasks. Only Shell and Env are required.
	Driver struct {
		// Shell parses and executes scripts.
		Shell runtime.Shell
		// Env builds the environment shared by the steps of one run.
		Env *runtime.EnvBuilder
		// Resolver creates the package resolver for package.json tasks.
		Resolver ResolverFactory
		// Host receives re-invocations of package binaries. nil selects
		// the running executable.
		Host shellcmd.Handler
		// Logger receives step announcements and warnings.
		Logger *log.Logger
		// Announce overrides how a step is announced before it runs.
		Announce func(name, script string)
		// IO holds the streams scripts are attached to.
		IO runtime.IOStreams
	}

	// Request is one task invocation.
	Request struct {
		// Name is the task to run. Empty yields ErrNoTaskName.
		Name string
		// Args are appended to the script of every step.
		Args []string
		// Cwd overrides the working directory of the task.
		Cwd string
		// Sources are the loaded task definitions.
		Sources *Sources
	}

	// invocation is the state shared by the steps of one run.
	invocation struct {
		dir      string
		env      map[string]string
		commands shellcmd.Table
	}
)

// Run selects the source owning req.Name and runs its steps. It returns the
// exit code of the first failing step, or 0. Setup failures return exit
// code 1 with an error; TaskNotFoundError and ErrNoTaskName are returned
// for the caller to render the task listing.
func (d *Driver) Run(ctx context.Context, req Request) (int, error) {
	task, err := Select(req.Name, req.Sources.Tasks(), req.Sources.Scripts())
	if err != nil {
		return 1, err
	}
	d.logger().Debug("selected task", "name", task.Name, "source", task.Source)

	var (
		inv   *invocation
		steps []Task
	)
	switch task.Source {
	case SourceTaskfile:
		inv, err = d.taskfileInvocation(req)
		steps = []Task{task}
	default:
		inv, err = d.manifestInvocation(ctx, req)
		steps = HookSteps(task.Name, req.Sources.Scripts())
	}
	if err != nil {
		return 1, err
	}

	for _, step := range steps {
		code, err := d.runStep(ctx, step, req.Args, inv)
		if err != nil || code != 0 {
			return code, err
		}
	}
	return 0, nil
}

func (d *Driver) taskfileInvocation(req Request) (*invocation, error) {
	tf := req.Sources.Taskfile
	if !tf.IsLocal() {
		cfgErr := &ConfigurationError{Err: taskfile.ErrNotLocal}
		if tf.Location != nil {
			cfgErr.Location = tf.Location.String()
		}
		return nil, cfgErr
	}

	path, err := tf.LocalPath()
	if err != nil {
		return nil, err
	}
	dir, err := workingDir(req.Cwd, filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	env, err := d.Env.Build("")
	if err != nil {
		return nil, err
	}
	return &invocation{dir: dir, env: env}, nil
}

func (d *Driver) manifestInvocation(ctx context.Context, req Request) (*invocation, error) {
	m := req.Sources.Manifest
	for _, dep := range m.Dependencies() {
		if dep.Err != nil {
			d.logger().Warn(fmt.Sprintf(
				"Ignoring dependency '%s' in package.json because its version requirement failed to parse", dep.Name),
				"err", dep.Err)
		}
	}

	var resolver npm.Resolver
	if d.Resolver != nil {
		r, err := d.Resolver(m)
		if err != nil {
			return nil, err
		}
		resolver = r
	}

	inv := &invocation{}
	var binDir string
	if resolver != nil {
		if resolver.Managed() {
			if err := resolver.EnsureTopLevelInstalled(ctx); err != nil {
				return nil, err
			}
			if err := resolver.ResolvePending(ctx); err != nil {
				return nil, err
			}
			table, err := shellcmd.Resolve(ctx, resolver, d.Host)
			if err != nil {
				return nil, err
			}
			inv.commands = table
			d.logger().Debug("resolved package commands", "commands", table.Names())
		}
		binDir, _ = resolver.RootBinDir()
	}

	dir, err := workingDir(req.Cwd, m.Dir())
	if err != nil {
		return nil, err
	}
	inv.dir = dir

	if inv.env, err = d.Env.Build(binDir); err != nil {
		return nil, err
	}
	return inv, nil
}

func (d *Driver) runStep(ctx context.Context, step Task, args []string, inv *invocation) (int, error) {
	script := WithArgs(step.Script, args)
	d.announce(step.Name, script)

	prog, err := d.Shell.Parse(script, step.Name)
	if err != nil {
		return 1, &ParseError{Task: step.Name, Err: err}
	}

	result := d.Shell.Execute(ctx, prog, &runtime.ExecutionContext{
		Dir:      inv.dir,
		Env:      inv.env,
		Commands: inv.commands,
		IO:       d.IO,
	})
	if result.Error != nil {
		return int(result.ExitCode), &StepError{Task: step.Name, Err: result.Error}
	}
	return int(result.ExitCode), nil
}

func (d *Driver) announce(name, script string) {
	if d.Announce != nil {
		d.Announce(name, script)
		return
	}
	d.logger().Print(fmt.Sprintf("Task %s %s", name, script))
}

func (d *Driver) logger() *log.Logger {
	if d.Logger == nil {
		d.Logger = log.New(io.Discard)
	}
	return d.Logger
}

// workingDir returns the canonical form of override, or fallback when no
// override is given.
func workingDir(override, fallback string) (string, error) {
	if override == "" {
		return fallback, nil
	}
	abs, err := filepath.Abs(override)
	if err != nil {
		return "", fmt.Errorf("failed to resolve working directory '%s': %w", override, err)
	}
	dir, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("failed to resolve working directory '%s': %w", override, err)
	}
	return dir, nil
}
