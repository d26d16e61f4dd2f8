// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/invowk/taskr/internal/app/execute"
	"github.com/invowk/taskr/internal/issue"
	"github.com/invowk/taskr/internal/npm"
	"github.com/invowk/taskr/internal/runtime"
	"github.com/invowk/taskr/pkg/taskfile"

	"github.com/spf13/cobra"
)

// taskOptions are the flags of `taskr task`.
type taskOptions struct {
	cwd      string
	taskfile string
}

func newTaskCommand(app *App) *cobra.Command {
	var opts taskOptions

	cmd := &cobra.Command{
		Use:   "task [name] [args...]",
		Short: "Run a task from the task file or package.json",
		Long: `Run a task from the task file or package.json.

Tasks are looked up in the nearest taskr.cue, taskr.yaml or taskr.yml first,
then in the "scripts" of the nearest package.json. package.json scripts run
with their "pre" and "post" hooks. Without a name, the available tasks are
listed.

Flags must come before the task name; everything after it is passed to the
script.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) > 0 {
				name, args = args[0], args[1:]
			}
			return app.runTask(cmd.Context(), name, args, opts)
		},
	}
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringVar(&opts.cwd, "cwd", "", "directory to run the task in")
	cmd.Flags().StringVar(&opts.taskfile, "taskfile", "", "task file path or URL (default: search upwards from the current directory)")

	return cmd
}

func (a *App) runTask(ctx context.Context, name string, args []string, opts taskOptions) error {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return err
	}
	logger := a.newLogger()

	wd, err := a.Getwd()
	if err != nil {
		return issue.WrapWithOperation(err, "get working directory")
	}

	sources, err := execute.LoadSources(ctx, a.Loader, wd, opts.taskfile)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("load task file").
			WithResource(opts.taskfile).
			WithSuggestion("Check the syntax of the task file").
			WithIssue(issue.TaskfileParseErrorId).
			Wrap(err).
			BuildError()
	}
	if sources.Taskfile == nil && sources.Manifest == nil {
		return issue.NewErrorContext().
			WithOperation("find tasks").
			WithResource(wd).
			WithSuggestion("Create a taskr.cue or package.json, or pass --taskfile").
			WithIssue(issue.TaskfileNotFoundId).
			Wrap(taskfile.ErrNotFound).
			BuildError()
	}
	if tf := sources.Taskfile; tf != nil {
		logger.Debug("loaded task file", "location", tf.Location, "tasks", tf.Tasks.Len())
	}
	if m := sources.Manifest; m != nil {
		logger.Debug("loaded package.json", "path", m.Path, "scripts", m.Scripts.Len())
	}

	env, err := runtime.NewEnvBuilder(
		runtime.WithEnviron(a.Environ),
		runtime.WithGetwd(a.Getwd),
		runtime.WithEnvFiles(cfg.Env.Files...),
	)
	if err != nil {
		return err
	}
	logger.Debug("invocation directory", runtime.InitCwdVar, env.InitCwd())

	driver := &execute.Driver{
		Shell:    a.Shell,
		Env:      env,
		Resolver: a.resolverFactory(cfg, logger),
		Host:     a.Host,
		Logger:   logger,
		Announce: func(step, script string) {
			logger.Print(announceTagStyle.Render("Task") + " " + taskNameStyle.Render(step) + " " + script)
		},
		IO: a.streams(),
	}

	code, err := driver.Run(ctx, execute.Request{
		Name:    name,
		Args:    args,
		Cwd:     opts.cwd,
		Sources: sources,
	})

	var notFound *execute.TaskNotFoundError
	switch {
	case errors.Is(err, execute.ErrNoTaskName):
		printTaskList(a.stderr, execute.AvailableTasks(sources.Tasks(), sources.Scripts()))
		return &ExitError{Code: 1}
	case errors.As(err, &notFound):
		fmt.Fprintln(a.stderr, notFound.Error())
		printTaskList(a.stderr, execute.AvailableTasks(sources.Tasks(), sources.Scripts()))
		if a.verbose {
			if guide, gerr := issue.Get(issue.TaskNotFoundId).Render(issue.GuideStyle); gerr == nil {
				fmt.Fprint(a.stderr, guide)
			}
		}
		return &ExitError{Code: 1}
	case err != nil:
		return &ExitError{Code: code, Err: taskError(name, err)}
	case code != 0:
		return &ExitError{Code: code}
	}
	return nil
}

// taskError wraps a driver failure with suggestions matching its kind.
func taskError(name string, err error) error {
	ec := issue.NewErrorContext().
		WithOperation(fmt.Sprintf("run task '%s'", name)).
		Wrap(err)

	var (
		parseErr   *execute.ParseError
		cfgErr     *execute.ConfigurationError
		missingErr *npm.MissingPackagesError
		installErr *npm.InstallError
	)
	switch {
	case errors.As(err, &parseErr):
		ec.WithResource(parseErr.Task).
			WithSuggestion("Fix the shell syntax of the script").
			WithIssue(issue.ScriptParseErrorId)
	case errors.As(err, &cfgErr):
		ec.WithSuggestion("Download the task file and pass its local path with --taskfile")
	case errors.As(err, &missingErr):
		ec.WithSuggestion("Run the install command and check its output").
			WithIssue(issue.NodeModulesOutdatedId)
	case errors.Is(err, npm.ErrEmptyInstallCommand):
		ec.WithSuggestion("Set npm.install_command in the configuration file").
			WithIssue(issue.PackageInstallFailedId)
	case errors.As(err, &installErr):
		ec.WithIssue(issue.PackageInstallFailedId)
	}
	return ec.BuildError()
}

// printTaskList writes the task listing. Task file entries come first, then
// package.json scripts annotated with their source.
func printTaskList(w io.Writer, tasks []execute.Task) {
	fmt.Fprintln(w, listHeaderStyle.Render("Available tasks:"))
	if len(tasks) == 0 {
		fmt.Fprintln(w, listEmptyStyle.Render("  No tasks found in configuration file"))
		return
	}
	for _, t := range tasks {
		line := "- " + taskNameStyle.Render(t.Name)
		if t.Source == execute.SourceManifest {
			line += listSourceStyle.Render(" (package.json)")
		}
		fmt.Fprintln(w, line)
		fmt.Fprintf(w, "    %s\n", t.Script)
	}
}
