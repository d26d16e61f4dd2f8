// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"

	"github.com/invowk/taskr/internal/issue"
	"github.com/invowk/taskr/internal/npm"

	"github.com/spf13/cobra"
)

func newExecCommand(app *App) *cobra.Command {
	var allowAll bool

	cmd := &cobra.Command{
		Use:   "exec [-A] npm:<package>[@version][/bin] [args...]",
		Short: "Run a binary from an installed npm package",
		Long: `Run a binary from an installed npm package.

The package is looked up in the node_modules directories between the current
directory and the filesystem root. JavaScript binaries run through node.

Package binaries invoked from package.json scripts are routed through this
command. Without --allow-all the binary only sees a small set of environment
variables such as PATH and HOME.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runExec(cmd.Context(), args[0], args[1:], allowAll)
		},
	}
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().BoolVarP(&allowAll, "allow-all", "A", false, "pass the full environment to the binary")

	return cmd
}

func (a *App) runExec(ctx context.Context, specifier string, args []string, allowAll bool) error {
	spec, err := npm.ParseSpecifier(specifier)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("parse package specifier").
			WithResource(specifier).
			WithSuggestion("Use the form npm:<package>[@version][/bin]").
			Wrap(err).
			BuildError()
	}

	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return err
	}
	logger := a.newLogger()

	wd, err := a.Getwd()
	if err != nil {
		return issue.WrapWithOperation(err, "get working directory")
	}
	logger.Debug("running package binary", "package", spec, "dir", wd, "allow_all", allowAll)

	streams := a.streams()
	code, err := npm.Run(ctx, spec, args, npm.RunOptions{
		Dir:            wd,
		NodeModulesDir: cfg.NPM.NodeModulesDir,
		AllowAll:       allowAll,
		Environ:        a.Environ(),
		Stdin:          streams.Stdin,
		Stdout:         streams.Stdout,
		Stderr:         streams.Stderr,
	})
	if err != nil {
		ec := issue.NewErrorContext().
			WithOperation("run package binary").
			WithResource(spec.String()).
			Wrap(err)
		switch {
		case errors.Is(err, npm.ErrPackageNotFound):
			ec.WithIssue(issue.PackageNotFoundId)
		case errors.Is(err, npm.ErrNoBinary):
			ec.WithSuggestion("Name the binary explicitly: npm:<package>/<bin>")
		}
		return &ExitError{Code: code, Err: ec.BuildError()}
	}
	if code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}
