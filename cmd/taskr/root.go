// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/invowk/taskr/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// newRootCommand builds the command tree around app.
func newRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "taskr",
		Short: "Run project tasks from taskr.cue or package.json",
		Long: TitleStyle.Render("taskr") + SubtitleStyle.Render(" - Run project tasks from taskr.cue or package.json") + `

taskr runs named shell scripts declared in a task file (taskr.cue,
taskr.yaml) or in the "scripts" of the nearest package.json. Scripts run
in an embedded POSIX shell, so they behave the same on every platform.

` + SubtitleStyle.Render("Examples:") + `
  taskr task                List all available tasks
  taskr task build          Run the 'build' task
  taskr task test -run X    Pass extra arguments to the 'test' script
  taskr config show         Show current configuration`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/taskr/config.cue)")

	rootCmd.AddCommand(newTaskCommand(app))
	rootCmd.AddCommand(newExecCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits the process with its status. It is called
// by main.main().
func Execute() {
	os.Exit(Run(context.Background(), NewApp(Dependencies{}), os.Args[1:]))
}

// Run executes the command tree with args and returns the process exit code.
func Run(ctx context.Context, app *App, args []string) int {
	rootCmd := newRootCommand(app)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(app.stdin)
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(app.handleError),
	)
	return exitCode(err)
}

// handleError renders command errors. Bare exit codes were already reported
// by the script or command that produced them.
func (a *App) handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	if exitErr != nil {
		err = exitErr.Err
	}
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		fmt.Fprintln(w, ErrorStyle.Render("error: ")+ae.Format(a.verbose))
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Code != 0 {
		return exitErr.Code
	}
	return 1
}
