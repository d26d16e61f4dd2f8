// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/invowk/taskr/internal/config"
	"github.com/invowk/taskr/internal/issue"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `taskr config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage taskr configuration",
		Long: `Manage taskr configuration.

Configuration is stored in:
  - Linux: $XDG_CONFIG_HOME/taskr/config.cue (~/.config/taskr/config.cue)
  - macOS: ~/Library/Application Support/taskr/config.cue
  - Windows: %LOCALAPPDATA%\taskr\config.cue

Every key can be overridden with a TASKR_ environment variable, e.g.
TASKR_NPM_MANAGED=false.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.showConfig(cmd.Context())
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ResolvePath(config.LoadOptions{ConfigFilePath: app.configPath})
			if err != nil {
				return issue.WrapWithContext(err, "resolve configuration path", app.configPath)
			}
			fmt.Fprintln(app.stdout, path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CreateDefaultConfig("")
			if err != nil {
				return issue.WrapWithOperation(err, "create default configuration")
			}
			fmt.Fprintf(app.stdout, "%s %s\n", ValueStyle.Render("Configuration file:"), path)
			return nil
		},
	})

	return cfgCmd
}

func (a *App) showConfig(ctx context.Context) error {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return err
	}

	path, err := config.ResolvePath(config.LoadOptions{ConfigFilePath: a.configPath})
	source := SubtitleStyle.Render("(using defaults)")
	if err == nil && fileExistsCheck(path) {
		source = path
	}

	fmt.Fprintln(a.stdout, TitleStyle.Render("Current Configuration"))
	fmt.Fprintf(a.stdout, "%s: %s\n\n", CmdStyle.Render("Config file"), source)
	fmt.Fprint(a.stdout, config.GenerateCUE(cfg))
	return nil
}

func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
