// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	// DefaultNodeModulesDir is the node_modules location relative to package.json.
	DefaultNodeModulesDir = "node_modules"
)

var (
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")

	defaultInstallCommand = []string{"npm", "install"}
)

type (
	// Config holds the application configuration.
	Config struct {
		// NPM configures package.json dependency handling.
		NPM NPMConfig `json:"npm" mapstructure:"npm"`
		// Env configures the environment given to task scripts.
		Env EnvConfig `json:"env" mapstructure:"env"`
		// UI configures user interface settings.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// NPMConfig controls how package.json dependencies are installed and resolved.
	NPMConfig struct {
		// Managed installs missing dependencies before running package.json
		// scripts and exposes their binaries as shell commands.
		Managed bool `json:"managed" mapstructure:"managed"`
		// InstallCommand is the argv run in the package.json directory.
		InstallCommand []string `json:"install_command" mapstructure:"install_command"`
		// NodeModulesDir is resolved against the package.json directory.
		NodeModulesDir string `json:"node_modules_dir" mapstructure:"node_modules_dir"`
	}

	// EnvConfig lists dotenv files merged into every task environment.
	EnvConfig struct {
		Files []string `json:"files" mapstructure:"files"`
	}

	// UIConfig controls user interface settings.
	UIConfig struct {
		// Verbose enables verbose output.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// InvalidConfigError is returned when a decoded value breaks a constraint
	// the schema cannot see, typically one set through the environment.
	InvalidConfigError struct {
		Field  string
		Reason string
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		NPM: NPMConfig{
			Managed:        true,
			InstallCommand: slices.Clone(defaultInstallCommand),
			NodeModulesDir: DefaultNodeModulesDir,
		},
		Env: EnvConfig{
			Files: []string{},
		},
		UI: UIConfig{
			Verbose: false,
		},
	}
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Reason)
}

func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Validate checks constraints on fields that may bypass the CUE schema.
func (c *Config) Validate() error {
	if len(c.NPM.InstallCommand) == 0 || strings.TrimSpace(c.NPM.InstallCommand[0]) == "" {
		return &InvalidConfigError{Field: "npm.install_command", Reason: "must name a program"}
	}
	if strings.TrimSpace(c.NPM.NodeModulesDir) == "" {
		return &InvalidConfigError{Field: "npm.node_modules_dir", Reason: "must not be empty"}
	}
	for i, f := range c.Env.Files {
		if strings.TrimSpace(f) == "" {
			return &InvalidConfigError{Field: fmt.Sprintf("env.files[%d]", i), Reason: "must not be empty"}
		}
	}
	return nil
}
