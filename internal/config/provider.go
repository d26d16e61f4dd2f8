// SPDX-License-Identifier: MPL-2.0

package config

import "context"

// LoadOptions selects which taskr config file is read.
//
// With both fields empty the file is config.cue under ConfigDir().
type LoadOptions struct {
	// ConfigFilePath is the --config flag. When set it is the only file
	// considered and it must exist.
	ConfigFilePath string
	// ConfigDirPath replaces ConfigDir() as the directory searched for
	// config.cue.
	ConfigDirPath string
}

// Provider is what the CLI asks for its Config. Tests substitute a static
// implementation.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Config, error)
}

// cueProvider reads the CUE config file through viper, so TASKR_* variables
// override file values and DefaultConfig fills the rest.
type cueProvider struct{}

// NewProvider returns the Provider backed by the on-disk config.cue.
func NewProvider() Provider {
	return cueProvider{}
}

// Load implements Provider. A missing default config file is not an error.
func (cueProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, _, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
