// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"fmt"
	"os"
)

// InitCwdVar is the variable package scripts read to find the directory
// the task runner was invoked from.
const InitCwdVar = "INIT_CWD"

type (
	// EnvBuilder builds the environment shared by every hook step of one
	// task invocation. See the package documentation for precedence.
	EnvBuilder struct {
		environ  func() []string
		initCwd  string
		envFiles []string
	}

	// EnvBuilderOption configures an EnvBuilder.
	EnvBuilderOption func(*envBuilderOptions)

	envBuilderOptions struct {
		environ  func() []string
		getwd    func() (string, error)
		envFiles []string
	}
)

// WithEnviron overrides the host environment source (default os.Environ).
func WithEnviron(fn func() []string) EnvBuilderOption {
	return func(o *envBuilderOptions) { o.environ = fn }
}

// WithGetwd overrides how the invocation directory is captured (default os.Getwd).
func WithGetwd(fn func() (string, error)) EnvBuilderOption {
	return func(o *envBuilderOptions) { o.getwd = fn }
}

// WithEnvFiles adds dotenv files merged over the host environment.
// Relative paths resolve against the invocation directory.
func WithEnvFiles(paths ...string) EnvBuilderOption {
	return func(o *envBuilderOptions) { o.envFiles = append(o.envFiles, paths...) }
}

// NewEnvBuilder captures the invocation directory once and returns a builder.
func NewEnvBuilder(opts ...EnvBuilderOption) (*EnvBuilder, error) {
	o := envBuilderOptions{environ: os.Environ, getwd: os.Getwd}
	for _, opt := range opts {
		opt(&o)
	}

	cwd, err := o.getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current working directory: %w", err)
	}

	return &EnvBuilder{environ: o.environ, initCwd: cwd, envFiles: o.envFiles}, nil
}

// InitCwd returns the invocation directory captured at construction.
func (b *EnvBuilder) InitCwd() string { return b.initCwd }

// Build returns the step environment. binDir, when non-empty, is prepended
// to PATH.
func (b *EnvBuilder) Build(binDir string) (map[string]string, error) {
	env := EnvFromSlice(b.environ())
	_, hadInitCwd := env[InitCwdVar]
	hostInitCwd := env[InitCwdVar]

	for _, path := range b.envFiles {
		if err := LoadEnvFile(env, path, b.initCwd); err != nil {
			return nil, err
		}
	}

	// dotenv files never take over INIT_CWD
	if hadInitCwd {
		env[InitCwdVar] = hostInitCwd
	} else {
		env[InitCwdVar] = b.initCwd
	}

	PrependToPath(env, binDir)
	return env, nil
}
