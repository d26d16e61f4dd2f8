// SPDX-License-Identifier: MPL-2.0

package npm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// DefaultInstallCommand is run when declared dependencies are missing.
var DefaultInstallCommand = []string{"npm", "install"}

// ErrEmptyInstallCommand is returned by CommandInstaller without a command.
var ErrEmptyInstallCommand = errors.New("install command is empty")

type (
	// Installer installs the dependencies declared by the manifest in dir.
	// missing names the packages that triggered the install.
	Installer interface {
		Install(ctx context.Context, dir string, missing []string) error
	}

	// CommandInstaller runs an external install command such as "npm install".
	CommandInstaller struct {
		Command []string
		Stdout  io.Writer
		Stderr  io.Writer
	}

	// InstallError is returned when the install command fails.
	InstallError struct {
		Command []string
		Missing []string
		Err     error
	}
)

func (e *InstallError) Error() string {
	return fmt.Sprintf("'%s' failed while installing %s: %v",
		strings.Join(e.Command, " "), strings.Join(e.Missing, ", "), e.Err)
}

// Unwrap returns the process error.
func (e *InstallError) Unwrap() error { return e.Err }

// Install implements Installer. The command installs everything the
// manifest declares, so missing is only used in error messages.
func (i *CommandInstaller) Install(ctx context.Context, dir string, missing []string) error {
	if len(i.Command) == 0 {
		return ErrEmptyInstallCommand
	}

	cmd := exec.CommandContext(ctx, i.Command[0], i.Command[1:]...)
	cmd.Dir = dir
	cmd.Env = os.Environ()
	cmd.Stdout = i.Stdout
	cmd.Stderr = i.Stderr
	if err := cmd.Run(); err != nil {
		return &InstallError{Command: i.Command, Missing: missing, Err: err}
	}
	return nil
}
