// SPDX-License-Identifier: MPL-2.0

package execute

import (
	"errors"
	"fmt"
)

// ErrNoTaskName is returned when no task name was supplied. Callers print
// the task listing and exit with status 1.
var ErrNoTaskName = errors.New("no task name supplied")

type (
	// TaskNotFoundError is returned when neither source defines the task.
	TaskNotFoundError struct {
		Name string
	}

	// ConfigurationError is returned when a task file cannot be used to run
	// tasks, such as a remote task file.
	ConfigurationError struct {
		Location string
		Err      error
	}

	// ParseError is returned when a task step's script is not valid shell.
	ParseError struct {
		Task string
		Err  error
	}

	// StepError is returned when the shell engine fails to run a step for
	// reasons other than the script's own exit status.
	StepError struct {
		Task string
		Err  error
	}
)

func (e *TaskNotFoundError) Error() string {
	return fmt.Sprintf("Task not found: `%s`", e.Name)
}

func (e *ConfigurationError) Error() string {
	if e.Location == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v (%s)", e.Err, e.Location)
}

// Unwrap returns the underlying error.
func (e *ConfigurationError) Unwrap() error { return e.Err }

func (e *ParseError) Error() string {
	return fmt.Sprintf("error parsing script '%s': %v", e.Task, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error { return e.Err }

func (e *StepError) Error() string {
	return fmt.Sprintf("failed to run task '%s': %v", e.Task, e.Err)
}

// Unwrap returns the underlying error.
func (e *StepError) Unwrap() error { return e.Err }
