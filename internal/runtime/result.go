// SPDX-License-Identifier: MPL-2.0

package runtime

// ExitCode is a script's exit status. The zero value means success.
type ExitCode int

// IsSuccess reports whether the exit code is 0.
func (c ExitCode) IsSuccess() bool { return c == 0 }

// Result is the outcome of running one parsed script.
//
// ExitCode carries the script's exit status. Error is set only for
// infrastructure failures (bad working directory, interpreter setup) and
// always comes with a non-zero ExitCode.
type Result struct {
	ExitCode ExitCode
	Error    error
}

// NewErrorResult creates a Result with the given exit code and error.
func NewErrorResult(code ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// NewExitCodeResult creates a Result with the given exit code and no error.
func NewExitCodeResult(code ExitCode) *Result {
	return &Result{ExitCode: code}
}

// Success reports whether the script exited with code 0 and no error.
func (r *Result) Success() bool {
	return r.Error == nil && r.ExitCode.IsSuccess()
}
