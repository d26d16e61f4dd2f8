// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{"operation only", &ActionableError{Operation: "find tasks"}, "failed to find tasks"},
		{
			"with resource",
			&ActionableError{Operation: "load task file", Resource: "./taskr.cue"},
			"failed to load task file: ./taskr.cue",
		},
		{
			"with cause",
			&ActionableError{Operation: "run task 'build'", Cause: errors.New("exit status 2")},
			"failed to run task 'build': exit status 2",
		},
		{
			"full",
			&ActionableError{Operation: "run package binary", Resource: "npm:cowsay", Cause: errors.New("not found")},
			"failed to run package binary: npm:cowsay: not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	cause := errors.New("no such file")
	err := fmt.Errorf("outer: %w", &ActionableError{Operation: "load task file", Cause: cause})

	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the cause through the ActionableError")
	}
	if (&ActionableError{Operation: "x"}).Unwrap() != nil {
		t.Error("Unwrap() without a cause should be nil")
	}
}

func TestActionableError_Format(t *testing.T) {
	parseErr := &ActionableError{
		Operation: "load task file",
		Cause:     fmt.Errorf("taskr.cue: %w", errors.New("expected '}'")),
	}

	tests := []struct {
		name     string
		err      *ActionableError
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name: "suggestions as bullets",
			err: &ActionableError{
				Operation:   "find tasks",
				Suggestions: []string{"Create a taskr.cue", "Pass --taskfile"},
			},
			contains: []string{"failed to find tasks\n\n  • Create a taskr.cue\n  • Pass --taskfile"},
		},
		{
			name:     "quiet hides the chain",
			err:      parseErr,
			contains: []string{"failed to load task file: taskr.cue: expected '}'"},
			excludes: []string{"Error chain:"},
		},
		{
			name:    "verbose lists the chain",
			err:     parseErr,
			verbose: true,
			contains: []string{
				"Error chain:",
				"1. taskr.cue: expected '}'",
				"2. expected '}'",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Format(tt.verbose)
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("Format() missing %q\ngot:\n%s", s, got)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("Format() should not contain %q\ngot:\n%s", s, got)
				}
			}
		})
	}
}

func TestActionableError_FormatGuide(t *testing.T) {
	originalRender := render
	defer func() { render = originalRender }()

	render = func(in string, stylePath string) (string, error) {
		return "GUIDE:" + stylePath, nil
	}

	err := NewErrorContext().
		WithOperation("run task").
		WithIssue(TaskNotFoundId).
		Wrap(errors.New("missing")).
		Build()

	if err.Guide != TaskNotFoundId {
		t.Fatalf("Guide = %d, want %d", err.Guide, TaskNotFoundId)
	}
	if got := err.Format(false); strings.Contains(got, "GUIDE:") {
		t.Errorf("Format(false) should not render the guide, got %q", got)
	}
	if got := err.Format(true); !strings.Contains(got, "GUIDE:"+GuideStyle) {
		t.Errorf("Format(true) should render the guide, got %q", got)
	}

	plain := NewErrorContext().WithOperation("run task").Build()
	if got := plain.Format(true); strings.Contains(got, "GUIDE:") {
		t.Errorf("Format(true) without a guide rendered one: %q", got)
	}

	render = func(string, string) (string, error) { return "", errors.New("bad style") }
	if got := err.Format(true); !strings.HasPrefix(got, "failed to run task: missing") {
		t.Errorf("a failing guide render should keep the message, got %q", got)
	}
}

func TestErrorContext_Build(t *testing.T) {
	if NewErrorContext().WithResource("taskr.cue").Build() != nil {
		t.Error("Build() without an operation should be nil")
	}
	if err := NewErrorContext().BuildError(); err != nil {
		t.Errorf("BuildError() without an operation = %v, want a nil interface", err)
	}

	cause := errors.New("exit status 1")
	ae := NewErrorContext().
		WithOperation("install packages").
		WithResource("/work/package.json").
		WithSuggestion("Run npm install").
		WithSuggestions("Check the network", "Check npm.install_command").
		WithIssue(PackageInstallFailedId).
		Wrap(cause).
		Build()

	if ae.Operation != "install packages" || ae.Resource != "/work/package.json" {
		t.Errorf("Operation/Resource = %q/%q", ae.Operation, ae.Resource)
	}
	if len(ae.Suggestions) != 3 || ae.Suggestions[2] != "Check npm.install_command" {
		t.Errorf("Suggestions = %q", ae.Suggestions)
	}
	if ae.Guide != PackageInstallFailedId {
		t.Errorf("Guide = %d", ae.Guide)
	}
	if !errors.Is(ae, cause) {
		t.Error("Build() should keep the cause")
	}

	var target *ActionableError
	if !errors.As(NewErrorContext().WithOperation("x").BuildError(), &target) {
		t.Error("BuildError() should return an *ActionableError")
	}
}

func TestErrorContext_Reuse(t *testing.T) {
	ctx := NewErrorContext().WithOperation("load task file").WithSuggestion("Check the syntax")

	first := ctx.Wrap(errors.New("first")).Build()
	second := ctx.Wrap(errors.New("second")).WithSuggestion("more").Build()

	if first.Cause.Error() != "first" || second.Cause.Error() != "second" {
		t.Errorf("causes = %v, %v", first.Cause, second.Cause)
	}
	if len(first.Suggestions) != 1 {
		t.Errorf("a later suggestion leaked into an earlier build: %q", first.Suggestions)
	}
}

func TestWrapHelpers(t *testing.T) {
	cause := errors.New("permission denied")

	ae := WrapWithOperation(cause, "get working directory")
	if ae.Error() != "failed to get working directory: permission denied" {
		t.Errorf("WrapWithOperation() = %q", ae.Error())
	}

	ae = WrapWithContext(cause, "resolve configuration path", "/etc/taskr.cue")
	if ae.Resource != "/etc/taskr.cue" || !errors.Is(ae, cause) {
		t.Errorf("WrapWithContext() = %+v", ae)
	}

	if WrapWithOperation(nil, "x") != nil || WrapWithContext(nil, "x", "y") != nil {
		t.Error("wrapping a nil error should return nil")
	}
	if NewActionableError("find tasks").Error() != "failed to find tasks" {
		t.Error("NewActionableError() should carry only the operation")
	}
}
