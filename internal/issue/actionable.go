// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

// GuideStyle is the glamour style used when rendering guides.
var GuideStyle = "dark"

type (
	// ActionableError is a user-facing failure: the operation that failed,
	// the task file, package or path it concerned, and what the user can do
	// about it.
	//
	//	err := issue.NewErrorContext().
	//		WithOperation("load task file").
	//		WithResource("./taskr.cue").
	//		WithSuggestion("Check the syntax of the task file").
	//		WithIssue(issue.TaskfileParseErrorId).
	//		Wrap(cause).
	//		BuildError()
	ActionableError struct {
		// Operation is a verb phrase such as "run task 'build'".
		Operation string
		// Resource names the task file, package or directory involved.
		Resource    string
		Suggestions []string
		Cause       error
		// Guide is the catalog entry rendered in verbose mode. Zero means none.
		Guide Id
	}

	// ErrorContext accumulates the fields of an ActionableError. A context
	// may be built more than once, for example with different causes.
	ErrorContext struct {
		operation   string
		resource    string
		suggestions []string
		cause       error
		guide       Id
	}
)

// NewActionableError returns an ActionableError for operation with no cause.
func NewActionableError(operation string) *ActionableError {
	return &ActionableError{Operation: operation}
}

// NewErrorContext starts an empty ErrorContext.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// WrapWithOperation attaches operation to err. It returns nil for a nil err.
func WrapWithOperation(err error, operation string) *ActionableError {
	return WrapWithContext(err, operation, "")
}

// WrapWithContext attaches operation and resource to err. It returns nil for
// a nil err.
func WrapWithContext(err error, operation, resource string) *ActionableError {
	if err == nil {
		return nil
	}
	return &ActionableError{Operation: operation, Resource: resource, Cause: err}
}

// Error returns "failed to <operation>[: <resource>][: <cause>]".
func (e *ActionableError) Error() string {
	parts := []string{"failed to " + e.Operation}
	if e.Resource != "" {
		parts = append(parts, e.Resource)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// HasSuggestions reports whether e carries at least one suggestion.
func (e *ActionableError) HasSuggestions() bool {
	return len(e.Suggestions) > 0
}

// Format renders e for the terminal. The message is followed by one bullet
// per suggestion. Verbose output also lists every error of the cause chain
// and renders the attached guide, if any.
func (e *ActionableError) Format(verbose bool) string {
	var b strings.Builder
	b.WriteString(e.Error())

	if e.HasSuggestions() {
		b.WriteString("\n")
		for _, s := range e.Suggestions {
			b.WriteString("\n  • " + s)
		}
	}

	if !verbose {
		return b.String()
	}

	if e.Cause != nil {
		b.WriteString("\n\nError chain:")
		for i, err := 1, e.Cause; err != nil; i, err = i+1, errors.Unwrap(err) {
			fmt.Fprintf(&b, "\n  %d. %s", i, err)
		}
	}

	if guide := Get(e.Guide); guide != nil {
		// A guide that fails to render is dropped; the message above stands alone.
		if rendered, err := guide.Render(GuideStyle); err == nil {
			b.WriteString("\n" + rendered)
		}
	}

	return b.String()
}

// WithOperation sets the failed operation.
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.operation = op
	return c
}

// WithResource sets the task file, package or path involved.
func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.resource = res
	return c
}

// WithSuggestion appends one suggestion.
func (c *ErrorContext) WithSuggestion(sug string) *ErrorContext {
	c.suggestions = append(c.suggestions, sug)
	return c
}

// WithSuggestions appends several suggestions in order.
func (c *ErrorContext) WithSuggestions(sugs ...string) *ErrorContext {
	c.suggestions = append(c.suggestions, sugs...)
	return c
}

// WithIssue attaches a catalog guide shown by Format in verbose mode.
func (c *ErrorContext) WithIssue(id Id) *ErrorContext {
	c.guide = id
	return c
}

// Wrap sets the cause, replacing any previous one.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.cause = err
	return c
}

// Build returns the ActionableError, or nil when no operation was set.
func (c *ErrorContext) Build() *ActionableError {
	if c.operation == "" {
		return nil
	}
	return &ActionableError{
		Operation:   c.operation,
		Resource:    c.resource,
		Suggestions: append([]string(nil), c.suggestions...),
		Cause:       c.cause,
		Guide:       c.guide,
	}
}

// BuildError is Build typed as error, so that a missing operation yields a
// true nil interface.
func (c *ErrorContext) BuildError() error {
	if ae := c.Build(); ae != nil {
		return ae
	}
	return nil
}
