// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

func TestFormatError(t *testing.T) {
	t.Parallel()

	t.Run("nil error returns nil", func(t *testing.T) {
		t.Parallel()

		if err := FormatError(nil, "taskr.cue"); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})

	t.Run("non-CUE error is wrapped with filepath", func(t *testing.T) {
		t.Parallel()

		original := errors.New("some error")
		err := FormatError(original, "taskr.cue")
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "taskr.cue") || !strings.Contains(err.Error(), "some error") {
			t.Errorf("unexpected message: %v", err)
		}
	})
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     []string
		expected string
	}{
		{name: "empty path", path: []string{}, expected: ""},
		{name: "single element", path: []string{"tasks"}, expected: "tasks"},
		{name: "nested path", path: []string{"npm", "managed"}, expected: "npm.managed"},
		{name: "array index", path: []string{"env", "files", "0"}, expected: "env.files[0]"},
		{name: "leading digits are a field", path: []string{"0", "x"}, expected: "0.x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := formatPath(tt.path); got != tt.expected {
				t.Errorf("formatPath(%v) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Parallel()

	if err := CheckFileSize(make([]byte, 100), 100, "taskr.cue"); err != nil {
		t.Errorf("data at exact limit: unexpected error %v", err)
	}

	err := CheckFileSize(make([]byte, 101), 100, "taskr.cue")
	if err == nil {
		t.Fatal("expected error for oversized data")
	}
	for _, want := range []string{"taskr.cue", "101", "100"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should contain %q", err, want)
		}
	}
}
