// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "locate BLAS library"},
			expected: "failed to locate BLAS library",
		},
		{
			name: "operation with resource",
			err: &ActionableError{
				Operation: "read header",
				Resource:  "/usr/include/cblas.h",
			},
			expected: "failed to read header: /usr/include/cblas.h",
		},
		{
			name: "operation with cause",
			err: &ActionableError{
				Operation: "load config",
				Cause:     errors.New("syntax error at line 5"),
			},
			expected: "failed to load config: syntax error at line 5",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "derive linker arguments",
				Resource:  "/usr/lib/libopenblas.so",
				Cause:     errors.New("no import library"),
			},
			expected: "failed to derive linker arguments: /usr/lib/libopenblas.so: no import library",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := WrapWithOperation(cause, "probe symbols")
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestActionableError_Format(t *testing.T) {
	err := NewErrorContext().
		WithOperation("locate BLAS library").
		WithSuggestion("Install libopenblas-dev").
		WithSuggestion("Pass --path with an explicit directory").
		Wrap(errors.New("no candidates")).
		Build()

	short := err.Format(false)
	if !strings.Contains(short, "• Install libopenblas-dev") {
		t.Errorf("Format(false) missing suggestion bullet:\n%s", short)
	}
	if strings.Contains(short, "Error chain") {
		t.Error("Format(false) must not include the error chain")
	}

	long := err.Format(true)
	if !strings.Contains(long, "Error chain:") || !strings.Contains(long, "no candidates") {
		t.Errorf("Format(true) missing error chain:\n%s", long)
	}
}

func TestErrorContext_BuildRequiresOperation(t *testing.T) {
	if NewErrorContext().WithResource("/x").Build() != nil {
		t.Error("Build() without operation should return nil")
	}
	if NewErrorContext().WithResource("/x").BuildError() != nil {
		t.Error("BuildError() without operation should return nil")
	}
}

func TestWrapWithContext_NilError(t *testing.T) {
	if WrapWithContext(nil, "op", "res") != nil {
		t.Error("wrapping nil should return nil")
	}
}

func TestActionableError_HasSuggestions(t *testing.T) {
	if NewActionableError("x").HasSuggestions() {
		t.Error("no suggestions expected")
	}
	err := NewErrorContext().WithOperation("x").WithSuggestions("a", "b").Build()
	if !err.HasSuggestions() || len(err.Suggestions) != 2 {
		t.Errorf("Suggestions = %v, want two entries", err.Suggestions)
	}
}
