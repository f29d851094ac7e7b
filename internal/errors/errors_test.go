package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains []string
	}{
		{
			name: "error with cause",
			err: Wrap(KindNetwork, "locate", "request failed",
				errors.New("connection refused")),
			contains: []string{"[network:locate]", "request failed", "connection refused"},
		},
		{
			name:     "error without cause",
			err:      New(KindMissingField, "locate", "data[0].media_url not found"),
			contains: []string{"[missing_field:locate]", "data[0].media_url not found"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errStr := tt.err.Error()
			for _, substr := range tt.contains {
				if !strings.Contains(errStr, substr) {
					t.Errorf("error string %q does not contain %q", errStr, substr)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	wrappedErr := Wrap(KindDecode, "fetch", "wrapped", originalErr)

	if !errors.Is(wrappedErr, originalErr) {
		t.Error("Unwrap should return the original error")
	}
}

func TestWrap_KeepsInnerKind(t *testing.T) {
	inner := New(KindFontUnavailable, "font", "bad font")
	outer := Wrap(KindUnknown, "compose", "compose failed", fmt.Errorf("context: %w", inner))

	if KindOf(outer) != KindFontUnavailable {
		t.Errorf("KindOf() = %s, expected %s", KindOf(outer), KindFontUnavailable)
	}
}

func TestWrap_Nil(t *testing.T) {
	if err := Wrap(KindNetwork, "op", "msg", nil); err != nil {
		t.Errorf("Wrap(nil) = %v, expected nil", err)
	}
}

func TestIsKind(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		kind     Kind
		expected bool
	}{
		{
			name:     "direct error kind match",
			err:      New(KindConfig, "test", "message"),
			kind:     KindConfig,
			expected: true,
		},
		{
			name:     "wrapped error kind match",
			err:      fmt.Errorf("outer: %w", Wrap(KindNetwork, "test", "message", errors.New("cause"))),
			kind:     KindNetwork,
			expected: true,
		},
		{
			name:     "error kind mismatch",
			err:      New(KindConfig, "test", "message"),
			kind:     KindDecode,
			expected: false,
		},
		{
			name:     "non-typed error",
			err:      errors.New("plain error"),
			kind:     KindConfig,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			kind:     KindConfig,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsKind(tt.err, tt.kind)
			if result != tt.expected {
				t.Errorf("IsKind() = %v, expected %v", result, tt.expected)
			}
		})
	}
}
