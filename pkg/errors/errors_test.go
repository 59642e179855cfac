package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeInvalidInput, "length %g too large", 10001.0),
			want: "INVALID_INPUT: length 10001 too large",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeInvalidConfig, fmt.Errorf("bad toml"), "decode %s", "config.toml"),
			want: "INVALID_CONFIG: decode config.toml: bad toml",
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

func TestIsThroughWrapping(t *testing.T) {
	base := New(ErrCodeInvalidInput, "post width must be positive")
	wrapped := fmt.Errorf("place: %w", base)

	if !Is(wrapped, ErrCodeInvalidInput) {
		t.Error("Is should find code through fmt.Errorf wrapping")
	}
	if Is(wrapped, ErrCodeInternal) {
		t.Error("Is should not match a different code")
	}
	if Is(errors.New("plain"), ErrCodeInvalidInput) {
		t.Error("Is should be false for plain errors")
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeCache, cause, "redis get")
	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the cause")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeNotFound, "missing")); got != ErrCodeNotFound {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeNotFound)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidInput, "bad span")); got != "bad span" {
		t.Errorf("UserMessage() = %q, want %q", got, "bad span")
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q, want %q", got, "plain")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", New(ErrCodeInvalidInput, "x"), http.StatusBadRequest},
		{"invalid config", New(ErrCodeInvalidConfig, "x"), http.StatusBadRequest},
		{"invalid format", New(ErrCodeInvalidFormat, "x"), http.StatusBadRequest},
		{"not found", New(ErrCodeNotFound, "x"), http.StatusNotFound},
		{"cache", New(ErrCodeCache, "x"), http.StatusInternalServerError},
		{"plain", errors.New("x"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}
