package domain

import (
	"errors"
	"testing"
)

func TestNewAPIError_MessageChain(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		want       string
	}{
		{
			name:       "first candidate wins",
			candidates: []string{"server said no", "nested message"},
			want:       "server said no",
		},
		{
			name:       "falls through empty candidates",
			candidates: []string{"", "nested message"},
			want:       "nested message",
		},
		{
			name:       "all empty falls back to generic",
			candidates: []string{"", ""},
			want:       GenericNetworkError,
		},
		{
			name:       "no candidates",
			candidates: nil,
			want:       GenericNetworkError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewAPIError(tt.candidates...)
			if err.Message != tt.want {
				t.Errorf("Message = %q, want %q", err.Message, tt.want)
			}
			if err.Title != "Error occurred" {
				t.Errorf("Title = %q, want Error occurred", err.Title)
			}
			if err.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	verr := &ValidationError{Fields: map[string]string{
		"firstName":   "First name is required*",
		"bank.name":   "This field is required*",
		"accountName": "This field is required*",
	}}

	msg, ok := verr.FieldError("firstName")
	if !ok || msg != "First name is required*" {
		t.Errorf("FieldError(firstName) = %q, %v", msg, ok)
	}
	if _, ok := verr.FieldError("lastName"); ok {
		t.Error("expected no error for lastName")
	}

	// Error output is deterministic: field paths are sorted.
	want := "validation failed: accountName: This field is required*; bank.name: This field is required*; firstName: First name is required*"
	if verr.Error() != want {
		t.Errorf("Error() = %q, want %q", verr.Error(), want)
	}

	empty := &ValidationError{}
	if empty.Error() != "validation failed" {
		t.Errorf("empty Error() = %q", empty.Error())
	}
}

func TestNewErrorNotification(t *testing.T) {
	apiErr := NewAPIError("balance too low")
	n := NewErrorNotification(apiErr)
	if n.Status != NotifyError || n.Title != "Error occurred" || n.Description != "balance too low" {
		t.Errorf("unexpected notification: %+v", n)
	}

	n = NewErrorNotification(errors.New("boom"))
	if n.Description != "boom" {
		t.Errorf("expected boom, got %q", n.Description)
	}

	n = NewErrorNotification(nil)
	if n.Description != GenericNetworkError {
		t.Errorf("expected generic fallback, got %q", n.Description)
	}
}
