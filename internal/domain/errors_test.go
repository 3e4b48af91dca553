package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := NewValidationError("username", "Username cannot be empty")

	if got := err.Error(); got != "validation: username: Username cannot be empty" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if err.Message != "Username cannot be empty" {
		t.Fatalf("unexpected Message: %q", err.Message)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
}

func TestValidationError_Wrapped(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("register: %w", NewValidationError("entry_id", "Entry ID is required"))
	if !errors.Is(err, ErrValidation) {
		t.Fatal("wrapped ValidationError should match ErrValidation")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatal("errors.As should find *ValidationError")
	}
	if verr.Field != "entry_id" {
		t.Fatalf("unexpected Field: %q", verr.Field)
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{ErrNotFound, ErrAlreadyExists, ErrValidation, ErrCorrupt}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel errors %d and %d should not match", i, j)
			}
		}
	}
}
