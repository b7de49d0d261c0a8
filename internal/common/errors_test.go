package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestUserErrorMessage(t *testing.T) {
	err := NewUserError("failed to open document", errors.New("no such file"))
	if got, want := err.Error(), "failed to open document: no such file"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	bare := &UserError{UserMessage: "something went wrong"}
	if got := bare.Error(); got != "something went wrong" {
		t.Errorf("Error() without cause = %q", got)
	}
}

func TestUserErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("open report.pdf: %w", ErrDocumentUnreadable)
	err := NewUserError("failed to open document", cause)

	if !errors.Is(err, ErrDocumentUnreadable) {
		t.Error("sentinel not reachable through UserError")
	}

	var userErr *UserError
	if !errors.As(err, &userErr) {
		t.Fatal("errors.As failed to recover *UserError")
	}
	if userErr.UserMessage != "failed to open document" {
		t.Errorf("UserMessage = %q", userErr.UserMessage)
	}
}
