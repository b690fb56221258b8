package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(ErrInternalServer, cause)

	if err.Code != "INTERNAL_ERROR" {
		t.Errorf("expected INTERNAL_ERROR, got %s", err.Code)
	}
	if err.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", err.StatusCode)
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected wrapped error to unwrap to its cause")
	}
	if err.Error() != ErrInternalServer.Message {
		t.Errorf("internal message leaked: %s", err.Error())
	}
}

func TestWithMessage(t *testing.T) {
	err := WithMessage(ErrInvalidID, "Invalid transaction ID")

	if err.Message != "Invalid transaction ID" {
		t.Errorf("unexpected message %q", err.Message)
	}
	if err.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", err.StatusCode)
	}
	if ErrInvalidID.Message != "Invalid ID" {
		t.Error("sentinel must not be mutated")
	}
}

func TestIs(t *testing.T) {
	wrapped := fmt.Errorf("create budget: %w", WithMessage(ErrDuplicateBudget, "taken"))

	if !stderrors.Is(wrapped, ErrDuplicateBudget) {
		t.Error("expected errors.Is to match by code")
	}
	if stderrors.Is(wrapped, ErrBudgetNotFound) {
		t.Error("expected different codes not to match")
	}
}
