package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindsSurviveWrapping(t *testing.T) {
	err := fmt.Errorf("answer question: %w", NotFound("question not found"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if errors.Is(err, ErrValidation) {
		t.Fatal("not-found error must not match ErrValidation")
	}
	if got := Message(err); got != "question not found" {
		t.Errorf("Message = %q", got)
	}
}

func TestStoreKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Store("could not determine role", cause)
	if !errors.Is(err, ErrTransientStore) || !errors.Is(err, cause) {
		t.Fatalf("store error lost kind or cause: %v", err)
	}
	if Message(err) != "could not determine role" {
		t.Errorf("unexpected message %q", Message(err))
	}
}

func TestValidationField(t *testing.T) {
	err := Validation("text", "Question text is required")
	if FieldOf(err) != "text" {
		t.Errorf("FieldOf = %q", FieldOf(err))
	}
	if FieldOf(errors.New("plain")) != "" {
		t.Error("plain errors have no field")
	}
}
