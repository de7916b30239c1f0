package services

import (
	"context"
	"errors"
	"testing"

	"github.com/arzan03/AskSolve/internal/apperr"
	"github.com/arzan03/AskSolve/internal/models"
)

type recordingRelay struct {
	sent []models.ContactMessage
	err  error
}

func (r *recordingRelay) Send(_ context.Context, msg models.ContactMessage) error {
	r.sent = append(r.sent, msg)
	return r.err
}

func TestContactSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("missing field", func(t *testing.T) {
		relay := &recordingRelay{}
		err := NewContactService(relay).Submit(ctx, models.ContactMessage{Name: "Ana", Email: " ", Message: "hi"})
		if !errors.Is(err, apperr.ErrValidation) || apperr.Message(err) != "All fields are required." {
			t.Fatalf("err = %v", err)
		}
		if len(relay.sent) != 0 {
			t.Fatal("invalid message relayed")
		}
	})

	t.Run("relayed once trimmed", func(t *testing.T) {
		relay := &recordingRelay{}
		err := NewContactService(relay).Submit(ctx, models.ContactMessage{Name: " Ana ", Email: "ana@example.com", Message: " hello "})
		if err != nil {
			t.Fatal(err)
		}
		if len(relay.sent) != 1 || relay.sent[0].Name != "Ana" || relay.sent[0].Message != "hello" {
			t.Fatalf("sent = %+v", relay.sent)
		}
	})

	t.Run("relay failure", func(t *testing.T) {
		relay := &recordingRelay{err: errors.New("smtp down")}
		err := NewContactService(relay).Submit(ctx, models.ContactMessage{Name: "Ana", Email: "a@b.c", Message: "hi"})
		if !errors.Is(err, apperr.ErrTransientStore) || apperr.Message(err) != "Failed to send email." {
			t.Fatalf("err = %v", err)
		}
		if len(relay.sent) != 1 {
			t.Fatalf("relay attempted %d times, want exactly 1", len(relay.sent))
		}
	})
}
