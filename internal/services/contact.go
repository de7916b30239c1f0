package services

import (
	"context"
	"strings"

	"github.com/arzan03/AskSolve/internal/apperr"
	"github.com/arzan03/AskSolve/internal/models"
)

// Relay forwards a contact message to the site owner.
type Relay interface {
	Send(ctx context.Context, msg models.ContactMessage) error
}

type ContactService struct {
	relay Relay
}

func NewContactService(relay Relay) *ContactService {
	return &ContactService{relay: relay}
}

// Submit relays msg once. There is no retry; the caller reports failure.
func (s *ContactService) Submit(ctx context.Context, msg models.ContactMessage) error {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Message = strings.TrimSpace(msg.Message)
	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		return apperr.Validation("", "All fields are required.")
	}
	if err := s.relay.Send(ctx, msg); err != nil {
		return apperr.Store("Failed to send email.", err)
	}
	return nil
}
