package services

import (
	"context"
	"errors"

	"github.com/arzan03/AskSolve/internal/apperr"
	"github.com/arzan03/AskSolve/internal/models"
	"github.com/arzan03/AskSolve/internal/repository"
)

// SessionContext is the per-request auth state handed to every route. A nil
// Identity means the caller is anonymous; Err is set when the token could not
// be checked at all.
type SessionContext struct {
	Token    string
	Identity *SessionIdentity
	Err      error
}

func (s *SessionContext) Authenticated() bool {
	return s != nil && s.Identity != nil
}

// RoleResolver turns a session identity into the role snapshot every
// role-gated route renders from.
type RoleResolver struct {
	users repository.Users
}

func NewRoleResolver(users repository.Users) *RoleResolver {
	return &RoleResolver{users: users}
}

// Resolve fails with ErrAuthenticationRequired when there is no identity or no
// profile record for it, and with ErrTransientStore when the lookup fails.
func (r *RoleResolver) Resolve(ctx context.Context, id *SessionIdentity) (models.RoleSnapshot, error) {
	if id == nil {
		return models.RoleSnapshot{}, apperr.Unauthenticated("Authentication required")
	}
	u, err := r.users.GetByID(ctx, id.UserID)
	if errors.Is(err, apperr.ErrNotFound) {
		return models.RoleSnapshot{}, apperr.Unauthenticated("No profile for this account")
	}
	if err != nil {
		return models.RoleSnapshot{}, apperr.Store("could not determine role", err)
	}
	return models.RoleSnapshot{
		UserID:      u.ID,
		DisplayName: u.DisplayName,
		Place:       u.Place,
		IsAdmin:     u.IsAdmin,
	}, nil
}
