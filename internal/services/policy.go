package services

import (
	"context"
	"errors"

	"github.com/arzan03/AskSolve/internal/apperr"
	"github.com/arzan03/AskSolve/internal/models"
)

type RouteClass int

const (
	// Public routes are served without resolving a role.
	Public RouteClass = iota
	Authenticated
	AdminOnly
)

type State int

const (
	Init State = iota
	Authorized
	Redirected
	Errored
)

func (s State) String() string {
	switch s {
	case Init:
		return "init"
	case Authorized:
		return "authorized"
	case Redirected:
		return "redirected"
	case Errored:
		return "errored"
	}
	return "unknown"
}

const (
	LoginRoute = "/login"
	HomeRoute  = "/"
)

// Outcome is the terminal state of a page load's access check. Role is set
// only when State is Authorized on a non-public route.
type Outcome struct {
	State    State
	Redirect string
	Role     *models.RoleSnapshot
	Err      error
}

type roleSource interface {
	Resolve(ctx context.Context, id *SessionIdentity) (models.RoleSnapshot, error)
}

// Policy is the single place routes decide whether to render, redirect or fail.
type Policy struct {
	roles roleSource
}

func NewPolicy(roles roleSource) *Policy {
	return &Policy{roles: roles}
}

func (p *Policy) Authorize(ctx context.Context, class RouteClass, sess *SessionContext) Outcome {
	if class == Public {
		return Outcome{State: Authorized}
	}
	if sess != nil && sess.Err != nil {
		return Outcome{State: Errored, Redirect: LoginRoute, Err: sess.Err}
	}
	if !sess.Authenticated() {
		return Outcome{State: Redirected, Redirect: LoginRoute, Err: apperr.Unauthenticated("Authentication required")}
	}

	role, err := p.roles.Resolve(ctx, sess.Identity)
	switch {
	case errors.Is(err, apperr.ErrAuthenticationRequired):
		return Outcome{State: Redirected, Redirect: LoginRoute, Err: err}
	case err != nil:
		// Never fall back to an open view when the role is unknown.
		return Outcome{State: Errored, Redirect: LoginRoute, Err: err}
	}

	if class == AdminOnly && !role.IsAdmin {
		return Outcome{State: Redirected, Redirect: HomeRoute, Err: apperr.Denied("Access denied. Admins only.")}
	}
	return Outcome{State: Authorized, Role: &role}
}
