package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/arzan03/AskSolve/internal/apperr"
	"github.com/arzan03/AskSolve/internal/config"
	"github.com/arzan03/AskSolve/internal/models"
	"github.com/arzan03/AskSolve/internal/repository"
	"github.com/arzan03/AskSolve/internal/session"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// SessionIdentity is the authenticated-user handle carried by a session token.
type SessionIdentity struct {
	UserID    string
	SessionID string
	ExpiresAt time.Time
}

// Session is issued on sign-in.
type Session struct {
	Token string
	SessionIdentity
}

// SessionEvent reports a session becoming active (sign-in) or ending (sign-out).
type SessionEvent struct {
	UserID    string
	SessionID string
	Active    bool
}

type SignUpRequest struct {
	Email       string
	Password    string
	DisplayName string
	Place       string
}

type IdentityProvider interface {
	SignUp(ctx context.Context, req SignUpRequest) (string, error)
	SignIn(ctx context.Context, email, password string) (Session, error)
	SignOut(ctx context.Context, token string) error
	Verify(ctx context.Context, token string) (*SessionIdentity, error)
	OnSessionChange(fn func(SessionEvent)) (unsubscribe func())
}

// LocalIdentity authenticates against password hashes stored on the users
// collection and issues HS256 session tokens.
type LocalIdentity struct {
	users       repository.Users
	admins      config.AllowList
	secret      []byte
	ttl         time.Duration
	revocations session.Revocations
	logger      *zap.Logger
	hashCost    int
	now         func() time.Time

	mu        sync.Mutex
	listeners map[int]func(SessionEvent)
	nextID    int
}

var _ IdentityProvider = (*LocalIdentity)(nil)

type IdentityOptions struct {
	Admins      config.AllowList
	Secret      string
	TTL         time.Duration
	Revocations session.Revocations
	// HashCost defaults to bcrypt.DefaultCost.
	HashCost int
}

func NewLocalIdentity(users repository.Users, opts IdentityOptions, logger *zap.Logger) *LocalIdentity {
	if opts.HashCost == 0 {
		opts.HashCost = bcrypt.DefaultCost
	}
	if opts.Revocations == nil {
		opts.Revocations = session.NewMemoryRevocations()
	}
	return &LocalIdentity{
		users:       users,
		admins:      opts.Admins,
		secret:      []byte(opts.Secret),
		ttl:         opts.TTL,
		revocations: opts.Revocations,
		logger:      logger,
		hashCost:    opts.HashCost,
		now:         time.Now,
		listeners:   make(map[int]func(SessionEvent)),
	}
}

func hashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(hash), err
}

// verifyPassword reports whether password matches the stored bcrypt hash.
func verifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// SignUp creates the profile record. Admin status is decided here, once, from
// the allow-list. The caller is not signed in.
func (p *LocalIdentity) SignUp(ctx context.Context, req SignUpRequest) (string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return "", apperr.Validation("email", "Email is required.")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", apperr.Validation("email", "Email address is invalid.")
	}
	if len(req.Password) < minPasswordLength {
		return "", apperr.Validation("password", fmt.Sprintf("Password must be at least %d characters.", minPasswordLength))
	}

	hash, err := hashPassword(req.Password, p.hashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		DisplayName:  orDefault(req.DisplayName, models.DefaultDisplayName),
		Place:        orDefault(req.Place, models.DefaultPlace),
		IsAdmin:      p.admins.Contains(email),
		CreatedAt:    p.now().UTC(),
	}
	if err := p.users.Create(ctx, user); err != nil {
		return "", err
	}

	p.logger.Info("user signed up", zap.String("user_id", user.ID), zap.Bool("admin", user.IsAdmin))
	return user.ID, nil
}

func (p *LocalIdentity) SignIn(ctx context.Context, email, password string) (Session, error) {
	user, err := p.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, apperr.ErrNotFound) {
		return Session{}, apperr.Unauthenticated("invalid credentials")
	}
	if err != nil {
		return Session{}, err
	}
	if !verifyPassword(password, user.PasswordHash) {
		return Session{}, apperr.Unauthenticated("invalid credentials")
	}

	now := p.now()
	id := SessionIdentity{
		UserID:    user.ID,
		SessionID: uuid.NewString(),
		ExpiresAt: now.Add(p.ttl),
	}
	claims := jwt.RegisteredClaims{
		Subject:   id.UserID,
		ID:        id.SessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(id.ExpiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return Session{}, fmt.Errorf("sign session token: %w", err)
	}

	p.emit(SessionEvent{UserID: id.UserID, SessionID: id.SessionID, Active: true})
	return Session{Token: token, SessionIdentity: id}, nil
}

func (p *LocalIdentity) SignOut(ctx context.Context, token string) error {
	id, err := p.Verify(ctx, token)
	if err != nil {
		return err
	}
	if err := p.revocations.Revoke(ctx, id.SessionID, id.ExpiresAt); err != nil {
		return apperr.Store("could not sign out", err)
	}
	p.emit(SessionEvent{UserID: id.UserID, SessionID: id.SessionID, Active: false})
	return nil
}

func (p *LocalIdentity) Verify(ctx context.Context, token string) (*SessionIdentity, error) {
	if token == "" {
		return nil, apperr.Unauthenticated("Missing token")
	}

	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (any, error) { return p.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(p.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return nil, apperr.Unauthenticated("Invalid or expired session")
	}
	if claims.Subject == "" || claims.ID == "" {
		return nil, apperr.Unauthenticated("Invalid token payload")
	}

	revoked, err := p.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, apperr.Store("could not verify session", err)
	}
	if revoked {
		return nil, apperr.Unauthenticated("Session has ended")
	}

	return &SessionIdentity{
		UserID:    claims.Subject,
		SessionID: claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// OnSessionChange registers fn for sign-in and sign-out events. fn runs on the
// signing goroutine and must not block.
func (p *LocalIdentity) OnSessionChange(fn func(SessionEvent)) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.listeners, id)
		p.mu.Unlock()
	}
}

func (p *LocalIdentity) emit(ev SessionEvent) {
	p.mu.Lock()
	fns := make([]func(SessionEvent), 0, len(p.listeners))
	for _, fn := range p.listeners {
		fns = append(fns, fn)
	}
	p.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

func orDefault(s, fallback string) string {
	if v := strings.TrimSpace(s); v != "" {
		return v
	}
	return fallback
}
