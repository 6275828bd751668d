package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/acme/ledgerboard/internal/apperr"
)

var ErrUserNotFound = errors.New("user not found")

// Messages shown on the login form.
const (
	MsgInvalidCredentials = "Invalid credentials."
	MsgTooManyAttempts    = "Too many attempts. Try again later."
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=auth
type Repository interface {
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}

// Limiter bounds login attempts per key.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

type Service struct {
	repo     Repository
	sessions *Sessions
	limiter  Limiter
	validate *validator.Validate
}

func NewService(repo Repository, sessions *Sessions, limiter Limiter) *Service {
	return &Service{
		repo:     repo,
		sessions: sessions,
		limiter:  limiter,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Authorize returns the user matching creds, or nil when the credentials are
// malformed, unknown or wrong. Only a failing user store is an error.
func (s *Service) Authorize(ctx context.Context, creds Credentials) (*User, error) {
	creds.Email = strings.TrimSpace(creds.Email)

	if err := s.validate.Struct(creds); err != nil {
		return nil, nil
	}

	user, err := s.repo.GetUserByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, nil
		}

		return nil, apperr.Store(ctx, "get user", "Failed to fetch user.", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		return nil, nil
	}

	return user, nil
}

// Authenticate signs a user in. On rejection it returns a nil session and the
// message to show on the login form.
func (s *Service) Authenticate(ctx context.Context, creds Credentials) (*Session, string, error) {
	if !s.limiter.Allow(ctx, creds.Email) {
		return nil, MsgTooManyAttempts, nil
	}

	user, err := s.Authorize(ctx, creds)
	if err != nil {
		return nil, "", err
	}

	if user == nil {
		return nil, MsgInvalidCredentials, nil
	}

	session, err := s.sessions.Issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("issuing session: %w", err)
	}

	return session, "", nil
}
