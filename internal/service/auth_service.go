package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/request-tracker/internal/auth"
	"github.com/spec-kit/request-tracker/internal/config"
	"github.com/spec-kit/request-tracker/internal/domain"
	"github.com/spec-kit/request-tracker/internal/events"
	"github.com/spec-kit/request-tracker/internal/repository"
	apperrors "github.com/spec-kit/request-tracker/pkg/util"
)

// AuthService coordinates sign-up and credential login flows.
type AuthService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// SignUp creates a credentials-based account. Uniqueness of email and
// provider id is enforced by the store's unique indexes; the duplicate
// sentinel from the insert is the conflict signal.
func (s *AuthService) SignUp(ctx context.Context, name, email, password string) (*domain.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, apperrors.NewValidationError("name, email and password are required", nil)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        &email,
		PasswordHash: &hash,
		Provider:     domain.ProviderCredentials,
		ProviderID:   email,
		Role:         domain.RoleExternal,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("user already exists", map[string]any{"email": email})
		}
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type: events.EventUserRegistered,
		Payload: events.UserRegisteredPayload{
			UserID:   user.ID,
			Email:    email,
			Provider: user.Provider,
		},
	})
	return user, nil
}

// Authenticate verifies email/password credentials and issues a signed
// session token. Accounts created through an external identity provider
// carry no password hash and can never pass this path.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (domain.Identity, string, time.Time, error) {
	if email == "" || password == "" {
		return domain.Identity{}, "", time.Time{}, apperrors.NewValidationError("email and password are required", nil)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Identity{}, "", time.Time{}, apperrors.NewUnauthorized("no user found with this email")
		}
		return domain.Identity{}, "", time.Time{}, err
	}

	if user.PasswordHash == nil || *user.PasswordHash == "" {
		return domain.Identity{}, "", time.Time{}, apperrors.NewInvalidCredentials("password sign-in not available for this account")
	}
	if err := auth.ComparePassword(*user.PasswordHash, password); err != nil {
		return domain.Identity{}, "", time.Time{}, apperrors.NewInvalidCredentials("invalid credentials")
	}

	role := user.Role
	if role == "" {
		role = domain.RoleExternal
	}
	identity := domain.Identity{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.EmailValue(),
		Role:  role,
	}

	token, exp, err := s.tokenMgr.GenerateToken(identity)
	if err != nil {
		return domain.Identity{}, "", time.Time{}, err
	}
	return identity, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
