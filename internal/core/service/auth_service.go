package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/riftbuddy/riftbuddy-api/internal/core/domain"
	"github.com/riftbuddy/riftbuddy-api/internal/core/ports"
)

const defaultTokenTTL = time.Hour

// AuthService implements the Riot login flow and session issuance.
type AuthService struct {
	users     ports.UserRepository
	provider  ports.IdentityProvider
	states    ports.LoginStateStore
	registry  *domain.RoleRegistry
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	provider ports.IdentityProvider,
	states ports.LoginStateStore,
	registry *domain.RoleRegistry,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{
		users:     users,
		provider:  provider,
		states:    states,
		registry:  registry,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// LoginURL mints a random state, stores it, and returns the provider
// authorize URL for the browser redirect.
func (s *AuthService) LoginURL(ctx context.Context) (string, error) {
	state, err := newLoginState()
	if err != nil {
		return "", err
	}
	if err := s.states.Save(ctx, state); err != nil {
		return "", err
	}
	return s.provider.AuthorizeURL(state), nil
}

// HandleCallback exchanges the authorization code for identity claims, finds
// or creates the local user by email, and returns a signed session token.
// At most one user record is created; the unique email index is the
// de-duplication key.
func (s *AuthService) HandleCallback(ctx context.Context, code, state string) (string, error) {
	ok, err := s.states.Consume(ctx, state)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", domain.ErrInvalidLoginState
	}

	identity, err := s.provider.Exchange(ctx, code)
	if err != nil {
		s.logger.Warn().Err(err).Msg("identity exchange failed")
		return "", domain.ErrAuthenticationFailed
	}

	user, err := s.users.FindByEmail(ctx, identity.Email)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		now := time.Now().UTC()
		user, err = s.users.Create(ctx, &domain.User{
			Email:     identity.Email,
			FirstName: identity.GivenName,
			LastName:  identity.FamilyName,
			RiotID:    identity.Sub,
			RoleID:    s.registry.DefaultRoleID(),
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return "", err
		}
		s.logger.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("user created at first login")
	case err != nil:
		return "", err
	}

	return s.issueToken(user)
}

// issueToken signs the session credential: {sub, email, first/last name},
// valid for tokenTTL from now. The role is deliberately absent — it is
// re-resolved from the user directory on every authorization check.
func (s *AuthService) issueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":        user.ID,
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"iat":        now.Unix(),
		"exp":        now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func newLoginState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
