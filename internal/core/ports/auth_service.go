package ports

import (
	"context"

	"github.com/riftbuddy/riftbuddy-api/internal/core/domain"
)

// IdentityProvider exchanges an authorization code for identity claims at
// the external provider. A single failed exchange surfaces as
// domain.ErrAuthenticationFailed; there is no retry.
type IdentityProvider interface {
	AuthorizeURL(state string) string
	Exchange(ctx context.Context, code string) (*domain.Identity, error)
}

// LoginStateStore persists short-lived OAuth state values between the login
// redirect and the provider callback.
type LoginStateStore interface {
	Save(ctx context.Context, state string) error
	// Consume removes the state and reports whether it was present.
	Consume(ctx context.Context, state string) (bool, error)
}

// AuthService implements the external login flow and session issuance.
type AuthService interface {
	// LoginURL mints a state value and returns the provider authorize URL to
	// redirect the browser to.
	LoginURL(ctx context.Context) (string, error)
	// HandleCallback exchanges the code, finds or creates the local user by
	// email, and returns a signed session credential.
	HandleCallback(ctx context.Context, code, state string) (string, error)
}
