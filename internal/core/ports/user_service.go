package ports

import (
	"context"
	"time"

	"github.com/riftbuddy/riftbuddy-api/internal/core/domain"
)

// CreateUserInput carries the data needed to register a user. RoleID is
// optional: when empty the configured default role is assigned.
type CreateUserInput struct {
	Email     string
	FirstName string
	LastName  string
	RiotID    string
	RoleID    string
}

// UpdateUserInput carries a partial profile update. Only non-nil fields are
// mutated. Password is hashed by the service before storage.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Avatar    *string
	RiotID    *string
	RoleID    *string
	Password  *string
	BirthDate *time.Time
}

// UserService defines use-case operations for the user directory.
type UserService interface {
	GetAll(ctx context.Context) ([]*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetSafeByID returns the safe projection of any user.
	GetSafeByID(ctx context.Context, id string) (*domain.SafeUser, error)
	// GetSelf returns the caller's full profile including role and friends.
	GetSelf(ctx context.Context, id string) (*domain.Profile, error)
	// GetOthers returns every user but the caller, safe projection.
	GetOthers(ctx context.Context, id string) ([]domain.SafeUser, error)
	// SearchByEmail matches emails containing term case-insensitively and
	// returns safe projections only.
	SearchByEmail(ctx context.Context, term string) ([]domain.SafeUser, error)
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	// Delete removes the user and purges every friendship edge and friend
	// request referencing it.
	Delete(ctx context.Context, id string) error
	// ResolveRoleID returns the user's current role identifier. Authorization
	// reads the role here rather than trusting the session credential, since
	// the role can change after issuance.
	ResolveRoleID(ctx context.Context, id string) (string, error)
}
