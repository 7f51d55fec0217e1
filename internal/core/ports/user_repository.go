package ports

import (
	"context"
	"time"

	"github.com/riftbuddy/riftbuddy-api/internal/core/domain"
)

// UserPatch carries a partial profile update: only non-nil fields are
// applied.
type UserPatch struct {
	FirstName    *string
	LastName     *string
	Email        *string
	Avatar       *string
	RiotID       *string
	RoleID       *string
	PasswordHash *string
	BirthDate    *time.Time
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrEmailTaken when the email
	// is already registered (unique index).
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	// FindAllExcept returns every user but the given one.
	FindAllExcept(ctx context.Context, id string) ([]*domain.User, error)
	// SearchByEmail matches emails containing term, case-insensitively.
	SearchByEmail(ctx context.Context, term string) ([]*domain.User, error)
	// Update applies the non-nil fields of patch and returns the updated user.
	Update(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
