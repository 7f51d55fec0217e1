package ports

import (
	"context"

	"github.com/riftbuddy/riftbuddy-api/internal/core/domain"
)

// RolePatch carries a partial role update: only non-nil fields are applied.
type RolePatch struct {
	Title       *string
	Description *string
}

// RoleRepository defines persistence operations for role records.
type RoleRepository interface {
	// Seed upserts the given roles by identifier. Called once at startup;
	// existing records are left untouched.
	Seed(ctx context.Context, roles []domain.Role) error
	FindAll(ctx context.Context) ([]*domain.Role, error)
	FindByID(ctx context.Context, id string) (*domain.Role, error)
	Create(ctx context.Context, role *domain.Role) (*domain.Role, error)
	Update(ctx context.Context, id string, patch RolePatch) (*domain.Role, error)
	Delete(ctx context.Context, id string) error
}
