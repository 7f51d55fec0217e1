package ports

import (
	"context"

	"github.com/riftbuddy/riftbuddy-api/internal/core/domain"
)

// CreateRoleInput carries the data for a new role record. Role creation is a
// superAdmin-only escape hatch; the three seeded tiers cover normal operation.
type CreateRoleInput struct {
	ID          string
	Title       string
	Description string
}

// RoleService defines use-case operations for role records.
type RoleService interface {
	GetAll(ctx context.Context) ([]*domain.Role, error)
	GetByID(ctx context.Context, id string) (*domain.Role, error)
	Create(ctx context.Context, input CreateRoleInput) (*domain.Role, error)
	Update(ctx context.Context, id string, patch RolePatch) (*domain.Role, error)
	Delete(ctx context.Context, id string) error
}
