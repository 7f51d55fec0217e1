package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/riftbuddy/riftbuddy-api/internal/core/domain"
	"github.com/riftbuddy/riftbuddy-api/internal/core/ports"
)

// RoleService implements role record management. List/get is open to admins;
// mutation is a superAdmin escape hatch enforced at the route level.
type RoleService struct {
	repo   ports.RoleRepository
	logger zerolog.Logger
}

func NewRoleService(repo ports.RoleRepository, logger zerolog.Logger) *RoleService {
	return &RoleService{repo: repo, logger: logger}
}

func (s *RoleService) GetAll(ctx context.Context) ([]*domain.Role, error) {
	return s.repo.FindAll(ctx)
}

func (s *RoleService) GetByID(ctx context.Context, id string) (*domain.Role, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *RoleService) Create(ctx context.Context, input ports.CreateRoleInput) (*domain.Role, error) {
	role, err := s.repo.Create(ctx, &domain.Role{
		ID:          input.ID,
		Title:       input.Title,
		Description: input.Description,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("role_id", role.ID).Str("title", role.Title).Msg("role created")
	return role, nil
}

func (s *RoleService) Update(ctx context.Context, id string, patch ports.RolePatch) (*domain.Role, error) {
	return s.repo.Update(ctx, id, patch)
}

func (s *RoleService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("role_id", id).Msg("role deleted")
	return nil
}
