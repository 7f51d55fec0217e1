package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/riftbuddy/riftbuddy-api/internal/core/domain"
	"github.com/riftbuddy/riftbuddy-api/internal/core/ports"
)

// UserService implements the user directory use cases.
type UserService struct {
	repo     ports.UserRepository
	friends  ports.FriendRepository
	roles    ports.RoleRepository
	registry *domain.RoleRegistry
	logger   zerolog.Logger
}

func NewUserService(
	repo ports.UserRepository,
	friends ports.FriendRepository,
	roles ports.RoleRepository,
	registry *domain.RoleRegistry,
	logger zerolog.Logger,
) *UserService {
	return &UserService{repo: repo, friends: friends, roles: roles, registry: registry, logger: logger}
}

func (s *UserService) GetAll(ctx context.Context) ([]*domain.User, error) {
	return s.repo.FindAll(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) GetSafeByID(ctx context.Context, id string) (*domain.SafeUser, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	safe := user.Safe()
	return &safe, nil
}

// GetSelf returns the caller's own full profile: user record, resolved role
// and friend list.
func (s *UserService) GetSelf(ctx context.Context, id string) (*domain.Profile, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	profile := &domain.Profile{User: *user, Friends: []domain.SafeUser{}}

	if role, err := s.roles.FindByID(ctx, user.RoleID); err == nil {
		profile.Role = role
	}

	friendIDs, err := s.friends.ListFriendIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, fid := range friendIDs {
		friend, err := s.repo.FindByID(ctx, fid)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				continue
			}
			return nil, err
		}
		profile.Friends = append(profile.Friends, friend.Safe())
	}

	return profile, nil
}

func (s *UserService) GetOthers(ctx context.Context, id string) ([]domain.SafeUser, error) {
	users, err := s.repo.FindAllExcept(ctx, id)
	if err != nil {
		return nil, err
	}
	return safeProjection(users), nil
}

func (s *UserService) SearchByEmail(ctx context.Context, term string) ([]domain.SafeUser, error) {
	users, err := s.repo.SearchByEmail(ctx, strings.TrimSpace(term))
	if err != nil {
		return nil, err
	}
	return safeProjection(users), nil
}

// Create registers a user. When no role is supplied the configured default
// role is assigned; a supplied role must exist in the registry.
func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	roleID := input.RoleID
	if roleID == "" {
		roleID = s.registry.DefaultRoleID()
	} else if _, ok := s.registry.Priority(roleID); !ok {
		return nil, domain.ErrRoleNotFound
	}

	now := time.Now().UTC()
	user, err := s.repo.Create(ctx, &domain.User{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		RiotID:    input.RiotID,
		RoleID:    roleID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("user created")
	return user, nil
}

// Update applies a partial profile update. A supplied password is bcrypt
// hashed before storage; a supplied role must exist in the registry.
func (s *UserService) Update(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	patch := ports.UserPatch{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Avatar:    input.Avatar,
		RiotID:    input.RiotID,
		BirthDate: input.BirthDate,
	}

	if input.RoleID != nil {
		if _, ok := s.registry.Priority(*input.RoleID); !ok {
			return nil, domain.ErrRoleNotFound
		}
		patch.RoleID = input.RoleID
	}

	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hashed := string(hash)
		patch.PasswordHash = &hashed
	}

	return s.repo.Update(ctx, id, patch)
}

// Delete removes the user and cascades: every friendship edge and friend
// request referencing it is purged.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.friends.PurgeUser(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

// ResolveRoleID returns the user's current role. Consulted by the
// authorization middleware on every protected request so that role changes
// take effect before the session credential expires.
func (s *UserService) ResolveRoleID(ctx context.Context, id string) (string, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return user.RoleID, nil
}

func safeProjection(users []*domain.User) []domain.SafeUser {
	out := make([]domain.SafeUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Safe())
	}
	return out
}
