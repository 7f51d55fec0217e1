package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riftbuddy/riftbuddy-api/internal/core/domain"
	"github.com/riftbuddy/riftbuddy-api/internal/core/ports"
)

// In-memory stubs mirroring the Mongo repositories' contracts, shared by the
// service tests in this package.

const (
	roleDefaultID    = "role-default"
	roleAdminID      = "role-admin"
	roleSuperAdminID = "role-superadmin"
)

func testRegistry() *domain.RoleRegistry {
	reg, err := domain.NewRoleRegistry(roleDefaultID, roleAdminID, roleSuperAdminID)
	if err != nil {
		panic(err)
	}
	return reg
}

type stubUserRepo struct {
	users map[string]*domain.User
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		r.seq++
		copy.ID = fmt.Sprintf("user-%d", r.seq)
	}
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) FindAllExcept(_ context.Context, id string) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.ID != id {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) SearchByEmail(_ context.Context, term string) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if strings.Contains(strings.ToLower(u.Email), strings.ToLower(term)) {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, patch ports.UserPatch) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if patch.FirstName != nil {
		u.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		u.LastName = *patch.LastName
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Avatar != nil {
		u.Avatar = *patch.Avatar
	}
	if patch.RiotID != nil {
		u.RiotID = *patch.RiotID
	}
	if patch.RoleID != nil {
		u.RoleID = *patch.RoleID
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	if patch.BirthDate != nil {
		u.BirthDate = patch.BirthDate
	}
	u.UpdatedAt = time.Now().UTC()
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type pair struct{ a, b string }

type stubFriendRepo struct {
	requests map[pair]*domain.FriendRequest
	edges    map[pair]bool
}

func newStubFriendRepo() *stubFriendRepo {
	return &stubFriendRepo{
		requests: make(map[pair]*domain.FriendRequest),
		edges:    make(map[pair]bool),
	}
}

func (r *stubFriendRepo) CreateRequest(_ context.Context, req *domain.FriendRequest) error {
	key := pair{req.SenderID, req.ReceiverID}
	if _, exists := r.requests[key]; exists {
		return domain.ErrRequestExists
	}
	clone := *req
	r.requests[key] = &clone
	return nil
}

func (r *stubFriendRepo) FindRequest(_ context.Context, senderID, receiverID string) (*domain.FriendRequest, error) {
	req, ok := r.requests[pair{senderID, receiverID}]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	clone := *req
	return &clone, nil
}

func (r *stubFriendRepo) ListIncoming(_ context.Context, receiverID string) ([]*domain.FriendRequest, error) {
	var out []*domain.FriendRequest
	for _, req := range r.requests {
		if req.ReceiverID == receiverID && req.Status == domain.RequestPending {
			clone := *req
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubFriendRepo) Accept(_ context.Context, senderID, receiverID string) error {
	req, ok := r.requests[pair{senderID, receiverID}]
	if !ok {
		return domain.ErrRequestNotFound
	}
	if req.Status != domain.RequestPending {
		return domain.ErrRequestResolved
	}
	req.Status = domain.RequestAccepted
	lo, hi := domain.CanonicalPair(senderID, receiverID)
	r.edges[pair{lo, hi}] = true
	return nil
}

func (r *stubFriendRepo) Reject(_ context.Context, senderID, receiverID string) error {
	req, ok := r.requests[pair{senderID, receiverID}]
	if !ok {
		return domain.ErrRequestNotFound
	}
	if req.Status != domain.RequestPending {
		return domain.ErrRequestResolved
	}
	req.Status = domain.RequestRejected
	return nil
}

func (r *stubFriendRepo) EdgeExists(_ context.Context, a, b string) (bool, error) {
	lo, hi := domain.CanonicalPair(a, b)
	return r.edges[pair{lo, hi}], nil
}

func (r *stubFriendRepo) DeleteEdge(_ context.Context, a, b string) error {
	lo, hi := domain.CanonicalPair(a, b)
	delete(r.edges, pair{lo, hi})
	return nil
}

func (r *stubFriendRepo) ListFriendIDs(_ context.Context, userID string) ([]string, error) {
	var ids []string
	for p := range r.edges {
		if p.a == userID {
			ids = append(ids, p.b)
		} else if p.b == userID {
			ids = append(ids, p.a)
		}
	}
	return ids, nil
}

func (r *stubFriendRepo) PurgeUser(_ context.Context, userID string) error {
	for p := range r.edges {
		if p.a == userID || p.b == userID {
			delete(r.edges, p)
		}
	}
	for p := range r.requests {
		if p.a == userID || p.b == userID {
			delete(r.requests, p)
		}
	}
	return nil
}

type stubRoleRepo struct {
	roles map[string]*domain.Role
}

func newStubRoleRepo() *stubRoleRepo {
	return &stubRoleRepo{roles: make(map[string]*domain.Role)}
}

func (r *stubRoleRepo) Seed(_ context.Context, roles []domain.Role) error {
	for _, role := range roles {
		if _, exists := r.roles[role.ID]; !exists {
			clone := role
			r.roles[role.ID] = &clone
		}
	}
	return nil
}

func (r *stubRoleRepo) FindAll(_ context.Context) ([]*domain.Role, error) {
	out := make([]*domain.Role, 0, len(r.roles))
	for _, role := range r.roles {
		clone := *role
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubRoleRepo) FindByID(_ context.Context, id string) (*domain.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	clone := *role
	return &clone, nil
}

func (r *stubRoleRepo) Create(_ context.Context, role *domain.Role) (*domain.Role, error) {
	clone := *role
	r.roles[role.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubRoleRepo) Update(_ context.Context, id string, patch ports.RolePatch) (*domain.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	if patch.Title != nil {
		role.Title = *patch.Title
	}
	if patch.Description != nil {
		role.Description = *patch.Description
	}
	clone := *role
	return &clone, nil
}

func (r *stubRoleRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.roles[id]; !ok {
		return domain.ErrRoleNotFound
	}
	delete(r.roles, id)
	return nil
}

type stubIdentityProvider struct {
	exchangeFn func(ctx context.Context, code string) (*domain.Identity, error)
}

func (p *stubIdentityProvider) AuthorizeURL(state string) string {
	return "https://auth.example.com/authorize?state=" + state
}

func (p *stubIdentityProvider) Exchange(ctx context.Context, code string) (*domain.Identity, error) {
	return p.exchangeFn(ctx, code)
}

type stubStateStore struct {
	states map[string]bool
}

func newStubStateStore() *stubStateStore {
	return &stubStateStore{states: make(map[string]bool)}
}

func (s *stubStateStore) Save(_ context.Context, state string) error {
	s.states[state] = true
	return nil
}

func (s *stubStateStore) Consume(_ context.Context, state string) (bool, error) {
	if !s.states[state] {
		return false, nil
	}
	delete(s.states, state)
	return true, nil
}
