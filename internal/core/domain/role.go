package domain

import "errors"

// Tier is one of the three fixed role tiers, totally ordered by priority.
type Tier string

const (
	TierDefault    Tier = "default"
	TierAdmin      Tier = "admin"
	TierSuperAdmin Tier = "superAdmin"
)

// tierPriorities defines the role hierarchy: a higher priority inherits the
// permissions of every lower one.
var tierPriorities = map[Tier]int{
	TierDefault:    1,
	TierAdmin:      2,
	TierSuperAdmin: 3,
}

var ErrRoleNotFound = errors.New("role not found")
var ErrForbidden = errors.New("access forbidden")

// Priority returns the tier's position in the hierarchy, or 0 for an
// unknown tier.
func (t Tier) Priority() int {
	return tierPriorities[t]
}

// Role is one of the three seeded role records.
type Role struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// RoleRegistry is the immutable mapping from seeded role identifiers to
// their tier priority. It is built once at startup from configuration and
// consulted by lookup on every authorization check.
type RoleRegistry struct {
	priorities map[string]int
	ids        map[Tier]string
}

// NewRoleRegistry builds the registry from the three configured role IDs.
// All three must be present and distinct.
func NewRoleRegistry(defaultID, adminID, superAdminID string) (*RoleRegistry, error) {
	ids := map[Tier]string{
		TierDefault:    defaultID,
		TierAdmin:      adminID,
		TierSuperAdmin: superAdminID,
	}
	priorities := make(map[string]int, len(ids))
	for tier, id := range ids {
		if id == "" {
			return nil, errors.New("role registry: missing id for tier " + string(tier))
		}
		if _, dup := priorities[id]; dup {
			return nil, errors.New("role registry: duplicate role id " + id)
		}
		priorities[id] = tier.Priority()
	}
	return &RoleRegistry{priorities: priorities, ids: ids}, nil
}

// Priority returns the priority of a role identifier. ok is false when the
// id is not one of the three seeded roles.
func (r *RoleRegistry) Priority(roleID string) (int, bool) {
	p, ok := r.priorities[roleID]
	return p, ok
}

// RoleID returns the seeded identifier for a tier.
func (r *RoleRegistry) RoleID(t Tier) string {
	return r.ids[t]
}

// DefaultRoleID is the role assigned to users created at first login.
func (r *RoleRegistry) DefaultRoleID() string {
	return r.ids[TierDefault]
}

// Satisfies reports whether the given role meets a route's requirement.
// A route with no required tiers is unconditionally permitted. Otherwise the
// role's priority must be >= the priority of any one required tier, so a
// route requiring only "default" is open to admin and superAdmin as well.
func (r *RoleRegistry) Satisfies(roleID string, required ...Tier) bool {
	if len(required) == 0 {
		return true
	}
	p, ok := r.priorities[roleID]
	if !ok {
		return false
	}
	for _, tier := range required {
		if p >= tier.Priority() {
			return true
		}
	}
	return false
}

// SeedRoles returns the three canonical role records provisioned at startup.
func (r *RoleRegistry) SeedRoles() []Role {
	return []Role{
		{
			ID:          r.ids[TierDefault],
			Title:       string(TierDefault),
			Description: "Standard user with access to base features",
		},
		{
			ID:          r.ids[TierAdmin],
			Title:       string(TierAdmin),
			Description: "Administrator with access to user and content management",
		},
		{
			ID:          r.ids[TierSuperAdmin],
			Title:       string(TierSuperAdmin),
			Description: "Super administrator with full access to system configuration",
		},
	}
}
