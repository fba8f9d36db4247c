package services

import (
	"fmt"

	"github.com/sritek/hospital-ops-sub000/domain"
)

// PermissionServiceImpl implements domain.PermissionResolver over the
// closed role table. The table is copied and checked at construction so
// a role missing its capability set stops the process at startup
// instead of resolving to nothing at request time.
type PermissionServiceImpl struct {
	permissions map[domain.Role][]domain.Permission
	index       map[domain.Role]map[domain.Permission]struct{}
}

// NewPermissionService validates the role table and builds the resolver
func NewPermissionService() (domain.PermissionResolver, error) {
	roles := domain.AllRoles()
	permissions := make(map[domain.Role][]domain.Permission, len(roles))
	index := make(map[domain.Role]map[domain.Permission]struct{}, len(roles))

	for _, role := range roles {
		perms, ok := domain.PermissionsForRole(role)
		if !ok {
			return nil, fmt.Errorf("role %q has no permission set: %w", role, domain.ErrUnknownRole)
		}
		set := make(map[domain.Permission]struct{}, len(perms))
		for _, perm := range perms {
			set[perm] = struct{}{}
		}
		permissions[role] = perms
		index[role] = set
	}

	return &PermissionServiceImpl{permissions: permissions, index: index}, nil
}

// PermissionsFor implements domain.PermissionResolver. Callers get a
// copy; the table itself is immutable after construction.
func (s *PermissionServiceImpl) PermissionsFor(role domain.Role) ([]domain.Permission, error) {
	perms, ok := s.permissions[role]
	if !ok {
		return nil, domain.ErrUnknownRole
	}
	out := make([]domain.Permission, len(perms))
	copy(out, perms)
	return out, nil
}

// HasAny implements domain.PermissionResolver. An unknown role holds
// nothing.
func (s *PermissionServiceImpl) HasAny(role domain.Role, required ...domain.Permission) bool {
	set, ok := s.index[role]
	if !ok {
		return false
	}
	for _, perm := range required {
		if _, held := set[perm]; held {
			return true
		}
	}
	return false
}

// HasAll implements domain.PermissionResolver
func (s *PermissionServiceImpl) HasAll(role domain.Role, required ...domain.Permission) bool {
	set, ok := s.index[role]
	if !ok {
		return false
	}
	for _, perm := range required {
		if _, held := set[perm]; !held {
			return false
		}
	}
	return true
}

// Outranks implements domain.PermissionResolver
func (s *PermissionServiceImpl) Outranks(a, b domain.Role) bool {
	return a.Outranks(b)
}
