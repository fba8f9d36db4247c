package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sritek/hospital-ops-sub000/domain"
)

func TestNewPermissionService_CoversEveryRole(t *testing.T) {
	svc, err := NewPermissionService()
	require.NoError(t, err)

	for _, role := range domain.AllRoles() {
		perms, err := svc.PermissionsFor(role)
		require.NoError(t, err, "role %s", role)
		assert.NotEmpty(t, perms, "role %s must hold at least one permission", role)
	}
}

func TestPermissionServiceImpl_PermissionsFor(t *testing.T) {
	svc, err := NewPermissionService()
	require.NoError(t, err)

	ownerPerms, err := svc.PermissionsFor(domain.RoleOwner)
	require.NoError(t, err)
	assert.Contains(t, ownerPerms, domain.PermTenantsWrite)

	_, err = svc.PermissionsFor(domain.Role("ghost"))
	assert.ErrorIs(t, err, domain.ErrUnknownRole)

	// Mutating the returned slice must not poison the table.
	ownerPerms[0] = domain.Permission("tampered")
	fresh, err := svc.PermissionsFor(domain.RoleOwner)
	require.NoError(t, err)
	assert.NotContains(t, fresh, domain.Permission("tampered"))
}

func TestPermissionServiceImpl_HasAny(t *testing.T) {
	svc, err := NewPermissionService()
	require.NoError(t, err)

	tests := []struct {
		name     string
		role     domain.Role
		required []domain.Permission
		expected bool
	}{
		{
			name:     "owner holds tenant write",
			role:     domain.RoleOwner,
			required: []domain.Permission{domain.PermTenantsWrite},
			expected: true,
		},
		{
			name:     "admin lacks tenant write but holds users write",
			role:     domain.RoleAdmin,
			required: []domain.Permission{domain.PermTenantsWrite, domain.PermUsersWrite},
			expected: true,
		},
		{
			name:     "support cannot touch billing",
			role:     domain.RoleSupport,
			required: []domain.Permission{domain.PermBillingRead, domain.PermBillingWrite},
			expected: false,
		},
		{
			name:     "unknown role holds nothing",
			role:     domain.Role("ghost"),
			required: []domain.Permission{domain.PermPatientsRead},
			expected: false,
		},
		{
			name:     "empty requirement matches nothing",
			role:     domain.RoleOwner,
			required: nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, svc.HasAny(tt.role, tt.required...))
		})
	}
}

func TestPermissionServiceImpl_HasAll(t *testing.T) {
	svc, err := NewPermissionService()
	require.NoError(t, err)

	assert.True(t, svc.HasAll(domain.RoleDoctor, domain.PermPatientsRead, domain.PermPatientsWrite))
	assert.False(t, svc.HasAll(domain.RoleDoctor, domain.PermPatientsRead, domain.PermBillingWrite))
	assert.False(t, svc.HasAll(domain.Role("ghost"), domain.PermPatientsRead))

	// Vacuously true for a known role.
	assert.True(t, svc.HasAll(domain.RoleSupport))
}

func TestPermissionServiceImpl_Outranks(t *testing.T) {
	svc, err := NewPermissionService()
	require.NoError(t, err)

	assert.True(t, svc.Outranks(domain.RoleOwner, domain.RoleAdmin))
	assert.True(t, svc.Outranks(domain.RoleAdmin, domain.RoleSupport))
	assert.False(t, svc.Outranks(domain.RoleAdmin, domain.RoleOwner))
	assert.False(t, svc.Outranks(domain.RoleNurse, domain.RoleNurse))
	assert.False(t, svc.Outranks(domain.Role("ghost"), domain.RoleSupport))
}
