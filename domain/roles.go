package domain

// Role is the closed set of staff roles recognized by the platform.
// The set and the capability table below change only with a deployment;
// there is no runtime role or permission editing.
type Role string

const (
	RoleOwner        Role = "owner"
	RoleAdmin        Role = "admin"
	RoleDoctor       Role = "doctor"
	RoleNurse        Role = "nurse"
	RoleReceptionist Role = "receptionist"
	RoleSupport      Role = "support"
)

// AllRoles lists every recognized role
func AllRoles() []Role {
	return []Role{RoleOwner, RoleAdmin, RoleDoctor, RoleNurse, RoleReceptionist, RoleSupport}
}

// roleRanks totally orders roles by authority
var roleRanks = map[Role]int{
	RoleOwner:        60,
	RoleAdmin:        50,
	RoleDoctor:       40,
	RoleNurse:        30,
	RoleReceptionist: 20,
	RoleSupport:      10,
}

// Valid reports whether r is one of the recognized roles
func (r Role) Valid() bool {
	_, ok := roleRanks[r]
	return ok
}

// Rank returns the authority rank of the role. Unknown roles rank
// below every recognized one.
func (r Role) Rank() int {
	return roleRanks[r]
}

// Outranks reports whether r carries strictly higher authority than other
func (r Role) Outranks(other Role) bool {
	return r.Rank() > other.Rank()
}

// Permission names a single capability on a platform resource
type Permission string

const (
	PermTenantsRead       Permission = "tenants:read"
	PermTenantsWrite      Permission = "tenants:write"
	PermBranchesRead      Permission = "branches:read"
	PermBranchesWrite     Permission = "branches:write"
	PermUsersRead         Permission = "users:read"
	PermUsersWrite        Permission = "users:write"
	PermPatientsRead      Permission = "patients:read"
	PermPatientsWrite     Permission = "patients:write"
	PermAppointmentsRead  Permission = "appointments:read"
	PermAppointmentsWrite Permission = "appointments:write"
	PermBillingRead       Permission = "billing:read"
	PermBillingWrite      Permission = "billing:write"
	PermReportsRead       Permission = "reports:read"
	PermMessagesSend      Permission = "messages:send"
)

// rolePermissions is the static capability table. Every role returned by
// AllRoles must have an entry here; the permission service refuses to
// start otherwise.
var rolePermissions = map[Role][]Permission{
	RoleOwner: {
		PermTenantsRead, PermTenantsWrite,
		PermBranchesRead, PermBranchesWrite,
		PermUsersRead, PermUsersWrite,
		PermPatientsRead, PermPatientsWrite,
		PermAppointmentsRead, PermAppointmentsWrite,
		PermBillingRead, PermBillingWrite,
		PermReportsRead, PermMessagesSend,
	},
	RoleAdmin: {
		PermTenantsRead,
		PermBranchesRead, PermBranchesWrite,
		PermUsersRead, PermUsersWrite,
		PermPatientsRead, PermPatientsWrite,
		PermAppointmentsRead, PermAppointmentsWrite,
		PermBillingRead, PermBillingWrite,
		PermReportsRead, PermMessagesSend,
	},
	RoleDoctor: {
		PermBranchesRead, PermUsersRead,
		PermPatientsRead, PermPatientsWrite,
		PermAppointmentsRead, PermAppointmentsWrite,
		PermReportsRead, PermMessagesSend,
	},
	RoleNurse: {
		PermBranchesRead,
		PermPatientsRead, PermPatientsWrite,
		PermAppointmentsRead, PermMessagesSend,
	},
	RoleReceptionist: {
		PermBranchesRead, PermPatientsRead,
		PermAppointmentsRead, PermAppointmentsWrite,
		PermBillingRead, PermMessagesSend,
	},
	RoleSupport: {
		PermBranchesRead, PermPatientsRead, PermAppointmentsRead,
	},
}

// PermissionsForRole returns the capability set for a role and whether the
// role is known. Callers must treat the returned slice as read-only.
func PermissionsForRole(r Role) ([]Permission, bool) {
	perms, ok := rolePermissions[r]
	return perms, ok
}
