// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

package sec

// # User Roles

// Role represents the authorization level granted to an account.
type Role string

const (
	// Unrestricted system access
	RoleAdmin Role = "admin"

	// Can review questions and curate the symptom catalogue
	RoleModerator Role = "moderator"

	// Default role for standard registered users
	RoleUser Role = "user"
)

// DefaultRole is assigned to every new registration.
const DefaultRole = RoleUser

// AccountRoles is the closed set of roles that denote an existing account.
var AccountRoles = []Role{RoleUser, RoleAdmin, RoleModerator}

// Valid reports whether r belongs to the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleUser:
		return true
	default:
		return false
	}
}

// ParseRole converts a stored role name into a [Role].
// Unknown names yield the empty role, which no permission accepts.
func ParseRole(name string) Role {
	role := Role(name)
	if !role.Valid() {
		return ""
	}
	return role
}

// String implements fmt.Stringer.
func (r Role) String() string { return string(r) }
