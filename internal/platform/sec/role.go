// Copyright (c) 2026 ClaimPoint. All rights reserved.

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access, manages staff accounts
	RoleAdmin UserRole = "ADMIN"

	// Records found items and handles claims at the counter
	RoleStaff UserRole = "STAFF"

	// Default role for standard registered users
	RoleUser UserRole = "USER"
)

// # Role Matching

// ClaimPoint deliberately has no role hierarchy: an ADMIN does not see the
// STAFF dashboard and vice versa. Authorization checks are exact-match only.

// Is reports whether the role equals the target role.
func (r UserRole) Is(target UserRole) bool {
	return r == target
}

// Valid reports whether the role is one of the three known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleUser:
		return true
	}
	return false
}

// ParseRole converts a raw string into a [UserRole].
// Unknown values return the empty role and false.
func ParseRole(raw string) (UserRole, bool) {
	role := UserRole(raw)
	if !role.Valid() {
		return "", false
	}
	return role, true
}
