package entities

import "strings"

// Role is the acting employee's role name, passed explicitly into every
// privileged operation. The employee directory itself is an external read
// model; only the role string crosses into this core.

type Role string

const (
	RoleDirector Role = "DIRECTOR"
	RoleStaff    Role = "STAFF"
)

// IsDirector reports whether the role may approve, pay or reject expenses.
// Matching is case-insensitive since the role name originates upstream.
func (r Role) IsDirector() bool {
	return strings.EqualFold(string(r), string(RoleDirector))
}
