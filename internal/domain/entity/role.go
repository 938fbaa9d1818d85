package entity

import "strings"

// Role is a flat authorization tag. Roles do not imply one another.
type Role string

const (
	RoleMember Role = "MEMBER"
	RoleAdmin  Role = "ADMIN"
)

func (r Role) Valid() bool { return r == RoleMember || r == RoleAdmin }

// ParseRole accepts any casing and falls back to RoleMember for unknown input.
func ParseRole(s string) Role {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if r.Valid() {
		return r
	}
	return RoleMember
}
