package models

import "strings"

// Role represents a user's role in the contingent
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleAdultLeader Role = "adult_leader"
	RoleYouth       Role = "youth"
	RoleParent      Role = "parent"
)

// AllRoles returns every valid role
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleAdultLeader, RoleYouth, RoleParent}
}

// Valid reports whether the role is one of the closed enumeration.
// Anything else is denied everywhere, never silently accepted.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleAdultLeader, RoleYouth, RoleParent:
		return true
	}
	return false
}

// ParseRole parses a role string, returning ok=false for unknown values
func ParseRole(s string) (Role, bool) {
	r := Role(strings.TrimSpace(s))
	return r, r.Valid()
}

// RoleList is a set of roles stored as a comma-separated column.
// Unknown tokens are dropped on parse, so a corrupted or legacy value
// can only narrow access, never widen it.
type RoleList string

// NewRoleList builds a RoleList from roles
func NewRoleList(roles ...Role) RoleList {
	parts := make([]string, 0, len(roles))
	for _, r := range roles {
		if r.Valid() {
			parts = append(parts, string(r))
		}
	}
	return RoleList(strings.Join(parts, ","))
}

// Roles returns the valid roles in the list
func (l RoleList) Roles() []Role {
	if l == "" {
		return nil
	}
	var roles []Role
	for _, part := range strings.Split(string(l), ",") {
		if r, ok := ParseRole(part); ok {
			roles = append(roles, r)
		}
	}
	return roles
}

// Contains reports whether the list includes the role
func (l RoleList) Contains(role Role) bool {
	if !role.Valid() {
		return false
	}
	for _, r := range l.Roles() {
		if r == role {
			return true
		}
	}
	return false
}

// SubsetOf reports whether every role in the list is also in other
func (l RoleList) SubsetOf(other RoleList) bool {
	for _, r := range l.Roles() {
		if !other.Contains(r) {
			return false
		}
	}
	return true
}
