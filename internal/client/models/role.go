package models

import (
	"fmt"
	"strings"
)

// Role is the access level of a user.
type Role string

const (
	RoleAdmin   Role = "admin"
	RolePetugas Role = "petugas"
	RoleViewer  Role = "viewer"
)

// AllRoles lists every role in display order.
var AllRoles = []Role{RoleAdmin, RolePetugas, RoleViewer}

// Label returns the upper-case badge shown next to a user's name.
// Unknown roles are shown as viewers.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "ADMIN"
	case RolePetugas:
		return "PETUGAS"
	default:
		return "PELIHAT"
	}
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RolePetugas, RoleViewer:
		return true
	}
	return false
}

// ParseRole accepts a role name or its label, case-insensitively.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, nil
	case "petugas", "operator":
		return RolePetugas, nil
	case "viewer", "pelihat":
		return RoleViewer, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}
