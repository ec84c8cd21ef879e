// Package authz is the single place role-based gating lives. Every view
// consults Can instead of re-deriving permissions from the role string.
//
// The server enforces authorization on every request; these checks only
// decide what the client offers to show.
package authz

import (
	"github.com/staffdeck/staffdeck/internal/api"
)

// Capability names a client-side gated action
type Capability string

// Gated capabilities
const (
	// CapViewDashboardDetails gates the management panels of the dashboard
	// (department aggregates, charts, recent hires)
	CapViewDashboardDetails Capability = "dashboard:details"

	// CapManageEmployees gates the employee list and create/update
	CapManageEmployees Capability = "employees:manage"

	// CapDeleteEmployees gates employee deletion. Managers can manage but
	// not delete; deletion stays admin-only.
	CapDeleteEmployees Capability = "employees:delete"
)

// Can reports whether the given role holds a capability
func Can(role api.Role, cap Capability) bool {
	switch cap {
	case CapViewDashboardDetails, CapManageEmployees:
		return role == api.RoleAdmin || role == api.RoleManager
	case CapDeleteEmployees:
		return role == api.RoleAdmin
	default:
		return false
	}
}

// CanUser is Can over an optional user; a nil user holds no capabilities
func CanUser(user *api.User, cap Capability) bool {
	if user == nil {
		return false
	}
	return Can(user.Role, cap)
}
