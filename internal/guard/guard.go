// Package guard decides whether a view may render for the current session
// state. It is a pure function: navigation itself is the caller's job.
package guard

import (
	"github.com/staffdeck/staffdeck/internal/session"
)

// View names a navigable destination
type View string

// Views
const (
	ViewLogin     View = "login"
	ViewDashboard View = "dashboard"
	ViewEmployees View = "employees"
	ViewProfile   View = "profile"
)

// DefaultView is the authenticated landing view
const DefaultView = ViewDashboard

// Protected reports whether a view requires an authenticated session.
// Unrecognized views are protected.
func (v View) Protected() bool {
	return v != ViewLogin
}

// Decision is the guard's verdict for a (state, view) pair
type Decision int

const (
	// Allow renders the requested view
	Allow Decision = iota
	// ShowLoading renders a loading indicator; no navigation happens until
	// the session resolves
	ShowLoading
	// RedirectLogin sends the user to the login view
	RedirectLogin
	// RedirectHome sends an authenticated user away from the login view
	RedirectHome
)

// String returns the decision name
func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case ShowLoading:
		return "show-loading"
	case RedirectLogin:
		return "redirect-login"
	case RedirectHome:
		return "redirect-home"
	default:
		return "unknown"
	}
}

// Resolve gates a view against the session state
func Resolve(state session.State, view View) Decision {
	if state == session.StateInitializing {
		return ShowLoading
	}

	if view.Protected() {
		if state == session.StateAuthenticated {
			return Allow
		}
		return RedirectLogin
	}

	// Login view: an authenticated visit bounces to the landing view.
	if state == session.StateAuthenticated {
		return RedirectHome
	}
	return Allow
}
