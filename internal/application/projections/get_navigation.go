package projections

import (
	"clubhouse/internal/domain/account"
	"clubhouse/internal/domain/membership"
)

// NavLink is one entry in the navigation bar. Disabled entries are status
// indicators rendered without a target.
type NavLink struct {
	Label    string
	Path     string
	Disabled bool
}

// GetNavigationQuery carries the session facts the navigation depends on.
// A zero query is an unauthenticated visitor.
type GetNavigationQuery struct {
	Authenticated bool
	FirstName     string
	Role          account.Role
	Status        membership.Status
	SelectionFlag bool
}

// GetNavigationResult carries the ordered set of visible links.
type GetNavigationResult struct {
	Links      []NavLink
	Welcome    string // display name for the welcome banner, empty for guests
	ShowLogout bool
}

// QueryGetNavigation computes the visible navigation links for a session.
// This is a pure projection: it must be re-derived whenever identity, status
// or the selection flag changes, and holds no state of its own.
// POST: links appear in a fixed order; multiple links may be visible at once
func QueryGetNavigation(query GetNavigationQuery) GetNavigationResult {
	if !query.Authenticated {
		return GetNavigationResult{
			Links: []NavLink{
				{Label: "Login", Path: "/login"},
				{Label: "Sign Up", Path: "/signup"},
			},
		}
	}

	var links []NavLink

	switch query.Role {
	case account.RoleAdmin:
		links = append(links, NavLink{Label: "Dashboard", Path: "/admin"})
	case account.RoleManager:
		links = append(links, NavLink{Label: "Dashboard", Path: "/manager"})
	default:
		links = append(links,
			NavLink{Label: "Notice Board", Path: "/notices"},
			NavLink{Label: "Fixtures & Results", Path: "/fixtures"},
		)
	}

	if query.Role == account.RoleUser {
		switch query.Status {
		case membership.StatusNone:
			links = append(links, NavLink{Label: "Application", Path: "/application"})
		case membership.StatusPendingApplication:
			links = append(links, NavLink{Label: "Application Pending", Disabled: true})
		case membership.StatusApprovedApplication:
			links = append(links, NavLink{Label: "Registration", Path: "/registration"})
		case membership.StatusPendingRegistration:
			links = append(links, NavLink{Label: "Registration Pending", Disabled: true})
		case membership.StatusReviewRegistration:
			links = append(links, NavLink{Label: "Please Review", Path: "/registration/amend"})
		case membership.StatusRegistered:
			links = append(links, NavLink{Label: "Registered", Disabled: true})
		}
	}

	if query.Role == account.RolePlayer && query.SelectionFlag {
		links = append(links, NavLink{Label: "Match Briefing", Path: "/briefing"})
	}

	return GetNavigationResult{
		Links:      links,
		Welcome:    query.FirstName,
		ShowLogout: true,
	}
}

// CanReach reports whether a session may open the given path. Public paths
// are always reachable; everything else must be the target of a visible,
// enabled navigation link.
// INVARIANT: consistent with QueryGetNavigation for the same query
func CanReach(query GetNavigationQuery, path string) bool {
	switch path {
	case "/", "/login", "/signup":
		return true
	}
	result := QueryGetNavigation(query)
	for _, link := range result.Links {
		if !link.Disabled && link.Path == path {
			return true
		}
	}
	return false
}
