package web

import (
	"net/http"

	"clubhouse/internal/adapters/http/middleware"
	domainAccount "clubhouse/internal/domain/account"
)

// requireRole wraps a handler func with role-gating middleware.
func requireRole(h http.HandlerFunc, roles ...string) http.HandlerFunc {
	wrapped := middleware.RequireRole(roles...)(h)
	return wrapped.ServeHTTP
}

func registerRoutes(mux *http.ServeMux) {
	// Identity
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/logout", handleLogout)
	mux.HandleFunc("/signup", handleSignup)

	// Membership workflow. Reachability mirrors the navigation links, so a
	// member whose status does not expose a step cannot hit it directly.
	mux.HandleFunc("/application", requireReachable("/application", handleApplication))
	mux.HandleFunc("/registration", requireReachable("/registration", handleRegistration))
	mux.HandleFunc("/registration/amend", requireReachable("/registration/amend", handleAmendRegistration))

	// Member screens
	mux.HandleFunc("/notices", requireReachable("/notices", handleNotices))
	mux.HandleFunc("/fixtures", requireReachable("/fixtures", handleFixtures))
	mux.HandleFunc("/briefing", requireReachable("/briefing", handleBriefing))

	// Admin
	admin := string(domainAccount.RoleAdmin)
	mux.HandleFunc("/admin", requireRole(handleAdminDashboard, admin))
	mux.HandleFunc("/admin/applications/decide", requireRole(handleDecideApplication, admin))
	mux.HandleFunc("/admin/registrations/review", requireRole(handleReviewRegistration, admin))
	mux.HandleFunc("/admin/players", requireRole(handleCreatePlayer, admin))
	mux.HandleFunc("/admin/roles", requireRole(handleUpdateRole, admin))
	mux.HandleFunc("/admin/notices", requireRole(handleAdminNotices, admin))
	mux.HandleFunc("/admin/notices/publish", requireRole(handlePublishNotice, admin))
	mux.HandleFunc("/admin/notices/pin", requireRole(handlePinNotice, admin))
	mux.HandleFunc("/admin/notices/delete", requireRole(handleDeleteNotice, admin))

	// Manager
	manager := string(domainAccount.RoleManager)
	mux.HandleFunc("/manager", requireRole(handleManagerDashboard, manager))
	mux.HandleFunc("/manager/fixtures", requireRole(handleManagerFixtures, manager))
	mux.HandleFunc("/manager/results", requireRole(handleRecordResult, manager))
	mux.HandleFunc("/manager/selection", requireRole(handleTeamSelection, manager))
}
