package web

import (
	"net/http"

	"github.com/gorilla/csrf"

	"clubhouse/internal/adapters/http/middleware"
	"clubhouse/internal/application/orchestrators"
	domainAccount "clubhouse/internal/domain/account"
)

// landingPath picks the post-login destination for a role.
func landingPath(role string) string {
	switch role {
	case string(domainAccount.RoleAdmin):
		return "/admin"
	case string(domainAccount.RoleManager):
		return "/manager"
	default:
		return "/notices"
	}
}

// handleLogin handles GET (form) and POST (authenticate) for /login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		// If already logged in, redirect to the role's landing page
		if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
			http.Redirect(w, r, landingPath(sess.Role), http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "login.html", map[string]any{
			"CSRFToken": csrf.Token(r),
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		input := orchestrators.LoginInput{
			Email:    r.FormValue("Email"),
			Password: r.FormValue("Password"),
		}

		deps := orchestrators.LoginDeps{
			AccountStore:   stores.AccountStore,
			PlayerStore:    stores.PlayerStore,
			SelectionStore: stores.FixtureStore,
		}

		result, err := orchestrators.ExecuteLogin(r.Context(), input, deps)
		if err != nil {
			renderTemplate(w, r, "login.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Error":     err.Error(),
			})
			return
		}

		// Create session
		token, err := sessions.Create(middleware.Session{
			AccountID:     result.AccountID,
			Email:         result.Email,
			FirstName:     result.FirstName,
			Role:          string(result.Role),
			Status:        result.Status,
			SelectionFlag: result.SelectionFlag,
		})
		if err != nil {
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}

		middleware.SetSessionCookie(w, token)
		http.Redirect(w, r, landingPath(string(result.Role)), http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleLogout handles POST /logout
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	// Delete session. A missing or stale cookie still clears cleanly.
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err == nil {
		sessions.Delete(cookie.Value)
	}

	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleSignup handles GET (form) and POST (create account) for /signup
func handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
			http.Redirect(w, r, landingPath(sess.Role), http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "signup.html", map[string]any{
			"CSRFToken": csrf.Token(r),
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		if r.FormValue("Password") != r.FormValue("ConfirmPassword") {
			renderTemplate(w, r, "signup.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Error":     "passwords do not match",
			})
			return
		}

		input := orchestrators.CreateAccountInput{
			FirstName: r.FormValue("FirstName"),
			LastName:  r.FormValue("LastName"),
			Email:     r.FormValue("Email"),
			Phone:     r.FormValue("Phone"),
			Password:  r.FormValue("Password"),
		}

		deps := orchestrators.CreateAccountDeps{
			AccountStore: stores.AccountStore,
			GenerateID:   generateID,
			Now:          timeNow,
		}

		if _, err := orchestrators.ExecuteCreateAccount(r.Context(), input, deps); err != nil {
			renderTemplate(w, r, "signup.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Error":     err.Error(),
			})
			return
		}

		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// refreshSession reloads the account and rewrites the session snapshot so the
// next render reflects the stored status. Only the member's own transitions
// call this; an admin decision made while the member is logged in shows up on
// their next login, matching the login-time-snapshot session model.
func refreshSession(r *http.Request) {
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return
	}
	sess, ok := sessions.Get(cookie.Value)
	if !ok {
		return
	}
	acct, err := stores.AccountStore.GetByID(r.Context(), sess.AccountID)
	if err != nil {
		return
	}
	sess.Role = string(acct.Role)
	sess.Status = acct.Status
	sessions.Update(cookie.Value, sess)
}
