package web

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/csrf"

	"clubhouse/internal/adapters/http/middleware"
	"clubhouse/internal/application/orchestrators"
	"clubhouse/internal/application/projections"
	domainAccount "clubhouse/internal/domain/account"
	domainRegistration "clubhouse/internal/domain/registration"
)

// handleAdminDashboard handles GET /admin: the review queues.
func handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	result, err := projections.QueryGetReviewQueue(r.Context(),
		projections.GetReviewQueueQuery{Now: timeNow()},
		projections.GetReviewQueueDeps{
			ApplicationStore:  stores.ApplicationStore,
			RegistrationStore: stores.RegistrationStore,
		},
	)
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "admin_dashboard.html", map[string]any{
			"CSRFToken":     csrf.Token(r),
			"Applications":  result.Applications,
			"Registrations": result.Registrations,
		})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// handleDecideApplication handles POST /admin/applications/decide
func handleDecideApplication(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	input := orchestrators.DecideApplicationInput{DeciderID: sess.AccountID}
	jsonBody := strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
	if jsonBody {
		var body struct {
			ApplicationID string `json:"application_id"`
			Approve       bool   `json:"approve"`
		}
		if err := strictDecode(r, &body); err != nil {
			http.Error(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}
		input.ApplicationID = body.ApplicationID
		input.Approve = body.Approve
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.ApplicationID = r.FormValue("ApplicationID")
		input.Approve = r.FormValue("Decision") == "approve"
	}
	deps := orchestrators.DecideApplicationDeps{
		AccountStore:     stores.AccountStore,
		ApplicationStore: stores.ApplicationStore,
		EmailSender:      emailSender,
		FromAddress:      emailFromAddress,
		BaseAddress:      baseAddress,
		Now:              timeNow,
	}

	app, err := orchestrators.ExecuteDecideApplication(r.Context(), input, deps)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if jsonBody {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"id": app.ID, "status": app.Status})
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// handleReviewRegistration handles GET (checklist screen) and POST (apply
// checklist) for /admin/registrations/review
func handleReviewRegistration(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	if r.Method == "GET" {
		result, err := projections.QueryGetRegistrationReview(r.Context(),
			projections.GetRegistrationReviewQuery{RegistrationID: r.URL.Query().Get("id"), Now: timeNow()},
			projections.GetRegistrationReviewDeps{RegistrationStore: stores.RegistrationStore},
		)
		if err != nil {
			http.Error(w, "registration not found", http.StatusNotFound)
			return
		}
		renderTemplate(w, r, "review_registration.html", map[string]any{
			"CSRFToken":       csrf.Token(r),
			"Registration":    result.Registration,
			"ChecklistFields": result.ChecklistFields,
			"Adult":           result.Adult,
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		// Every checklist field arrives as acceptable ("on") or not.
		checklist := make(map[string]bool)
		for _, field := range domainRegistration.ChecklistFields() {
			checklist[field] = r.FormValue("check_"+field) == "on"
		}

		input := orchestrators.ReviewRegistrationInput{
			RegistrationID: r.FormValue("RegistrationID"),
			Checklist:      checklist,
			ReviewerID:     sess.AccountID,
		}
		deps := orchestrators.ReviewRegistrationDeps{
			AccountStore:      stores.AccountStore,
			RegistrationStore: stores.RegistrationStore,
			EmailSender:       emailSender,
			FromAddress:       emailFromAddress,
			BaseAddress:       baseAddress,
			Now:               timeNow,
		}

		if _, err := orchestrators.ExecuteReviewRegistration(r.Context(), input, deps); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleCreatePlayer handles POST /admin/players
func handleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	input := orchestrators.CreatePlayerInput{
		RegistrationID:     r.FormValue("RegistrationID"),
		AgeGroup:           r.FormValue("AgeGroup"),
		RegistrationNumber: r.FormValue("RegistrationNumber"),
		PhotoURL:           r.FormValue("PhotoURL"),
		CreatedBy:          sess.AccountID,
	}
	deps := orchestrators.CreatePlayerDeps{
		AccountStore:      stores.AccountStore,
		RegistrationStore: stores.RegistrationStore,
		PlayerStore:       stores.PlayerStore,
		GenerateID:        generateID,
		Now:               timeNow,
	}

	if _, err := orchestrators.ExecuteCreatePlayer(r.Context(), input, deps); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// handleUpdateRole handles POST /admin/roles
func handleUpdateRole(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	input := orchestrators.UpdateRoleInput{
		AccountID: r.FormValue("AccountID"),
		NewRole:   domainAccount.Role(r.FormValue("NewRole")),
		UpdatedBy: sess.AccountID,
	}
	deps := orchestrators.UpdateRoleDeps{AccountStore: stores.AccountStore}

	if _, err := orchestrators.ExecuteUpdateRole(r.Context(), input, deps); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}
