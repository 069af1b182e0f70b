package web

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/csrf"

	"clubhouse/internal/adapters/http/middleware"
	"clubhouse/internal/application/listutil"
	"clubhouse/internal/application/orchestrators"
	"clubhouse/internal/application/projections"
)

// handleNotices handles GET /notices: the members' notice board.
func handleNotices(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	result, err := projections.QueryGetNoticeBoard(r.Context(),
		projections.GetNoticeBoardQuery{
			AgeGroup: r.URL.Query().Get("age_group"),
			Page:     listutil.ParsePageParams(r.URL.Query()),
		},
		projections.GetNoticeBoardDeps{NoticeStore: stores.NoticeStore},
	)
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "notices.html", map[string]any{
			"Notices": result.Notices,
			"Page":    result.Page,
		})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// handleAdminNotices handles GET (board incl. drafts) and POST (create) for
// /admin/notices
func handleAdminNotices(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	if r.Method == "GET" {
		result, err := projections.QueryGetNoticeBoard(r.Context(),
			projections.GetNoticeBoardQuery{
				IncludeDraft: true,
				Page:         listutil.ParsePageParams(r.URL.Query()),
			},
			projections.GetNoticeBoardDeps{NoticeStore: stores.NoticeStore},
		)
		if err != nil {
			internalError(w, err)
			return
		}
		renderTemplate(w, r, "admin_notices.html", map[string]any{
			"CSRFToken": csrf.Token(r),
			"Notices":   result.Notices,
			"Page":      result.Page,
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		input := orchestrators.CreateNoticeInput{
			Type:      r.FormValue("Type"),
			Title:     r.FormValue("Title"),
			Content:   r.FormValue("Content"),
			AgeGroup:  r.FormValue("AgeGroup"),
			Publish:   r.FormValue("Publish") == "on",
			CreatedBy: sess.AccountID,
		}
		deps := orchestrators.CreateNoticeDeps{
			NoticeStore: stores.NoticeStore,
			GenerateID:  generateID,
			Now:         timeNow,
		}

		if _, err := orchestrators.ExecuteCreateNotice(r.Context(), input, deps); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Redirect(w, r, "/admin/notices", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handlePublishNotice handles POST /admin/notices/publish
func handlePublishNotice(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	input := orchestrators.PublishNoticeInput{
		NoticeID:    r.FormValue("NoticeID"),
		PublisherID: sess.AccountID,
	}
	deps := orchestrators.PublishNoticeDeps{NoticeStore: stores.NoticeStore, Now: timeNow}

	if _, err := orchestrators.ExecutePublishNotice(r.Context(), input, deps); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/admin/notices", http.StatusSeeOther)
}

// handlePinNotice handles POST /admin/notices/pin
func handlePinNotice(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	input := orchestrators.PinNoticeInput{
		NoticeID: r.FormValue("NoticeID"),
		Pinned:   r.FormValue("Pinned") == "on",
	}
	deps := orchestrators.PinNoticeDeps{NoticeStore: stores.NoticeStore}

	if _, err := orchestrators.ExecutePinNotice(r.Context(), input, deps); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/admin/notices", http.StatusSeeOther)
}

// handleDeleteNotice handles POST /admin/notices/delete
func handleDeleteNotice(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	input := orchestrators.DeleteNoticeInput{
		NoticeID:  r.FormValue("NoticeID"),
		DeletedBy: sess.AccountID,
	}
	deps := orchestrators.DeleteNoticeDeps{NoticeStore: stores.NoticeStore}

	if err := orchestrators.ExecuteDeleteNotice(r.Context(), input, deps); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/admin/notices", http.StatusSeeOther)
}
