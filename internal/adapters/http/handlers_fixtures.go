package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/csrf"

	"clubhouse/internal/adapters/http/middleware"
	playerStore "clubhouse/internal/adapters/storage/player"
	"clubhouse/internal/application/orchestrators"
	"clubhouse/internal/application/projections"
)

// handleFixtures handles GET /fixtures: upcoming fixtures and past results,
// grouped by month.
func handleFixtures(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	month, _ := strconv.Atoi(r.URL.Query().Get("month"))
	query := projections.GetFixturesResultsQuery{
		Month:    month,
		AgeGroup: r.URL.Query().Get("age_group"),
		Now:      timeNow(),
	}
	result, err := projections.QueryGetFixturesResults(r.Context(), query,
		projections.GetFixturesResultsDeps{FixtureStore: stores.FixtureStore})
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "fixtures.html", map[string]any{
			"Upcoming": result.Upcoming,
			"Results":  result.Results,
			"Month":    month,
			"AgeGroup": query.AgeGroup,
		})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// handleBriefing handles GET /briefing: the selected player's match details.
func handleBriefing(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	result, err := projections.QueryGetMatchBriefing(r.Context(),
		projections.GetMatchBriefingQuery{AccountID: sess.AccountID, Now: timeNow()},
		projections.GetMatchBriefingDeps{
			PlayerStore:  stores.PlayerStore,
			FixtureStore: stores.FixtureStore,
		},
	)
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "briefing.html", map[string]any{
			"PlayerName": result.PlayerName,
			"Briefings":  result.Briefings,
		})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// handleManagerDashboard handles GET /manager: fixtures with quick links to
// results and selections.
func handleManagerDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	result, err := projections.QueryGetFixturesResults(r.Context(),
		projections.GetFixturesResultsQuery{Now: timeNow()},
		projections.GetFixturesResultsDeps{FixtureStore: stores.FixtureStore})
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "manager.html", map[string]any{
		"CSRFToken": csrf.Token(r),
		"Upcoming":  result.Upcoming,
		"Results":   result.Results,
	})
}

// handleManagerFixtures handles POST /manager/fixtures: create or delete a
// fixture depending on the Action field.
func handleManagerFixtures(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	if r.FormValue("Action") == "delete" {
		input := orchestrators.DeleteFixtureInput{
			FixtureID: r.FormValue("FixtureID"),
			DeletedBy: sess.AccountID,
		}
		deps := orchestrators.DeleteFixtureDeps{FixtureStore: stores.FixtureStore}
		if err := orchestrators.ExecuteDeleteFixture(r.Context(), input, deps); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Redirect(w, r, "/manager", http.StatusSeeOther)
		return
	}

	date, err := time.Parse(dateLayout, r.FormValue("Date"))
	if err != nil {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	input := orchestrators.CreateFixtureInput{
		Date:            date,
		KickoffTime:     r.FormValue("KickoffTime"),
		HomeTeam:        r.FormValue("HomeTeam"),
		AwayTeam:        r.FormValue("AwayTeam"),
		Venue:           r.FormValue("Venue"),
		CompetitionType: r.FormValue("CompetitionType"),
		CompetitionName: r.FormValue("CompetitionName"),
		AgeGroup:        r.FormValue("AgeGroup"),
		CreatedBy:       sess.AccountID,
	}
	deps := orchestrators.CreateFixtureDeps{
		FixtureStore: stores.FixtureStore,
		GenerateID:   generateID,
		Now:          timeNow,
	}

	if _, err := orchestrators.ExecuteCreateFixture(r.Context(), input, deps); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/manager", http.StatusSeeOther)
}

// handleRecordResult handles POST /manager/results
func handleRecordResult(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	homeScore, err := strconv.Atoi(r.FormValue("HomeScore"))
	if err != nil {
		http.Error(w, "scores must be whole numbers", http.StatusBadRequest)
		return
	}
	awayScore, err := strconv.Atoi(r.FormValue("AwayScore"))
	if err != nil {
		http.Error(w, "scores must be whole numbers", http.StatusBadRequest)
		return
	}

	input := orchestrators.RecordResultInput{
		FixtureID:  r.FormValue("FixtureID"),
		HomeScore:  homeScore,
		AwayScore:  awayScore,
		RecordedBy: sess.AccountID,
	}
	deps := orchestrators.RecordResultDeps{
		FixtureStore: stores.FixtureStore,
		GenerateID:   generateID,
		Now:          timeNow,
	}

	if _, err := orchestrators.ExecuteRecordResult(r.Context(), input, deps); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/manager", http.StatusSeeOther)
}

// handleTeamSelection handles GET (squad form) and POST (save) for
// /manager/selection
func handleTeamSelection(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	if r.Method == "GET" {
		fixtureID := r.URL.Query().Get("fixture_id")
		f, err := stores.FixtureStore.GetByID(r.Context(), fixtureID)
		if err != nil {
			http.Error(w, "fixture not found", http.StatusNotFound)
			return
		}
		players, err := stores.PlayerStore.List(r.Context(), playerStore.ListFilter{AgeGroup: f.AgeGroup})
		if err != nil {
			internalError(w, err)
			return
		}
		selection, _ := stores.FixtureStore.GetSelection(r.Context(), fixtureID)
		renderTemplate(w, r, "selection.html", map[string]any{
			"CSRFToken": csrf.Token(r),
			"Fixture":   f,
			"Players":   players,
			"Selection": selection,
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		var playerIDs []string
		for _, id := range r.Form["PlayerIDs"] {
			if id = strings.TrimSpace(id); id != "" {
				playerIDs = append(playerIDs, id)
			}
		}

		input := orchestrators.SaveSelectionInput{
			FixtureID:    r.FormValue("FixtureID"),
			PlayerIDs:    playerIDs,
			MeetingTime:  r.FormValue("MeetingTime"),
			MeetingPlace: r.FormValue("MeetingPlace"),
			Notes:        r.FormValue("Notes"),
			UpdatedBy:    sess.AccountID,
		}
		deps := orchestrators.SaveSelectionDeps{
			FixtureStore: stores.FixtureStore,
			PlayerStore:  stores.PlayerStore,
			Now:          timeNow,
		}

		if _, err := orchestrators.ExecuteSaveSelection(r.Context(), input, deps); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Redirect(w, r, "/manager", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}
