package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/mahad1921/DineSight/internal/metrics"
	"github.com/mahad1921/DineSight/internal/middleware"
	"github.com/mahad1921/DineSight/internal/repo"
)

// ==========================
// CheckIn Handler
// ==========================
type CheckInHandler struct {
	CheckIns *repo.CheckInRepo
	Halls    *repo.HallRepo
}

// ==========================
// Check in: replace any previous check-in with one at the chosen hall
// ==========================
func (h *CheckInHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	me, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/feed", http.StatusSeeOther)
		return
	}
	hallID, err := strconv.Atoi(r.FormValue("hall_id"))
	if err != nil {
		http.Redirect(w, r, "/feed", http.StatusSeeOther)
		return
	}

	if _, err := h.Halls.GetByID(r.Context(), hallID); err != nil {
		if err != sql.ErrNoRows {
			slog.Error("checkin: load hall", "err", err)
		}
		http.Redirect(w, r, "/feed", http.StatusSeeOther)
		return
	}

	now := time.Now().UTC()
	if _, err := h.CheckIns.Replace(r.Context(), me.ID, hallID, now); err != nil {
		slog.Error("checkin: replace", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	metrics.IncCheckIns("created")

	h.respond(w, r, me.ID)
}

// ==========================
// Clear: delete all of the viewer's check-ins (idempotent)
// ==========================
func (h *CheckInHandler) Clear(w http.ResponseWriter, r *http.Request) {
	me, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := h.CheckIns.ClearForUser(r.Context(), me.ID); err != nil {
		slog.Error("checkin: clear", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	metrics.IncCheckIns("cleared")

	h.respond(w, r, me.ID)
}

// respond recomputes the viewer's feed and returns just the activity fragment
// for htmx requests; plain form posts get the usual redirect.
func (h *CheckInHandler) respond(w http.ResponseWriter, r *http.Request, viewerID int) {
	if r.Header.Get("HX-Request") != "true" {
		http.Redirect(w, r, "/feed", http.StatusSeeOther)
		return
	}

	now := time.Now().UTC()
	feed, err := h.CheckIns.FeedFor(r.Context(), viewerID, now)
	if err != nil {
		slog.Error("checkin: recompute feed", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	renderTemplate(w, "fragments/activity.html", map[string]interface{}{
		"CheckIns": feed,
		"Now":      now,
	})
}
