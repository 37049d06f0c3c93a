package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mahad1921/DineSight/internal/middleware"
	"github.com/mahad1921/DineSight/internal/repo"
)

// ==========================
// Dining Handler
// ==========================
type DiningHandler struct {
	Halls    *repo.HallRepo
	CheckIns *repo.CheckInRepo
}

// ==========================
// Hall page: who is at this hall right now
// ==========================
func (h *DiningHandler) Hall(w http.ResponseWriter, r *http.Request) {
	me, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	hallID, err := strconv.Atoi(chi.URLParam(r, "hallID"))
	if err != nil {
		http.Redirect(w, r, "/feed", http.StatusSeeOther)
		return
	}

	hall, err := h.Halls.GetByID(r.Context(), hallID)
	if err != nil {
		if err != sql.ErrNoRows {
			slog.Error("dining: load hall", "err", err)
		}
		http.Redirect(w, r, "/feed", http.StatusSeeOther)
		return
	}

	now := time.Now().UTC()
	checkins, err := h.CheckIns.ActiveForHall(r.Context(), hallID, now)
	if err != nil {
		slog.Error("dining: load check-ins", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	renderTemplate(w, "dining.html", map[string]interface{}{
		"User":     me,
		"Hall":     hall,
		"CheckIns": checkins,
		"Now":      now,
	})
}
