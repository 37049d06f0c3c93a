package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mahad1921/DineSight/internal/metrics"
	"github.com/mahad1921/DineSight/internal/middleware"
	"github.com/mahad1921/DineSight/internal/repo"
)

// ==========================
// Follow Handler
// ==========================
type FollowHandler struct {
	Follows *repo.FollowRepo
}

// ==========================
// Follow (self-follow and duplicates are silent no-ops)
// ==========================
func (h *FollowHandler) Follow(w http.ResponseWriter, r *http.Request) {
	me, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/feed", http.StatusSeeOther)
		return
	}
	targetID, err := strconv.Atoi(r.FormValue("user_id"))
	if err != nil {
		http.Redirect(w, r, "/feed", http.StatusSeeOther)
		return
	}

	if _, err := h.Follows.Follow(r.Context(), me.ID, targetID); err != nil {
		slog.Error("follow", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	metrics.IncFollows("follow")

	http.Redirect(w, r, "/feed", http.StatusSeeOther)
}

// ==========================
// Unfollow (no-op when no edge exists)
// ==========================
func (h *FollowHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	me, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/feed", http.StatusSeeOther)
		return
	}
	targetID, err := strconv.Atoi(r.FormValue("user_id"))
	if err != nil {
		http.Redirect(w, r, "/feed", http.StatusSeeOther)
		return
	}

	if err := h.Follows.Unfollow(r.Context(), me.ID, targetID); err != nil {
		slog.Error("unfollow", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	metrics.IncFollows("unfollow")

	http.Redirect(w, r, "/feed", http.StatusSeeOther)
}
