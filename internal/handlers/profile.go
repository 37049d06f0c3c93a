package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mahad1921/DineSight/internal/middleware"
	"github.com/mahad1921/DineSight/internal/repo"
)

// ==========================
// Profile Handler
// ==========================
type ProfileHandler struct {
	Users    *repo.UserRepo
	Follows  *repo.FollowRepo
	CheckIns *repo.CheckInRepo
}

// ==========================
// Profile page: target user, both sides of their follow graph, latest check-in
// ==========================
func (h *ProfileHandler) Profile(w http.ResponseWriter, r *http.Request) {
	me, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	userID, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		http.Redirect(w, r, "/feed", http.StatusSeeOther)
		return
	}

	target, err := h.Users.GetByID(r.Context(), userID)
	if err != nil {
		if err != sql.ErrNoRows {
			slog.Error("profile: load user", "err", err)
		}
		http.Redirect(w, r, "/feed", http.StatusSeeOther)
		return
	}

	followers, err := h.Follows.Followers(r.Context(), target.ID)
	if err != nil {
		slog.Error("profile: load followers", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	following, err := h.Follows.Following(r.Context(), target.ID)
	if err != nil {
		slog.Error("profile: load following", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	myFollowingIDs, err := h.Follows.FollowingIDs(r.Context(), me.ID)
	if err != nil {
		slog.Error("profile: load viewer following", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Latest check-in even when expired: the profile shows where the user
	// was last seen, not only where they are now.
	latest, err := h.CheckIns.LatestForUser(r.Context(), target.ID)
	if err != nil {
		slog.Error("profile: load latest check-in", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	renderTemplate(w, "profile.html", map[string]interface{}{
		"User":          me,
		"Target":        target,
		"Followers":     followers,
		"Following":     following,
		"FollowingIDs":  myFollowingIDs,
		"LatestCheckIn": latest,
	})
}
