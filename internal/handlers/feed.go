package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mahad1921/DineSight/internal/middleware"
	"github.com/mahad1921/DineSight/internal/models"
	"github.com/mahad1921/DineSight/internal/repo"
)

// ==========================
// Feed Handler
// ==========================
type FeedHandler struct {
	CheckIns *repo.CheckInRepo
	Halls    *repo.HallRepo
	Users    *repo.UserRepo
	Follows  *repo.FollowRepo
}

// ==========================
// Feed page: own + followed users' active check-ins, newest first
// ==========================
func (h *FeedHandler) Feed(w http.ResponseWriter, r *http.Request) {
	me, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	now := time.Now().UTC()

	feed, err := h.CheckIns.FeedFor(r.Context(), me.ID, now)
	if err != nil {
		slog.Error("feed: load check-ins", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	halls, err := h.Halls.List(r.Context())
	if err != nil {
		slog.Error("feed: load halls", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	others, err := h.Users.ListOthers(r.Context(), me.ID)
	if err != nil {
		slog.Error("feed: load users", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	followingIDs, err := h.Follows.FollowingIDs(r.Context(), me.ID)
	if err != nil {
		slog.Error("feed: load following", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	renderTemplate(w, "feed.html", map[string]interface{}{
		"User":         me,
		"CheckIns":     feed,
		"Halls":        halls,
		"Now":          now,
		"OtherUsers":   others,
		"FollowingIDs": followingIDs,
	})
}

// ==========================
// People search: substring match on username, viewer excluded
// ==========================
func (h *FeedHandler) PeopleSearch(w http.ResponseWriter, r *http.Request) {
	me, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	q := strings.TrimSpace(r.URL.Query().Get("q"))

	var matches []models.User
	if q != "" {
		var err error
		matches, err = h.Users.Search(r.Context(), me.ID, q)
		if err != nil {
			slog.Error("people search", "err", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
	}

	followingIDs, err := h.Follows.FollowingIDs(r.Context(), me.ID)
	if err != nil {
		slog.Error("people search: load following", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	renderTemplate(w, "fragments/people_results.html", map[string]interface{}{
		"Matches":      matches,
		"FollowingIDs": followingIDs,
	})
}
