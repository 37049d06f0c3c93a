package middleware

import (
	"context"
	"net/http"

	"github.com/mahad1921/DineSight/internal/models"
	"github.com/mahad1921/DineSight/internal/session"
)

type key string

const userKey key = "user"

// RequireUser resolves the session cookie and stores the user in the request
// context. Anonymous requests (no cookie, bad cookie, or stale id) are
// redirected to the landing page.
func RequireUser(sess *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := sess.Resolve(r.Context(), r)
			if user == nil {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithUser returns a context carrying the given session user, the same way
// RequireUser stores it.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// GetUser returns the session user stored by RequireUser.
func GetUser(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey).(*models.User)
	return u, ok
}
