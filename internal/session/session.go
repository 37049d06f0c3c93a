// Package session carries identity between requests in a single cookie.
//
// The cookie value is the user's row id as a decimal string, trusted as-is:
// there is no signature, server-side session table, expiry, or revocation.
// Possession of an id is possession of the account. That trust model is a
// deliberate simplification inherited from the original deployment, not a
// security boundary.
package session

import (
	"context"
	"net/http"
	"strconv"

	"github.com/mahad1921/DineSight/internal/models"
	"github.com/mahad1921/DineSight/internal/repo"
)

// CookieName is the session cookie. Its value is a decimal user id.
const CookieName = "user_id"

// Manager resolves, sets, and clears the session cookie. Production toggles
// the Secure attribute and an optional Domain scope; both must be identical
// on set and clear or browsers will keep the stale cookie.
type Manager struct {
	Users      *repo.UserRepo
	Production bool
	Domain     string
}

// Resolve returns the user the request's cookie points at, or nil for an
// anonymous request. A missing cookie, a non-integer value, and a stale id
// (user deleted or database reset) all resolve to nil, never an error the
// caller has to branch on.
func (m *Manager) Resolve(ctx context.Context, r *http.Request) *models.User {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	id, err := strconv.Atoi(c.Value)
	if err != nil {
		return nil
	}
	// Lookup failures degrade to anonymous; the handler redirects to
	// login rather than surfacing a 500.
	user, err := m.Users.GetByID(ctx, id)
	if err != nil {
		return nil
	}
	return user
}

// Set writes the session cookie for the given user id.
func (m *Manager) Set(w http.ResponseWriter, userID int) {
	c := m.cookie()
	c.Value = strconv.Itoa(userID)
	http.SetCookie(w, c)
}

// Clear deletes the session cookie using the exact attribute set Set uses.
func (m *Manager) Clear(w http.ResponseWriter) {
	c := m.cookie()
	c.Value = ""
	c.MaxAge = -1
	http.SetCookie(w, c)
}

func (m *Manager) cookie() *http.Cookie {
	c := &http.Cookie{
		Name:     CookieName,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if m.Production {
		c.Secure = true
	}
	if m.Domain != "" {
		c.Domain = m.Domain
	}
	return c
}
