package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/mahad1921/DineSight/internal/repo"
	"github.com/mahad1921/DineSight/internal/session"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Users    *repo.UserRepo
	Sessions *session.Manager
}

// ==========================
// Landing / login / signup pages (redirect to feed when already signed in)
// ==========================
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if h.Sessions.Resolve(r.Context(), r) != nil {
		http.Redirect(w, r, "/feed", http.StatusSeeOther)
		return
	}
	renderTemplate(w, "login.html", map[string]interface{}{"Error": nil})
}

func (h *AuthHandler) SignupPage(w http.ResponseWriter, r *http.Request) {
	if h.Sessions.Resolve(r.Context(), r) != nil {
		http.Redirect(w, r, "/feed", http.StatusSeeOther)
		return
	}
	renderTemplate(w, "signup.html", map[string]interface{}{"Error": nil})
}

// ==========================
// Login
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderError(w, "login.html", "please fill in both fields", http.StatusBadRequest)
		return
	}
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	if username == "" || password == "" {
		renderError(w, "login.html", "please fill in both fields", http.StatusBadRequest)
		return
	}

	user, err := h.Users.GetByUsername(r.Context(), username)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		renderError(w, "login.html", "wrong username or password", http.StatusBadRequest)
		return
	}

	h.Sessions.Set(w, user.ID)
	http.Redirect(w, r, "/feed", http.StatusSeeOther)
}

// ==========================
// Signup
// ==========================
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderError(w, "signup.html", "pick a username and a longer password", http.StatusBadRequest)
		return
	}
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	if username == "" || utf8.RuneCountInString(password) < 4 {
		renderError(w, "signup.html", "pick a username and a longer password", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("signup: hash password", "err", err)
		renderError(w, "signup.html", "something went wrong, try again", http.StatusInternalServerError)
		return
	}

	user, err := h.Users.Create(r.Context(), username, string(hash))
	if err != nil {
		// 23505 is unique_violation on users.username: taken, including
		// the race where two signups pass the form check at once.
		if e, ok := err.(*pq.Error); ok && e.Code == "23505" {
			renderError(w, "signup.html", "that username is taken", http.StatusBadRequest)
			return
		}
		slog.Error("signup: create user", "err", err)
		renderError(w, "signup.html", "something went wrong, try again", http.StatusInternalServerError)
		return
	}

	h.Sessions.Set(w, user.ID)
	http.Redirect(w, r, "/feed", http.StatusSeeOther)
}

// ==========================
// Logout
// ==========================
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Clear(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
