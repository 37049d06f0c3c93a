package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/mahad1921/DineSight/internal/repo"
)

func newFollowHandler(t *testing.T) (*FollowHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	return &FollowHandler{Follows: repo.NewFollowRepo(db)}, mock, func() { db.Close() }
}

func TestFollowHandler_Follow(t *testing.T) {
	h, mock, done := newFollowHandler(t)
	defer done()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`INSERT INTO follows`).
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "follower_id", "following_id", "made_at"}).
			AddRow(1, 1, 2, time.Now()))

	rr := httptest.NewRecorder()
	h.Follow(rr, asUser(formRequest("/follow", url.Values{"user_id": {"2"}}), mahad))

	if rr.Code != http.StatusSeeOther {
		t.Errorf("Follow status: got %d, want 303", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/feed" {
		t.Errorf("Location: got %q, want /feed", loc)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestFollowHandler_Follow_Self(t *testing.T) {
	h, mock, done := newFollowHandler(t)
	defer done()

	// Following yourself touches nothing and still redirects cleanly.
	rr := httptest.NewRecorder()
	h.Follow(rr, asUser(formRequest("/follow", url.Values{"user_id": {"1"}}), mahad))

	if rr.Code != http.StatusSeeOther {
		t.Errorf("Follow status: got %d, want 303", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestFollowHandler_Unfollow(t *testing.T) {
	h, mock, done := newFollowHandler(t)
	defer done()

	mock.ExpectExec(`DELETE FROM follows`).
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rr := httptest.NewRecorder()
	h.Unfollow(rr, asUser(formRequest("/unfollow", url.Values{"user_id": {"2"}}), mahad))

	if rr.Code != http.StatusSeeOther {
		t.Errorf("Unfollow status: got %d, want 303", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestFollowHandler_BadUserID(t *testing.T) {
	h, mock, done := newFollowHandler(t)
	defer done()

	rr := httptest.NewRecorder()
	h.Follow(rr, asUser(formRequest("/follow", url.Values{"user_id": {"abc"}}), mahad))

	if rr.Code != http.StatusSeeOther {
		t.Errorf("Follow status: got %d, want 303", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
