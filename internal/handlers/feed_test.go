package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/mahad1921/DineSight/internal/repo"
)

func newFeedHandler(t *testing.T) (*FeedHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	h := &FeedHandler{
		CheckIns: repo.NewCheckInRepo(db),
		Halls:    repo.NewHallRepo(db),
		Users:    repo.NewUserRepo(db),
		Follows:  repo.NewFollowRepo(db),
	}
	return h, mock, func() { db.Close() }
}

func TestFeedHandler_Feed(t *testing.T) {
	h, mock, done := newFeedHandler(t)
	defer done()

	now := time.Now().UTC()

	// The viewer's own check-in is part of the feed alongside a followed
	// user's, newest first.
	mock.ExpectQuery(`SELECT following_id FROM follows WHERE follower_id = \$1`).
		WithArgs(1, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "hall_id", "checked_at", "expires_at", "username", "hall_name",
		}).
			AddRow(11, 1, 2, now.Add(-time.Minute), now.Add(59*time.Minute), "Mahad", "Berkshire Dining Commons").
			AddRow(10, 2, 1, now.Add(-10*time.Minute), now.Add(50*time.Minute), "Sarah", "Hampshire Dining Commons"))
	mock.ExpectQuery(`SELECT id, hall_name FROM dining_halls ORDER BY id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "hall_name"}).
			AddRow(1, "Hampshire Dining Commons").
			AddRow(2, "Berkshire Dining Commons"))
	mock.ExpectQuery(`WHERE id != \$1`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "joined_at"}).
			AddRow(2, "Sarah", now))
	mock.ExpectQuery(`SELECT following_id FROM follows WHERE follower_id = \$1`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"following_id"}).AddRow(2))

	req := asUser(httptest.NewRequest("GET", "/feed", nil), mahad)
	rr := httptest.NewRecorder()
	h.Feed(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Feed status: got %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Berkshire Dining Commons") || !strings.Contains(body, "Sarah") {
		t.Errorf("expected feed rows in body, got: %s", body)
	}
	if !strings.Contains(body, "unfollow") {
		t.Error("expected unfollow button for followed user")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestFeedHandler_PeopleSearch(t *testing.T) {
	h, mock, done := newFeedHandler(t)
	defer done()

	mock.ExpectQuery(`username LIKE`).
		WithArgs(1, "Sar").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "joined_at"}).
			AddRow(2, "Sarah", time.Now()))
	mock.ExpectQuery(`SELECT following_id FROM follows`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"following_id"}))

	req := asUser(httptest.NewRequest("GET", "/people/search?q=Sar", nil), mahad)
	rr := httptest.NewRecorder()
	h.PeopleSearch(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("PeopleSearch status: got %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Sarah") || !strings.Contains(body, "follow") {
		t.Errorf("expected match with follow button, got: %s", body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestFeedHandler_PeopleSearch_EmptyQuery(t *testing.T) {
	h, mock, done := newFeedHandler(t)
	defer done()

	// Blank query never hits the users table.
	mock.ExpectQuery(`SELECT following_id FROM follows`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"following_id"}))

	req := asUser(httptest.NewRequest("GET", "/people/search?q=++", nil), mahad)
	rr := httptest.NewRecorder()
	h.PeopleSearch(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("PeopleSearch status: got %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "no matches") {
		t.Errorf("expected empty results, got: %s", rr.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
