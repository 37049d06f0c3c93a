package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/mahad1921/DineSight/internal/models"
)

// CheckInRepo persists check-ins. A user has at most one check-in row at a
// time: Replace deletes everything the user owns before inserting. Expired
// rows are never removed here, only filtered out by the Active* queries.
type CheckInRepo struct {
	DB *sql.DB
}

func NewCheckInRepo(db *sql.DB) *CheckInRepo {
	return &CheckInRepo{DB: db}
}

const checkinCols = `
	c.id, c.user_id, c.hall_id, c.checked_at, c.expires_at,
	u.username, h.hall_name
`

const checkinJoins = `
	FROM checkins c
	JOIN users u ON u.id = c.user_id
	JOIN dining_halls h ON h.id = c.hall_id
`

// Replace deletes every check-in the user owns (active or expired) and
// inserts a fresh one for the given hall, all in one transaction. Readers
// never observe the deleted-but-not-reinserted state.
func (r *CheckInRepo) Replace(ctx context.Context, userID, hallID int, now time.Time) (*models.CheckIn, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM checkins WHERE user_id = $1`, userID,
	); err != nil {
		return nil, err
	}

	c := &models.CheckIn{}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO checkins (user_id, hall_id, checked_at, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, hall_id, checked_at, expires_at
	`, userID, hallID, now, now.Add(models.CheckInTTL)).
		Scan(&c.ID, &c.UserID, &c.HallID, &c.CheckedAt, &c.ExpiresAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return c, nil
}

// ClearForUser deletes every check-in the user owns. No-op if none exist.
func (r *CheckInRepo) ClearForUser(ctx context.Context, userID int) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM checkins WHERE user_id = $1`, userID)
	return err
}

// ActiveForUser returns the user's unexpired check-ins, newest first.
func (r *CheckInRepo) ActiveForUser(ctx context.Context, userID int, now time.Time) ([]models.CheckIn, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+checkinCols+checkinJoins+`
		WHERE c.user_id = $1 AND c.expires_at > $2
		ORDER BY c.checked_at DESC
	`, userID, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCheckIns(rows)
}

// ActiveForHall returns unexpired check-ins at the hall, newest first.
func (r *CheckInRepo) ActiveForHall(ctx context.Context, hallID int, now time.Time) ([]models.CheckIn, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+checkinCols+checkinJoins+`
		WHERE c.hall_id = $1 AND c.expires_at > $2
		ORDER BY c.checked_at DESC
	`, hallID, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCheckIns(rows)
}

// LatestForUser returns the user's most recent check-in whether or not it has
// expired, or nil if the user has never checked in. The profile page shows
// stale check-ins on purpose.
func (r *CheckInRepo) LatestForUser(ctx context.Context, userID int) (*models.CheckIn, error) {
	c := &models.CheckIn{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT `+checkinCols+checkinJoins+`
		WHERE c.user_id = $1
		ORDER BY c.checked_at DESC
		LIMIT 1
	`, userID).Scan(
		&c.ID, &c.UserID, &c.HallID, &c.CheckedAt, &c.ExpiresAt,
		&c.Username, &c.HallName,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetByID returns one check-in by id regardless of expiry.
func (r *CheckInRepo) GetByID(ctx context.Context, id int) (*models.CheckIn, error) {
	c := &models.CheckIn{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT `+checkinCols+checkinJoins+`
		WHERE c.id = $1
	`, id).Scan(
		&c.ID, &c.UserID, &c.HallID, &c.CheckedAt, &c.ExpiresAt,
		&c.Username, &c.HallName,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// FeedFor returns the viewer's activity feed: unexpired check-ins owned by
// the viewer or by anyone the viewer follows, newest first. The viewer's own
// check-in is always part of the feed.
func (r *CheckInRepo) FeedFor(ctx context.Context, viewerID int, now time.Time) ([]models.CheckIn, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+checkinCols+checkinJoins+`
		WHERE (c.user_id = $1 OR c.user_id IN (
			SELECT following_id FROM follows WHERE follower_id = $1
		))
		AND c.expires_at > $2
		ORDER BY c.checked_at DESC
	`, viewerID, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCheckIns(rows)
}

func scanCheckIns(rows *sql.Rows) ([]models.CheckIn, error) {
	var list []models.CheckIn
	for rows.Next() {
		var c models.CheckIn
		if err := rows.Scan(
			&c.ID, &c.UserID, &c.HallID, &c.CheckedAt, &c.ExpiresAt,
			&c.Username, &c.HallName,
		); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
