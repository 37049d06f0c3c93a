package repo

import (
	"context"
	"database/sql"

	"github.com/mahad1921/DineSight/internal/models"
)

// FollowRepo manages the directed follow graph.
type FollowRepo struct {
	DB *sql.DB
}

func NewFollowRepo(db *sql.DB) *FollowRepo {
	return &FollowRepo{DB: db}
}

// Follow adds an edge from follower to following and returns it. Self-follows
// and duplicate edges are silent no-ops, never errors; both return (nil, nil).
func (r *FollowRepo) Follow(ctx context.Context, followerID, followingID int) (*models.Follow, error) {
	if followerID == followingID {
		return nil, nil
	}

	exists, err := r.IsFollowing(ctx, followerID, followingID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, nil
	}

	var f models.Follow
	err = r.DB.QueryRowContext(ctx, `
		INSERT INTO follows (follower_id, following_id)
		VALUES ($1, $2)
		RETURNING id, follower_id, following_id, made_at
	`, followerID, followingID).Scan(&f.ID, &f.FollowerID, &f.FollowingID, &f.MadeAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Unfollow removes every edge from follower to following. No-op if none exist.
func (r *FollowRepo) Unfollow(ctx context.Context, followerID, followingID int) error {
	_, err := r.DB.ExecContext(ctx, `
		DELETE FROM follows
		WHERE follower_id = $1 AND following_id = $2
	`, followerID, followingID)
	return err
}

// IsFollowing reports whether an edge from follower to following exists.
func (r *FollowRepo) IsFollowing(ctx context.Context, followerID, followingID int) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM follows
			WHERE follower_id = $1 AND following_id = $2
		)
	`, followerID, followingID).Scan(&exists)
	return exists, err
}

// Followers returns the users who follow the given user. Edges whose user row
// no longer exists drop out of the join.
func (r *FollowRepo) Followers(ctx context.Context, userID int) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT u.id, u.username, u.joined_at
		FROM follows f
		JOIN users u ON u.id = f.follower_id
		WHERE f.following_id = $1
		ORDER BY f.id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

// Following returns the users the given user follows.
func (r *FollowRepo) Following(ctx context.Context, userID int) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT u.id, u.username, u.joined_at
		FROM follows f
		JOIN users u ON u.id = f.following_id
		WHERE f.follower_id = $1
		ORDER BY f.id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

// FollowingIDs returns the set of user ids the given user follows. Used by
// the feed query's callers and by templates to pick follow/unfollow buttons.
func (r *FollowRepo) FollowingIDs(ctx context.Context, userID int) (map[int]bool, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT following_id FROM follows WHERE follower_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[int]bool)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

func scanUsers(rows *sql.Rows) ([]models.User, error) {
	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.JoinedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
