package repo

import (
	"context"
	"database/sql"

	"github.com/mahad1921/DineSight/internal/models"
)

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB *sql.DB
}

// ==========================
// Constructor
// ==========================
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// ==========================
// Create User
// ==========================
func (r *UserRepo) Create(ctx context.Context, username, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, username, password_hash, joined_at
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, username, passwordHash).
		Scan(&user.ID, &user.Username, &user.PasswordHash, &user.JoinedAt)

	if err != nil {
		return nil, err
	}

	return user, nil
}

// ==========================
// Get By ID
// ==========================
func (r *UserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, joined_at
		FROM users
		WHERE id = $1
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Username, &user.PasswordHash, &user.JoinedAt)

	if err != nil {
		return nil, err
	}

	return user, nil
}

// ==========================
// Get By Username (exact, case-sensitive)
// ==========================
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, joined_at
		FROM users
		WHERE username = $1
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, username).
		Scan(&user.ID, &user.Username, &user.PasswordHash, &user.JoinedAt)

	if err != nil {
		return nil, err
	}

	return user, nil
}

// ==========================
// List Others (everyone except the viewer)
// ==========================
func (r *UserRepo) ListOthers(ctx context.Context, viewerID int) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, username, joined_at
		FROM users
		WHERE id != $1
		ORDER BY id
	`, viewerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

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

// ==========================
// Search (substring match on username, excluding the viewer)
// ==========================
func (r *UserRepo) Search(ctx context.Context, viewerID int, query string) ([]models.User, error) {
	// LIKE, not ILIKE: the match is case-sensitive on purpose.
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, username, joined_at
		FROM users
		WHERE id != $1 AND username LIKE '%' || $2 || '%'
		ORDER BY id
	`, viewerID, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

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
