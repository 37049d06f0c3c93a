package db

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var seedHalls = []string{
	"Hampshire Dining Commons",
	"Berkshire Dining Commons",
	"Worcester Dining Commons",
	"Franklin Dining Commons",
}

var seedUsers = []struct {
	Username string
	Password string
}{
	{"Mahad", "mahad123"},
	{"Sarah", "sarah123"},
	{"Varisha", "varisha123"},
	{"Robert", "robert123"},
	{"Kazi", "kazi123"},
	{"Humza", "humza123"},
	{"Wajdan", "wajdan123"},
}

// Seed fills the dining_halls and users tables the first time the app boots.
// Each table is seeded only if it is empty, so re-running on an existing
// database is a no-op. The whole seed runs in one transaction: a failure
// partway leaves nothing behind, so the emptiness check stays meaningful on
// the next boot.
func Seed(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed: begin: %w", err)
	}
	defer tx.Rollback()

	var halls int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM dining_halls`).Scan(&halls); err != nil {
		return fmt.Errorf("seed: count halls: %w", err)
	}
	if halls == 0 {
		for _, name := range seedHalls {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO dining_halls (hall_name) VALUES ($1)`, name,
			); err != nil {
				return fmt.Errorf("seed: insert hall %q: %w", name, err)
			}
		}
	}

	var users int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&users); err != nil {
		return fmt.Errorf("seed: count users: %w", err)
	}
	if users == 0 {
		for _, u := range seedUsers {
			hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("seed: hash password for %q: %w", u.Username, err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO users (username, password_hash) VALUES ($1, $2)`,
				u.Username, string(hash),
			); err != nil {
				return fmt.Errorf("seed: insert user %q: %w", u.Username, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit: %w", err)
	}
	return nil
}
