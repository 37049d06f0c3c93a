package repo

import (
	"context"
	"database/sql"

	"github.com/mahad1921/DineSight/internal/models"
)

// HallRepo reads the static dining hall reference data.
type HallRepo struct {
	DB *sql.DB
}

func NewHallRepo(db *sql.DB) *HallRepo {
	return &HallRepo{DB: db}
}

// GetByID returns one hall by id. Returns sql.ErrNoRows when it does not exist.
func (r *HallRepo) GetByID(ctx context.Context, id int) (*models.DiningHall, error) {
	hall := &models.DiningHall{}
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, hall_name FROM dining_halls WHERE id = $1`, id,
	).Scan(&hall.ID, &hall.HallName)
	if err != nil {
		return nil, err
	}
	return hall, nil
}

// List returns all halls in id order.
func (r *HallRepo) List(ctx context.Context) ([]models.DiningHall, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, hall_name FROM dining_halls ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var halls []models.DiningHall
	for rows.Next() {
		var h models.DiningHall
		if err := rows.Scan(&h.ID, &h.HallName); err != nil {
			return nil, err
		}
		halls = append(halls, h)
	}
	return halls, rows.Err()
}
