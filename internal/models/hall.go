package models

type DiningHall struct {
	ID       int    `json:"id"`
	HallName string `json:"hall_name"`
}
