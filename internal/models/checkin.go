package models

import "time"

// CheckInTTL is how long a check-in stays active. Rows are never swept;
// expiry is a query-time filter on ExpiresAt.
const CheckInTTL = time.Hour

type CheckIn struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	HallID    int       `json:"hall_id"`
	CheckedAt time.Time `json:"checked_at"`
	ExpiresAt time.Time `json:"expires_at"`

	// Username and HallName are join results for display; empty when the
	// row was loaded without them.
	Username string `json:"username,omitempty"`
	HallName string `json:"hall_name,omitempty"`
}

// Active reports whether the check-in has not yet expired at the given time.
func (c CheckIn) Active(now time.Time) bool {
	return now.Before(c.ExpiresAt)
}
