package models

import "time"

// Follow is a directed edge: the follower sees the followed user's check-ins.
// At most one edge exists per (FollowerID, FollowingID) pair, enforced by a
// check before insert rather than a storage constraint.
type Follow struct {
	ID          int       `json:"id"`
	FollowerID  int       `json:"follower_id"`
	FollowingID int       `json:"following_id"`
	MadeAt      time.Time `json:"made_at"`
}
