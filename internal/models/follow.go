package models

import "time"

// Follow represents a directed follow edge. The unique index on the
// (follower, following) pair makes duplicate concurrent follows a database
// conflict rather than something detected after the fact.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_following"`
	FollowingID uint      `json:"following_id" gorm:"index;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time `json:"created_at"`
}

// FollowStats holds follower/following totals for a user
type FollowStats struct {
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}
