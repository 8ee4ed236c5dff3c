package models

import "time"

// Follow is a directed edge: the follower receives the followee's posts in
// their following feed. The composite unique index and the check constraint
// back the store-level guarantees (one edge per pair, no self-follow) even for
// writes that bypass the repository.
type Follow struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FollowerID uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follow_edge;check:chk_no_self_follow,follower_id <> followee_id"`
	FolloweeID uint      `json:"followee_id" gorm:"index;uniqueIndex:idx_follow_edge"`
	CreatedAt  time.Time `json:"created_at"`
}
