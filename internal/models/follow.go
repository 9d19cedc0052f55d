package models

import "time"

// Follow is a directed follower -> following edge. The composite unique
// index keeps each pair at most once.
type Follow struct {
	ID          uint `gorm:"primaryKey"`
	FollowerID  uint `gorm:"not null;index;uniqueIndex:idx_follower_following"`
	FollowingID uint `gorm:"not null;index;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time
}
