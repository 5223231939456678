package models

import (
	"time"
)

// Rating is one user's up/down verdict on a snippet, one per pair.
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_user_snippet_rating" json:"user_id"`
	SnippetID uint      `gorm:"not null;index;uniqueIndex:idx_user_snippet_rating" json:"snippet_id"`
	Score     int       `gorm:"not null" json:"score"` // 1 or -1
	CreatedAt time.Time `json:"created_at"`
}
