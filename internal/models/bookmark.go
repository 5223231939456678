package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Bookmark pairs a user with a snippet. The composite unique index is the
// authoritative guard against concurrent double-creation.
type Bookmark struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_user_snippet" json:"user_id"`
	SnippetID uint      `gorm:"not null;index;uniqueIndex:idx_user_snippet" json:"snippet_id"`
	Snippet   Snippet   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"snippet"`
	CreatedAt time.Time `json:"created_at"`
}

// GetOrCreateBookmark looks up the (user, snippet) bookmark and creates it
// only if absent. Losing a race to a concurrent request trips the unique
// index; that conflict resolves to the winner's row rather than an error.
// The second return value reports whether a new row was created.
func GetOrCreateBookmark(tx *gorm.DB, userID, snippetID uint) (*Bookmark, bool, error) {
	var existing Bookmark
	err := tx.Where("user_id = ? AND snippet_id = ?", userID, snippetID).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	bookmark := Bookmark{UserID: userID, SnippetID: snippetID}
	if createErr := tx.Create(&bookmark).Error; createErr != nil {
		// Lost the race: the unique index already holds the pair.
		if refetch := tx.Where("user_id = ? AND snippet_id = ?", userID, snippetID).First(&existing).Error; refetch == nil {
			return &existing, false, nil
		}
		return nil, false, createErr
	}
	return &bookmark, true, nil
}
