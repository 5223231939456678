package models

import (
	"time"

	"gorm.io/gorm"
)

type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:250;not null" json:"title"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LiveEntries returns only the live-status entries filed under the category,
// newest first.
func (c *Category) LiveEntries(tx *gorm.DB) ([]Entry, error) {
	var entries []Entry
	err := tx.Scopes(Live).
		Joins("JOIN entry_categories ON entry_categories.entry_id = entries.id").
		Where("entry_categories.category_id = ?", c.ID).
		Order("pub_date DESC").
		Preload("Author").
		Find(&entries).Error
	return entries, err
}
