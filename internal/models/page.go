package models

import (
	"time"

	"coltrane/internal/utils"

	"gorm.io/gorm"
)

// Page is a flat content page served at a fixed path ("/about/" etc).
type Page struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Path        string    `gorm:"uniqueIndex;not null" json:"path"` // Leading slash, e.g. "/about/"
	Title       string    `gorm:"size:250;not null" json:"title"`
	Content     string    `gorm:"type:text" json:"content"`
	ContentHTML string    `gorm:"type:text" json:"content_html"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Page) BeforeSave(tx *gorm.DB) error {
	p.ContentHTML = string(utils.RenderMarkdown(p.Content))
	return nil
}
