package models

import (
	"time"

	"coltrane/internal/utils"

	"gorm.io/gorm"
)

type Comment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	EntryID  uint   `gorm:"not null;index" json:"entry_id"`
	Entry    Entry  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"entry"`
	Name     string `gorm:"size:50;not null" json:"name"`
	Email    string `gorm:"size:254" json:"email"`
	Body     string `gorm:"type:text;not null" json:"body"`
	BodyHTML string `gorm:"type:text" json:"body_html"`

	// Submitter metadata captured from the request.
	IPAddress string `gorm:"size:45" json:"ip_address"`
	UserAgent string `gorm:"size:250" json:"user_agent"`

	// IsPublic is decided by the moderation policy before the comment is
	// first persisted and never revisited on edits. No column default: a
	// default tag would make gorm drop a false value from the INSERT.
	IsPublic bool `gorm:"index" json:"is_public"`

	CreatedAt time.Time `json:"created_at"`
}

func (c *Comment) BeforeSave(tx *gorm.DB) error {
	c.BodyHTML = string(utils.RenderMarkdown(c.Body))
	return nil
}
