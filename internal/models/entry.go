package models

import (
	"fmt"
	"time"

	"coltrane/internal/utils"

	"gorm.io/gorm"
)

// Entry status values. Only live entries are publicly displayed.
const (
	StatusLive   = 1
	StatusDraft  = 2
	StatusHidden = 3
)

type Entry struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Title string `gorm:"size:250;not null" json:"title"`
	// Slug must be unique within its publication day, not globally.
	Slug    string `gorm:"not null;uniqueIndex:idx_entry_slug_day" json:"slug"`
	PubDay  string `gorm:"size:10;not null;uniqueIndex:idx_entry_slug_day" json:"-"`
	Excerpt string `gorm:"type:text" json:"excerpt"` // Optional short summary
	Body    string `gorm:"type:text;not null" json:"body"`

	// Generated HTML, recomputed from the raw markup on every save.
	ExcerptHTML string `gorm:"type:text" json:"excerpt_html"`
	BodyHTML    string `gorm:"type:text" json:"body_html"`

	PubDate        time.Time  `gorm:"not null;index" json:"pub_date"`
	AuthorID       uint       `gorm:"not null;index" json:"author_id"`
	Author         User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	// No column default: gorm drops a false value from the INSERT when the
	// field carries a default tag, so callers set this explicitly.
	EnableComments bool       `json:"enable_comments"`
	Featured       bool       `gorm:"default:false" json:"featured"`
	Status         int        `gorm:"default:1;index" json:"status"`
	Tags           string     `gorm:"size:250" json:"tags"` // Comma-separated free text
	Categories     []Category `gorm:"many2many:entry_categories;" json:"categories"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeSave regenerates the HTML columns so a completed save never leaves
// them stale relative to the raw markup. PubDate defaults to the time of
// creation and pins PubDay, the per-day uniqueness scope for Slug.
func (e *Entry) BeforeSave(tx *gorm.DB) error {
	if e.PubDate.IsZero() {
		e.PubDate = time.Now()
	}
	e.PubDay = e.PubDate.Format("2006-01-02")

	e.BodyHTML = string(utils.RenderMarkdown(e.Body))
	if e.Excerpt != "" {
		e.ExcerptHTML = string(utils.RenderMarkdown(e.Excerpt))
	}
	return nil
}

// Live scopes a query to publicly visible entries.
func Live(tx *gorm.DB) *gorm.DB {
	return tx.Where("status = ?", StatusLive)
}

// AbsoluteURL returns the canonical dated path for the entry.
func (e *Entry) AbsoluteURL() string {
	return fmt.Sprintf("/weblog/entries/%s/%s", e.PubDate.Format("2006/01/02"), e.Slug)
}
