package models

import (
	"fmt"
	"time"

	"coltrane/internal/utils"

	"gorm.io/gorm"
)

type Link struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Title  string `gorm:"size:250;not null" json:"title"`
	Slug   string `gorm:"not null;uniqueIndex:idx_link_slug_day" json:"slug"`
	PubDay string `gorm:"size:10;not null;uniqueIndex:idx_link_slug_day" json:"-"`
	URL    string `gorm:"uniqueIndex;not null" json:"url"`

	Description     string `gorm:"type:text" json:"description"`
	DescriptionHTML string `gorm:"type:text" json:"description_html"`
	ViaName         string `gorm:"size:250" json:"via_name"` // Who we spotted the link on. Optional.
	ViaURL          string `json:"via_url"`
	Tags            string `gorm:"size:250" json:"tags"`

	// Set explicitly by callers; a gorm default tag would swallow false.
	EnableComments bool `json:"enable_comments"`
	// PostElsewhere survives from the old del.icio.us cross-post feature.
	// The flag is kept for the data model; the side effect stays disabled.
	PostElsewhere bool `gorm:"default:false" json:"post_elsewhere"`

	PostedByID uint      `gorm:"not null;index" json:"posted_by_id"`
	PostedBy   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"posted_by"`
	PubDate    time.Time `gorm:"not null;index" json:"pub_date"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BeforeSave keeps DescriptionHTML in sync with the raw description and pins
// the per-day slug scope, mirroring Entry.
func (l *Link) BeforeSave(tx *gorm.DB) error {
	if l.PubDate.IsZero() {
		l.PubDate = time.Now()
	}
	l.PubDay = l.PubDate.Format("2006-01-02")

	if l.Description != "" {
		l.DescriptionHTML = string(utils.RenderMarkdown(l.Description))
	}
	return nil
}

// AbsoluteURL returns the canonical dated path for the link.
func (l *Link) AbsoluteURL() string {
	return fmt.Sprintf("/weblog/links/%s/%s", l.PubDate.Format("2006/01/02"), l.Slug)
}
