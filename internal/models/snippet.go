package models

import (
	"time"

	"coltrane/internal/utils"

	"gorm.io/gorm"
)

type Language struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;unique" json:"name"`
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

type Snippet struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	Title      string   `gorm:"size:250;not null" json:"title"`
	LanguageID uint     `gorm:"not null;index" json:"language_id"`
	Language   Language `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"language"`
	AuthorID   uint     `gorm:"not null;index" json:"author_id"`
	Author     User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`

	Description     string `gorm:"type:text" json:"description"`
	DescriptionHTML string `gorm:"type:text" json:"description_html"`
	Code            string `gorm:"type:text;not null" json:"code"`
	Tags            string `gorm:"size:250" json:"tags"`

	Downloads int `gorm:"default:0" json:"downloads"`
	// Popularity is recomputed by the popularity worker from ratings,
	// bookmarks and downloads.
	Popularity int `gorm:"default:0;index" json:"popularity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Snippet) BeforeSave(tx *gorm.DB) error {
	if s.Description != "" {
		s.DescriptionHTML = string(utils.RenderMarkdown(s.Description))
	}
	return nil
}

// AuthorRank is one row of the top-authors listing.
type AuthorRank struct {
	AuthorID     uint   `json:"author_id"`
	Username     string `json:"username"`
	SnippetCount int64  `json:"snippet_count"`
	Popularity   int64  `json:"popularity"`
}

// TopAuthors ranks authors by the summed popularity of their snippets.
func TopAuthors(tx *gorm.DB, limit, offset int) ([]AuthorRank, error) {
	var ranks []AuthorRank
	err := tx.Model(&Snippet{}).
		Select("snippets.author_id, users.username, COUNT(*) AS snippet_count, SUM(snippets.popularity) AS popularity").
		Joins("JOIN users ON users.id = snippets.author_id").
		Group("snippets.author_id, users.username").
		Order("popularity DESC, snippet_count DESC").
		Limit(limit).
		Offset(offset).
		Scan(&ranks).Error
	return ranks, err
}

// LanguageRank is one row of the top-languages listing.
type LanguageRank struct {
	LanguageID   uint   `json:"language_id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	SnippetCount int64  `json:"snippet_count"`
}

// TopLanguages ranks languages by how many snippets use them.
func TopLanguages(tx *gorm.DB, limit, offset int) ([]LanguageRank, error) {
	var ranks []LanguageRank
	err := tx.Model(&Snippet{}).
		Select("snippets.language_id, languages.name, languages.slug, COUNT(*) AS snippet_count").
		Joins("JOIN languages ON languages.id = snippets.language_id").
		Group("snippets.language_id, languages.name, languages.slug").
		Order("snippet_count DESC, languages.name ASC").
		Limit(limit).
		Offset(offset).
		Scan(&ranks).Error
	return ranks, err
}
