package models_test

import (
	"testing"

	"coltrane/internal/db"
	"coltrane/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a throwaway in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return gdb
}

func createUser(t *testing.T, gdb *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{Username: username, Email: username + "@example.com", Password: "x"}
	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return &user
}

func createLanguage(t *testing.T, gdb *gorm.DB, name, slug string) *models.Language {
	t.Helper()
	lang := models.Language{Name: name, Slug: slug}
	if err := gdb.Create(&lang).Error; err != nil {
		t.Fatalf("failed to create language: %v", err)
	}
	return &lang
}

func createSnippet(t *testing.T, gdb *gorm.DB, author *models.User, lang *models.Language, title string) *models.Snippet {
	t.Helper()
	snippet := models.Snippet{
		Title:      title,
		LanguageID: lang.ID,
		AuthorID:   author.ID,
		Code:       "print('hello')",
	}
	if err := gdb.Create(&snippet).Error; err != nil {
		t.Fatalf("failed to create snippet: %v", err)
	}
	return &snippet
}
