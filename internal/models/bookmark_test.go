package models_test

import (
	"testing"

	"coltrane/internal/models"
)

func TestGetOrCreateBookmarkIdempotent(t *testing.T) {
	gdb := newTestDB(t)
	user := createUser(t, gdb, "alice")
	lang := createLanguage(t, gdb, "Python", "python")
	snippet := createSnippet(t, gdb, user, lang, "Fizzbuzz")

	first, created, err := models.GetOrCreateBookmark(gdb, user.ID, snippet.ID)
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if !created {
		t.Error("first call should create the bookmark")
	}

	second, created, err := models.GetOrCreateBookmark(gdb, user.ID, snippet.ID)
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	if created {
		t.Error("second call should be a no-op")
	}
	if second.ID != first.ID {
		t.Errorf("second call returned bookmark %d, want %d", second.ID, first.ID)
	}

	var count int64
	gdb.Model(&models.Bookmark{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Errorf("expected exactly one bookmark, found %d", count)
	}

	// A different snippet gets its own bookmark
	other := createSnippet(t, gdb, user, lang, "Quicksort")
	if _, created, err = models.GetOrCreateBookmark(gdb, user.ID, other.ID); err != nil || !created {
		t.Fatalf("bookmark on another snippet should be created: created=%v err=%v", created, err)
	}

	gdb.Model(&models.Bookmark{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 2 {
		t.Errorf("expected two bookmarks for the user, found %d", count)
	}
}

func TestBookmarkUniqueIndex(t *testing.T) {
	gdb := newTestDB(t)
	user := createUser(t, gdb, "alice")
	lang := createLanguage(t, gdb, "Go", "go")
	snippet := createSnippet(t, gdb, user, lang, "Worker pool")

	if err := gdb.Create(&models.Bookmark{UserID: user.ID, SnippetID: snippet.ID}).Error; err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if err := gdb.Create(&models.Bookmark{UserID: user.ID, SnippetID: snippet.ID}).Error; err == nil {
		t.Error("duplicate (user, snippet) insert should violate the unique index")
	}
}
