package models_test

import (
	"testing"

	"coltrane/internal/models"
)

func TestTopAuthors(t *testing.T) {
	gdb := newTestDB(t)
	alice := createUser(t, gdb, "alice")
	bob := createUser(t, gdb, "bob")
	lang := createLanguage(t, gdb, "Python", "python")

	// bob has two snippets with more accumulated popularity than alice's one
	s1 := createSnippet(t, gdb, bob, lang, "One")
	s2 := createSnippet(t, gdb, bob, lang, "Two")
	s3 := createSnippet(t, gdb, alice, lang, "Three")
	gdb.Model(s1).UpdateColumn("popularity", 40)
	gdb.Model(s2).UpdateColumn("popularity", 30)
	gdb.Model(s3).UpdateColumn("popularity", 20)

	ranks, err := models.TopAuthors(gdb, 20, 0)
	if err != nil {
		t.Fatalf("TopAuthors failed: %v", err)
	}
	if len(ranks) != 2 {
		t.Fatalf("expected 2 ranked authors, got %d", len(ranks))
	}
	if ranks[0].Username != "bob" || ranks[0].Popularity != 70 || ranks[0].SnippetCount != 2 {
		t.Errorf("unexpected top author: %+v", ranks[0])
	}
	if ranks[1].Username != "alice" {
		t.Errorf("expected alice second, got %+v", ranks[1])
	}
}

func TestTopLanguages(t *testing.T) {
	gdb := newTestDB(t)
	user := createUser(t, gdb, "alice")
	python := createLanguage(t, gdb, "Python", "python")
	golang := createLanguage(t, gdb, "Go", "go")

	createSnippet(t, gdb, user, python, "One")
	createSnippet(t, gdb, user, python, "Two")
	createSnippet(t, gdb, user, golang, "Three")

	ranks, err := models.TopLanguages(gdb, 20, 0)
	if err != nil {
		t.Fatalf("TopLanguages failed: %v", err)
	}
	if len(ranks) != 2 {
		t.Fatalf("expected 2 ranked languages, got %d", len(ranks))
	}
	if ranks[0].Name != "Python" || ranks[0].SnippetCount != 2 {
		t.Errorf("unexpected top language: %+v", ranks[0])
	}
	if ranks[1].Name != "Go" || ranks[1].SnippetCount != 1 {
		t.Errorf("unexpected second language: %+v", ranks[1])
	}
}
