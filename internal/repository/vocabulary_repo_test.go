package repository

import (
	"context"
	"testing"
	"time"

	"masterylog/internal/database/dbtest"
	"masterylog/internal/models"
)

func TestVocabularyRepositoryUpsertCountsReviews(t *testing.T) {
	ctx := context.Background()
	repo := NewVocabularyRepository(dbtest.New(t))

	seen := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)
	for i, translation := range []string{"house", "home", "building"} {
		reviewed := seen.Add(time.Duration(i) * 24 * time.Hour)
		entry := &models.VocabularyEntry{
			RussianWord:        "дом",
			EnglishTranslation: translation,
			FirstSeenAt:        reviewed,
			LastReviewedAt:     reviewed,
		}
		if err := repo.Upsert(ctx, entry); err != nil {
			t.Fatalf("Upsert() #%d error = %v", i+1, err)
		}

		got, err := repo.GetByWord(ctx, "дом")
		if err != nil {
			t.Fatalf("GetByWord() error = %v", err)
		}
		if got.ReviewCount != i+1 {
			t.Errorf("after upsert #%d ReviewCount = %d, want %d", i+1, got.ReviewCount, i+1)
		}
		if got.EnglishTranslation != translation {
			t.Errorf("EnglishTranslation = %q, want %q", got.EnglishTranslation, translation)
		}
		if !got.FirstSeenAt.Equal(seen) {
			t.Errorf("FirstSeenAt = %v, want %v", got.FirstSeenAt, seen)
		}
		if !got.LastReviewedAt.Equal(reviewed) {
			t.Errorf("LastReviewedAt = %v, want %v", got.LastReviewedAt, reviewed)
		}
	}

	all, err := repo.All(ctx)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 row, got %d", len(all))
	}
}

func TestVocabularyRepositorySearch(t *testing.T) {
	ctx := context.Background()
	repo := NewVocabularyRepository(dbtest.New(t))

	now := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)
	words := []models.VocabularyEntry{
		{RussianWord: "дом", EnglishTranslation: "house", FirstSeenAt: now, LastReviewedAt: now},
		{RussianWord: "домашний", EnglishTranslation: "domestic", FirstSeenAt: now, LastReviewedAt: now.Add(time.Hour)},
		{RussianWord: "кот", EnglishTranslation: "cat", FirstSeenAt: now, LastReviewedAt: now.Add(2 * time.Hour)},
	}
	for i := range words {
		if err := repo.Upsert(ctx, &words[i]); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
	}

	tests := []struct {
		name     string
		term     string
		expected []string
	}{
		{name: "empty term lists all", term: "", expected: []string{"кот", "домашний", "дом"}},
		{name: "by russian prefix", term: "дом", expected: []string{"домашний", "дом"}},
		{name: "by translation", term: "cat", expected: []string{"кот"}},
		{name: "no match", term: "zebra", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := repo.Search(ctx, tt.term)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if len(result) != len(tt.expected) {
				t.Fatalf("Search(%q) = %d rows, want %d", tt.term, len(result), len(tt.expected))
			}
			for i, word := range tt.expected {
				if result[i].RussianWord != word {
					t.Errorf("Search(%q)[%d] = %q, want %q", tt.term, i, result[i].RussianWord, word)
				}
			}
		})
	}
}
