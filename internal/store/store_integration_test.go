//go:build integration

package store

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/scribe/internal/summarizer"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	s, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}

	t.Cleanup(func() {
		s.Close()
	})
	return s
}

func TestIntegration_PutAndGetSummary(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	contactID := "integration-" + uuid.New().String()[:8]

	rec := &summarizer.Record{
		ContactID:                contactID,
		Summary:                  "integration test summary",
		OriginalTranscriptionKey: "transcripts/" + contactID + ".json",
		CreatedAt:                "2026-08-30T10:06:00Z",
		Metadata: summarizer.Metadata{
			Duration:       120,
			ModelID:        "test-model",
			ProcessingTime: 987,
		},
		KeyPoints: []string{"point one", "point two"},
	}

	key := summarizer.StorageKey(contactID)
	if err := s.PutSummary(ctx, key, rec); err != nil {
		t.Fatalf("PutSummary failed: %v", err)
	}

	got, err := s.GetSummary(ctx, key)
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	if got.Summary != rec.Summary {
		t.Errorf("expected summary %q, got %q", rec.Summary, got.Summary)
	}
	if len(got.KeyPoints) != 2 {
		t.Errorf("expected 2 key points, got %d", len(got.KeyPoints))
	}
}

func TestIntegration_PutSummaryOverwrites(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	contactID := "integration-" + uuid.New().String()[:8]
	key := summarizer.StorageKey(contactID)

	first := &summarizer.Record{ContactID: contactID, Summary: "first version", CreatedAt: "2026-08-30T10:00:00Z"}
	second := &summarizer.Record{ContactID: contactID, Summary: "second version", CreatedAt: "2026-08-30T10:05:00Z"}

	if err := s.PutSummary(ctx, key, first); err != nil {
		t.Fatalf("first put failed: %v", err)
	}
	if err := s.PutSummary(ctx, key, second); err != nil {
		t.Fatalf("second put failed: %v", err)
	}

	got, err := s.GetSummary(ctx, key)
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	if got.Summary != "second version" {
		t.Errorf("expected last write to win, got %q", got.Summary)
	}
}

func TestIntegration_GetSummaryNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetSummary(context.Background(), "summaries/does-not-exist.json")
	if err == nil {
		t.Fatal("expected error for missing summary")
	}
}
