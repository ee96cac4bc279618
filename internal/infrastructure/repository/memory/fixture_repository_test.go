package memory

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/club-fixtures/internal/domain/fixture"
)

func TestFixtureRepository_UpsertCountsAndPreservesCreatedAt(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	repo := NewFixtureRepository([]fixture.StoredFixture{
		{ID: "fx-1", HomeTeam: "Banks o' Dee", AwayTeam: "Keith", CreatedAt: created},
	})
	now := time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	home := 2
	result, err := repo.UpsertFixtures(context.Background(), []fixture.StoredFixture{
		{ID: "fx-1", HomeTeam: "Banks o' Dee", AwayTeam: "Keith", IsCompleted: true, HomeScore: &home, CreatedAt: now},
		{ID: "fx-2", HomeTeam: "Huntly", AwayTeam: "Banks o' Dee"},
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if result.Added != 1 || result.Updated != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}

	got, ok, err := repo.GetByID(context.Background(), "fx-1")
	if err != nil || !ok {
		t.Fatalf("get fx-1: ok=%v err=%v", ok, err)
	}
	if !got.CreatedAt.Equal(created) || !got.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected timestamps: created=%s updated=%s", got.CreatedAt, got.UpdatedAt)
	}
	if !got.IsCompleted || *got.HomeScore != 2 {
		t.Fatalf("expected update to apply, got %+v", got)
	}

	home = 9
	if again, _, _ := repo.GetByID(context.Background(), "fx-1"); *again.HomeScore != 2 {
		t.Fatalf("stored row should not alias caller memory")
	}

	added, _, _ := repo.GetByID(context.Background(), "fx-2")
	if !added.CreatedAt.Equal(now) {
		t.Fatalf("expected new row to get created_at, got %s", added.CreatedAt)
	}
}

func TestFixtureRepository_RejectsMissingID(t *testing.T) {
	t.Parallel()

	repo := NewFixtureRepository(nil)
	if _, err := repo.UpsertFixtures(context.Background(), []fixture.StoredFixture{{HomeTeam: "Keith"}}); err == nil {
		t.Fatalf("expected error for missing id")
	}
	items, _ := repo.List(context.Background(), fixture.Filter{})
	if len(items) != 0 {
		t.Fatalf("expected nothing stored, got %d", len(items))
	}
}

func TestFixtureRepository_ListAndDelete(t *testing.T) {
	t.Parallel()

	repo := NewFixtureRepository([]fixture.StoredFixture{
		{ID: "fx-1", Season: "2025/26", Competition: "Highland League", IsCompleted: true},
		{ID: "fx-2", Season: "2025/26", Competition: "Highland League"},
		{ID: "fx-3", Season: "2024/25", Competition: "Aberdeenshire Cup", IsCompleted: true},
	})
	ctx := context.Background()

	results, _ := repo.List(ctx, fixture.Filter{Season: "2025/26", Status: fixture.StatusResults})
	if len(results) != 1 || results[0].ID != "fx-1" {
		t.Fatalf("unexpected results: %+v", results)
	}
	upcoming, _ := repo.List(ctx, fixture.Filter{Status: fixture.StatusUpcoming})
	if len(upcoming) != 1 || upcoming[0].ID != "fx-2" {
		t.Fatalf("unexpected upcoming: %+v", upcoming)
	}

	deleted, err := repo.Delete(ctx, "fx-3")
	if err != nil || !deleted {
		t.Fatalf("expected delete to succeed: %v", err)
	}
	deleted, _ = repo.Delete(ctx, "fx-3")
	if deleted {
		t.Fatalf("expected second delete to report missing")
	}
}
