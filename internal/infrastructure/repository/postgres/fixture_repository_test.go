package postgres

import (
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/club-fixtures/internal/domain/fixture"
	qb "github.com/riskibarqy/club-fixtures/internal/platform/querybuilder"
)

func TestToInsertModels_DedupesLastWins(t *testing.T) {
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	models, err := toInsertModels([]fixture.StoredFixture{
		{ID: "fx-1", Venue: "Spain Park"},
		{ID: "fx-2", Season: " "},
		{ID: " fx-1 ", Venue: "Kynoch Park", ImportSource: fixture.ImportSourceScrape},
	}, now)
	if err != nil {
		t.Fatalf("to insert models: %v", err)
	}

	if len(models) != 2 {
		t.Fatalf("expected 2 models, got %d", len(models))
	}
	if models[0].ID != "fx-1" || models[0].Venue != "Kynoch Park" || models[0].ImportSource != fixture.ImportSourceScrape {
		t.Fatalf("expected last fx-1 to win in first position, got %+v", models[0])
	}
	if models[1].ImportSource != fixture.ImportSourceManual || !models[1].CreatedAt.Equal(now) || models[1].Season.Valid {
		t.Fatalf("expected defaults on fx-2, got %+v", models[1])
	}
}

func TestToInsertModels_RequiresID(t *testing.T) {
	if _, err := toInsertModels([]fixture.StoredFixture{{ID: "fx-1"}, {}}, time.Now()); err == nil || !strings.Contains(err.Error(), "fixture 1") {
		t.Fatalf("expected error naming fixture 1, got %v", err)
	}
}

func TestFixtureUpsertStatement(t *testing.T) {
	models, err := toInsertModels([]fixture.StoredFixture{{ID: "fx-1"}}, time.Now())
	if err != nil {
		t.Fatalf("to insert models: %v", err)
	}
	query, args, err := qb.InsertModels(fixturesTable, models, "ON CONFLICT (id) DO UPDATE SET "+qb.ExcludedAssignments(fixtureUpsertColumns...))
	if err != nil {
		t.Fatalf("build upsert: %v", err)
	}
	if len(args) != len(fixtureSelectColumns)-1 {
		t.Fatalf("expected insert to skip updated_at only, got %d args for %d select columns", len(args), len(fixtureSelectColumns))
	}
	if strings.Contains(query, "created_at = EXCLUDED.created_at") {
		t.Fatalf("created_at must not be overwritten on conflict: %s", query)
	}
}
