package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/riskibarqy/club-fixtures/internal/domain/fixture"
	"github.com/riskibarqy/club-fixtures/internal/infrastructure/repository/memory"
	fixturemock "github.com/riskibarqy/club-fixtures/internal/mocks/domain/fixture"
	"github.com/riskibarqy/club-fixtures/internal/platform/id"
	"github.com/riskibarqy/club-fixtures/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

type staticIDGenerator struct {
	id  string
	err error
}

func (g staticIDGenerator) NewID() (string, error) {
	return g.id, g.err
}

func newTestImportService(repo fixture.Repository, cfg ImportConfig) *ImportService {
	return NewImportService(repo, nil, staticIDGenerator{id: "batch-1"}, cfg, logging.NewNop())
}

const importPayload = `[
	{"date":"2025-08-02","opposition":"Keith","location":"home","competition":"Highland League","score":"3 - 1"},
	{"date":"2025-08-09","opposition":"Huntly","location":"away","competition":"Highland League","venue":"Christie Park"},
	{"opposition":"Nairn County"}
]`

func TestImportService_ImportJSON_PersistsValidRecords(t *testing.T) {
	t.Parallel()

	repo := memory.NewFixtureRepository(nil)
	service := newTestImportService(repo, ImportConfig{})

	report, err := service.ImportJSON(context.Background(), []byte(importPayload), ImportOptions{ImportSource: fixture.ImportSourceFile})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.Valid {
		t.Fatalf("expected valid report: %s", report.Message)
	}
	if report.Added != 2 {
		t.Fatalf("unexpected Added count: got=%d want=2", report.Added)
	}
	if report.Updated != 0 {
		t.Fatalf("unexpected Updated count: got=%d want=0", report.Updated)
	}
	if len(report.Errors) != 1 {
		t.Fatalf("unexpected errors: %+v", report.Errors)
	}
	if report.Message != "Imported 2 fixtures (2 added, 0 updated), 1 error: fixture 2: missing date" {
		t.Fatalf("unexpected message: %q", report.Message)
	}

	stored, err := repo.List(context.Background(), fixture.Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("unexpected stored count: got=%d want=2", len(stored))
	}
	for _, item := range stored {
		if item.ID == "" {
			t.Fatalf("expected stored id")
		}
		if item.ImportSource != fixture.ImportSourceFile || item.SourceID != "batch-1" {
			t.Fatalf("unexpected import tags: source=%q id=%q", item.ImportSource, item.SourceID)
		}
	}

	expectedID := id.FixtureID("2025-08-02", "Banks o' Dee", "Keith", "Highland League")
	if report.ValidFixtures[0].ID != expectedID {
		t.Fatalf("unexpected fixture id: got=%s want=%s", report.ValidFixtures[0].ID, expectedID)
	}
}

func TestImportService_ImportJSON_ReimportUpdates(t *testing.T) {
	t.Parallel()

	repo := memory.NewFixtureRepository(nil)
	service := newTestImportService(repo, ImportConfig{})
	ctx := context.Background()

	_, err := service.ImportJSON(ctx, []byte(importPayload), ImportOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report, err := service.ImportJSON(ctx, []byte(importPayload), ImportOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Added != 0 {
		t.Fatalf("unexpected Added count: got=%d want=0", report.Added)
	}
	if report.Updated != 2 {
		t.Fatalf("unexpected Updated count: got=%d want=2", report.Updated)
	}

	stored, err := repo.List(ctx, fixture.Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("unexpected stored count: got=%d want=2", len(stored))
	}
}

func TestImportService_ImportJSON_RejectsWithoutPersisting(t *testing.T) {
	t.Parallel()

	repo := fixturemock.NewRepository(t)
	service := newTestImportService(repo, ImportConfig{})

	tests := []struct {
		name    string
		payload string
		message string
	}{
		{name: "empty array", payload: `[]`, message: fixture.MessageNoFixtures},
		{name: "not an array", payload: `{"date":"2025-08-02"}`, message: fixture.MessageNotArray},
		{name: "all invalid", payload: `[{"opposition":"Keith"}]`, message: "Found 0 valid fixtures, 1 error: fixture 0: missing date"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			report, err := service.ImportJSON(context.Background(), []byte(tc.payload), ImportOptions{})
			if !errors.Is(err, ErrImportRejected) {
				t.Fatalf("expected ErrImportRejected, got %v", err)
			}
			if report.Valid || report.Message != tc.message {
				t.Fatalf("unexpected report: %+v", report)
			}
		})
	}
}

func TestImportService_DryRunSkipsRepository(t *testing.T) {
	t.Parallel()

	repo := fixturemock.NewRepository(t)
	service := newTestImportService(repo, ImportConfig{})

	report, err := service.ImportJSON(context.Background(), []byte(importPayload), ImportOptions{DryRun: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.Valid {
		t.Fatalf("expected valid report: %s", report.Message)
	}
	if report.Message != "Found 2 valid fixtures, 1 error: fixture 2: missing date" {
		t.Fatalf("unexpected message: %q", report.Message)
	}
	if report.ValidFixtures[0].ID == "" {
		t.Fatalf("expected dry run to assign ids")
	}

	preview := service.Preview(context.Background(), []byte(importPayload))
	if preview.Message != report.Message {
		t.Fatalf("unexpected preview message: %q", preview.Message)
	}
}

func TestImportService_DedupesByIDLastWins(t *testing.T) {
	t.Parallel()

	repo := fixturemock.NewRepository(t)
	service := newTestImportService(repo, ImportConfig{})

	repo.
		On("UpsertFixtures", mock.Anything, mock.MatchedBy(func(items []fixture.StoredFixture) bool {
			return len(items) == 1 && items[0].ID == "fx-1" && items[0].Venue == "Kynoch Park"
		})).
		Return(fixture.UpsertResult{Updated: 1}, nil).
		Once()

	payload := `[
		{"id":"fx-1","date":"2025-08-23","time":"15:00","home_team":"Keith","away_team":"Banks o' Dee","competition":"Highland League","venue":"Old Park"},
		{"id":"fx-1","date":"2025-08-23","time":"15:00","home_team":"Keith","away_team":"Banks o' Dee","competition":"Highland League","venue":"Kynoch Park"}
	]`
	report, err := service.ImportJSON(context.Background(), []byte(payload), ImportOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Updated != 1 {
		t.Fatalf("unexpected Updated count: got=%d want=1", report.Updated)
	}
}

func TestImportService_ChunksAcrossWorkers(t *testing.T) {
	t.Parallel()

	var (
		mu     sync.Mutex
		chunks []int
	)
	repo := fixturemock.NewRepository(t)
	repo.
		On("UpsertFixtures", mock.Anything, mock.Anything).
		Return(func(_ context.Context, items []fixture.StoredFixture) (fixture.UpsertResult, error) {
			mu.Lock()
			chunks = append(chunks, len(items))
			mu.Unlock()
			return fixture.UpsertResult{Added: len(items)}, nil
		}).
		Times(4)

	records := make([]any, 0, 35)
	for i := 0; i < 35; i++ {
		records = append(records, map[string]any{
			"date":        fmt.Sprintf("2025-%02d-%02d", 8+i/28, 1+i%28),
			"opposition":  fmt.Sprintf("Opponent %d", i),
			"location":    "home",
			"competition": "Highland League",
		})
	}

	service := newTestImportService(repo, ImportConfig{ChunkSize: 10, Workers: 3})
	report, err := service.ImportRecords(context.Background(), records, ImportOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Added != 35 {
		t.Fatalf("unexpected Added count: got=%d want=35", report.Added)
	}
	sort.Ints(chunks)
	if fmt.Sprint(chunks) != "[5 10 10 10]" {
		t.Fatalf("unexpected chunk sizes: %v", chunks)
	}
}

func TestImportService_RepositoryFailure(t *testing.T) {
	t.Parallel()

	repo := fixturemock.NewRepository(t)
	repo.On("UpsertFixtures", mock.Anything, mock.Anything).Return(fixture.UpsertResult{}, errors.New("connection reset")).Once()

	service := newTestImportService(repo, ImportConfig{})
	_, err := service.ImportJSON(context.Background(), []byte(importPayload), ImportOptions{})
	if err == nil || !strings.Contains(err.Error(), "connection reset") {
		t.Fatalf("expected repository error, got %v", err)
	}
}

func TestImportService_SourceIDGenerationFailure(t *testing.T) {
	t.Parallel()

	service := NewImportService(fixturemock.NewRepository(t), nil, staticIDGenerator{err: errors.New("entropy")}, ImportConfig{}, logging.NewNop())
	if _, err := service.ImportJSON(context.Background(), []byte(importPayload), ImportOptions{}); err == nil {
		t.Fatalf("expected id generation error")
	}
}
