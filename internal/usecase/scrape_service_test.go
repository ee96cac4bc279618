package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/club-fixtures/internal/domain/fixture"
	"github.com/riskibarqy/club-fixtures/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/club-fixtures/internal/platform/logging"
)

type fakeScraper struct {
	records map[string][]any
	errs    map[string]error
}

func (f fakeScraper) FetchFixtures(_ context.Context, sourceURL string) ([]any, error) {
	if err := f.errs[sourceURL]; err != nil {
		return nil, err
	}
	return f.records[sourceURL], nil
}

func scrapedRecord(date, opposition string) map[string]any {
	return map[string]any{
		"date":        date,
		"opposition":  opposition,
		"location":    "away",
		"competition": "Highland League",
	}
}

func TestScrapeService_MergesSourcesInOrder(t *testing.T) {
	t.Parallel()

	repo := memory.NewFixtureRepository(nil)
	importer := newTestImportService(repo, ImportConfig{})
	scraper := fakeScraper{
		records: map[string][]any{
			"https://a.example/fixtures": {scrapedRecord("2025-08-02", "Keith")},
			"https://b.example/fixtures": {scrapedRecord("2025-08-09", "Huntly"), map[string]any{"opposition": "Nairn"}},
		},
		errs: map[string]error{
			"https://c.example/fixtures": errors.New("status 503"),
		},
	}
	service := NewScrapeService(scraper, importer, 2, logging.NewNop())

	result, err := service.Scrape(context.Background(), ScrapeInput{
		Sources: []string{"https://a.example/fixtures", " https://b.example/fixtures ", "https://c.example/fixtures", "https://a.example/fixtures"},
	})
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}
	if len(result.Sources) != 3 {
		t.Fatalf("expected duplicate sources to collapse, got %d", len(result.Sources))
	}
	if result.Sources[2].Error == "" || result.Sources[1].Records != 2 {
		t.Fatalf("unexpected source results: %+v", result.Sources)
	}
	if result.Report.Added != 2 || len(result.Report.Errors) != 1 || result.Report.Errors[0].Index != 2 {
		t.Fatalf("unexpected report: %+v", result.Report)
	}
	if result.Report.ValidFixtures[0].HomeTeam != "Keith" || result.Report.ValidFixtures[1].HomeTeam != "Huntly" {
		t.Fatalf("expected source order to be kept: %+v", result.Report.ValidFixtures)
	}

	stored, err := repo.List(context.Background(), fixture.Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, item := range stored {
		if item.ImportSource != fixture.ImportSourceScrape {
			t.Fatalf("unexpected import source: %q", item.ImportSource)
		}
	}
}

func TestScrapeService_DryRun(t *testing.T) {
	t.Parallel()

	repo := memory.NewFixtureRepository(nil)
	scraper := fakeScraper{records: map[string][]any{"https://a.example": {scrapedRecord("2025-08-02", "Keith")}}}
	service := NewScrapeService(scraper, newTestImportService(repo, ImportConfig{}), 0, nil)

	result, err := service.Scrape(context.Background(), ScrapeInput{Sources: []string{"https://a.example"}, DryRun: true})
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}
	if !result.Report.Valid || result.Report.Added != 0 {
		t.Fatalf("unexpected dry run report: %+v", result.Report)
	}
	stored, _ := repo.List(context.Background(), fixture.Filter{})
	if len(stored) != 0 {
		t.Fatalf("dry run must not persist, got %d rows", len(stored))
	}
}

func TestScrapeService_Errors(t *testing.T) {
	t.Parallel()

	importer := newTestImportService(memory.NewFixtureRepository(nil), ImportConfig{})
	tests := []struct {
		name    string
		service *ScrapeService
		sources []string
		want    error
	}{
		{
			name:    "no sources",
			service: NewScrapeService(fakeScraper{}, importer, 1, nil),
			sources: []string{" "},
			want:    ErrInvalidInput,
		},
		{
			name:    "not configured",
			service: NewScrapeService(nil, importer, 1, nil),
			sources: []string{"https://a.example"},
			want:    ErrDependencyUnavailable,
		},
		{
			name:    "all sources failed",
			service: NewScrapeService(fakeScraper{errs: map[string]error{"https://a.example": errors.New("boom")}}, importer, 1, nil),
			sources: []string{"https://a.example"},
			want:    ErrDependencyUnavailable,
		},
		{
			name:    "nothing scraped",
			service: NewScrapeService(fakeScraper{records: map[string][]any{"https://a.example": {}}}, importer, 1, nil),
			sources: []string{"https://a.example"},
			want:    ErrImportRejected,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := tc.service.Scrape(context.Background(), ScrapeInput{Sources: tc.sources})
			if !errors.Is(err, tc.want) {
				t.Fatalf("unexpected error: got=%v want=%v", err, tc.want)
			}
		})
	}
}
