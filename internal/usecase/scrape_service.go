package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/club-fixtures/internal/domain/fixture"
	"github.com/riskibarqy/club-fixtures/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

const defaultScrapeConcurrency = 4

// FixtureScraper fetches raw fixture records from a remote source page.
type FixtureScraper interface {
	FetchFixtures(ctx context.Context, sourceURL string) ([]any, error)
}

type ScrapeInput struct {
	Sources  []string
	SourceID string
	DryRun   bool
}

type ScrapeSourceResult struct {
	Source     string `json:"source"`
	Records    int    `json:"records"`
	DurationMs int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

type ScrapeResult struct {
	Sources []ScrapeSourceResult     `json:"sources"`
	Report  fixture.ValidationReport `json:"report"`
}

type ScrapeService struct {
	scraper     FixtureScraper
	importer    *ImportService
	concurrency int
	logger      *logging.Logger
}

func NewScrapeService(scraper FixtureScraper, importer *ImportService, concurrency int, logger *logging.Logger) *ScrapeService {
	if concurrency <= 0 {
		concurrency = defaultScrapeConcurrency
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ScrapeService{
		scraper:     scraper,
		importer:    importer,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Scrape fetches every source concurrently and imports the concatenated
// records in source order. A failing source is reported and skipped.
func (s *ScrapeService) Scrape(ctx context.Context, input ScrapeInput) (_ ScrapeResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScrapeService.Scrape",
		attribute.Int("scrape.source_count", len(input.Sources)),
		attribute.Bool("scrape.dry_run", input.DryRun),
	)
	defer func() { finishUsecaseSpan(span, err) }()

	if s.scraper == nil || s.importer == nil {
		return ScrapeResult{}, fmt.Errorf("%w: scraper is not configured", ErrDependencyUnavailable)
	}

	sources := normalizeSources(input.Sources)
	if len(sources) == 0 {
		return ScrapeResult{}, fmt.Errorf("%w: at least one source url is required", ErrInvalidInput)
	}

	results := make([]ScrapeSourceResult, len(sources))
	records := make([][]any, len(sources))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.concurrency)
	for i, source := range sources {
		group.Go(func() error {
			start := time.Now()
			items, fetchErr := s.scraper.FetchFixtures(groupCtx, source)
			results[i] = ScrapeSourceResult{
				Source:     source,
				Records:    len(items),
				DurationMs: time.Since(start).Milliseconds(),
			}
			if fetchErr != nil {
				results[i].Error = fetchErr.Error()
				s.logger.WarnContext(groupCtx, "scrape source failed", "source", source, "error", fetchErr)
				if errors.Is(fetchErr, context.Canceled) {
					return fetchErr
				}
				return nil
			}
			records[i] = items
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return ScrapeResult{Sources: results}, fmt.Errorf("scrape sources: %w", err)
	}

	merged := make([]any, 0)
	failed := 0
	for i := range sources {
		if results[i].Error != "" {
			failed++
			continue
		}
		merged = append(merged, records[i]...)
	}
	if failed == len(sources) {
		return ScrapeResult{Sources: results}, fmt.Errorf("%w: all %d sources failed", ErrDependencyUnavailable, failed)
	}

	report, err := s.importer.ImportRecords(ctx, merged, ImportOptions{
		ImportSource: fixture.ImportSourceScrape,
		SourceID:     input.SourceID,
		DryRun:       input.DryRun,
	})
	return ScrapeResult{Sources: results, Report: report}, err
}

func normalizeSources(sources []string) []string {
	out := make([]string, 0, len(sources))
	seen := make(map[string]struct{}, len(sources))
	for _, source := range sources {
		source = strings.TrimSpace(source)
		if source == "" {
			continue
		}
		if _, ok := seen[source]; ok {
			continue
		}
		seen[source] = struct{}{}
		out = append(out, source)
	}
	return out
}
