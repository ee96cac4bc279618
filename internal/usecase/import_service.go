package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/club-fixtures/internal/domain/fixture"
	"github.com/riskibarqy/club-fixtures/internal/platform/id"
	"github.com/riskibarqy/club-fixtures/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultImportChunkSize = 200
	defaultImportWorkers   = 4
	maxImportWorkers       = 32
)

type ImportConfig struct {
	ChunkSize int
	Workers   int
}

type ImportOptions struct {
	ImportSource string
	// SourceID tags every stored row of the batch. A random id is used when empty.
	SourceID string
	// DryRun validates without writing.
	DryRun bool
}

type ImportService struct {
	fixtureRepo fixture.Repository
	validator   *fixture.Validator
	ids         id.Generator
	cfg         ImportConfig
	logger      *logging.Logger
	now         func() time.Time
}

func NewImportService(
	fixtureRepo fixture.Repository,
	validator *fixture.Validator,
	ids id.Generator,
	cfg ImportConfig,
	logger *logging.Logger,
) *ImportService {
	if validator == nil {
		validator = fixture.NewValidator(nil)
	}
	if ids == nil {
		ids = id.NewRandomGenerator()
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = defaultImportChunkSize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultImportWorkers
	}
	if cfg.Workers > maxImportWorkers {
		cfg.Workers = maxImportWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &ImportService{
		fixtureRepo: fixtureRepo,
		validator:   validator,
		ids:         ids,
		cfg:         cfg,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Preview validates a raw JSON payload without persisting anything.
func (s *ImportService) Preview(ctx context.Context, payload []byte) fixture.ValidationReport {
	_, span := startUsecaseSpan(ctx, "usecase.ImportService.Preview")
	defer span.End()

	return s.validator.ValidateJSON(payload)
}

func (s *ImportService) ImportJSON(ctx context.Context, payload []byte, opts ImportOptions) (fixture.ValidationReport, error) {
	return s.importReport(ctx, s.validator.ValidateJSON(payload), opts)
}

// ImportRecords imports already decoded records, e.g. scraper output.
func (s *ImportService) ImportRecords(ctx context.Context, records []any, opts ImportOptions) (fixture.ValidationReport, error) {
	return s.importReport(ctx, s.validator.Validate(records), opts)
}

func (s *ImportService) importReport(ctx context.Context, report fixture.ValidationReport, opts ImportOptions) (_ fixture.ValidationReport, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.Import",
		attribute.String("fixture.import_source", opts.ImportSource),
		attribute.Int("fixture.valid_count", len(report.ValidFixtures)),
		attribute.Int("fixture.error_count", len(report.Errors)),
	)
	defer func() { finishUsecaseSpan(span, err) }()

	if !report.Valid {
		return report, fmt.Errorf("%w: %s", ErrImportRejected, report.Message)
	}

	assignFixtureIDs(report.ValidFixtures)
	if opts.DryRun {
		return report, nil
	}

	sourceID := strings.TrimSpace(opts.SourceID)
	if sourceID == "" {
		sourceID, err = s.ids.NewID()
		if err != nil {
			return report, fmt.Errorf("generate source id: %w", err)
		}
	}

	storageOpts := fixture.StorageOptions{
		ImportSource: opts.ImportSource,
		SourceID:     sourceID,
		Now:          s.now(),
	}
	stored := dedupeStored(report.ValidFixtures, storageOpts)

	res, err := s.upsertChunks(ctx, stored)
	if err != nil {
		return report, err
	}
	report.ApplyUpsert(res)

	s.logger.InfoContext(ctx, "fixtures imported",
		"import_source", storageOpts.ImportSource,
		"source_id", sourceID,
		"added", res.Added,
		"updated", res.Updated,
		"rejected", len(report.Errors),
	)
	return report, nil
}

func (s *ImportService) upsertChunks(ctx context.Context, stored []fixture.StoredFixture) (fixture.UpsertResult, error) {
	chunks := chunkStored(stored, s.cfg.ChunkSize)
	if len(chunks) == 0 {
		return fixture.UpsertResult{}, nil
	}
	if len(chunks) == 1 {
		res, err := s.fixtureRepo.UpsertFixtures(ctx, chunks[0])
		if err != nil {
			return fixture.UpsertResult{}, fmt.Errorf("upsert fixtures: %w", err)
		}
		return res, nil
	}

	workerCount := min(s.cfg.Workers, len(chunks))
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return fixture.UpsertResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		added    atomic.Int64
		updated  atomic.Int64
		workers  sync.WaitGroup
		errMu    sync.Mutex
		firstErr error
	)
	for i, chunk := range chunks {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			res, err := s.fixtureRepo.UpsertFixtures(ctx, chunk)
			if err != nil {
				errMu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("upsert fixtures chunk=%d: %w", i, err)
				}
				errMu.Unlock()
				return
			}
			added.Add(int64(res.Added))
			updated.Add(int64(res.Updated))
		}); err != nil {
			workers.Done()
			workers.Wait()
			return fixture.UpsertResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	if firstErr != nil {
		return fixture.UpsertResult{}, firstErr
	}
	return fixture.UpsertResult{
		Added:   int(added.Load()),
		Updated: int(updated.Load()),
	}, nil
}

// assignFixtureIDs gives unsaved fixtures an id derived from their natural
// key so re-importing the same file updates instead of duplicating.
func assignFixtureIDs(items []fixture.Fixture) {
	for i := range items {
		if strings.TrimSpace(items[i].ID) != "" {
			continue
		}
		items[i].ID = id.FixtureID(items[i].Date, items[i].HomeTeam, items[i].AwayTeam, items[i].Competition)
	}
}

// dedupeStored maps fixtures to storage. A repeated id keeps the last
// record in the position of the first.
func dedupeStored(items []fixture.Fixture, opts fixture.StorageOptions) []fixture.StoredFixture {
	out := make([]fixture.StoredFixture, 0, len(items))
	index := make(map[string]int, len(items))
	for _, item := range items {
		row := fixture.ToStorage(fixture.FromFixture(item), opts)
		if pos, ok := index[row.ID]; ok {
			out[pos] = row
			continue
		}
		index[row.ID] = len(out)
		out = append(out, row)
	}
	return out
}

func chunkStored(items []fixture.StoredFixture, size int) [][]fixture.StoredFixture {
	if size <= 0 {
		size = defaultImportChunkSize
	}
	chunks := make([][]fixture.StoredFixture, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		chunks = append(chunks, items[start:end])
	}
	return chunks
}
