package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/club-fixtures/internal/domain/fixture"
	"github.com/riskibarqy/club-fixtures/internal/domain/leaguetable"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
)

type FixtureService struct {
	fixtureRepo fixture.Repository
	club        fixture.ClubProfile
}

func NewFixtureService(fixtureRepo fixture.Repository, club fixture.ClubProfile) *FixtureService {
	return &FixtureService{
		fixtureRepo: fixtureRepo,
		club:        club,
	}
}

func (s *FixtureService) Club() fixture.ClubProfile {
	return s.club
}

// List returns fixtures in kickoff order, newest first for results.
func (s *FixtureService) List(ctx context.Context, filter fixture.Filter) ([]fixture.StoredFixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.List",
		attribute.String("fixture.status", filter.Status),
	)
	defer span.End()

	filter, err := normalizeFilter(filter)
	if err != nil {
		return nil, err
	}

	items, err := s.fixtureRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list fixtures: %w", err)
	}

	sortByKickoff(items, filter.Status == fixture.StatusResults)
	return items, nil
}

func (s *FixtureService) Get(ctx context.Context, fixtureID string) (fixture.StoredFixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.Get")
	defer span.End()

	fixtureID = strings.TrimSpace(fixtureID)
	if fixtureID == "" {
		return fixture.StoredFixture{}, fmt.Errorf("%w: fixture id is required", ErrInvalidInput)
	}

	item, exists, err := s.fixtureRepo.GetByID(ctx, fixtureID)
	if err != nil {
		return fixture.StoredFixture{}, fmt.Errorf("get fixture: %w", err)
	}
	if !exists {
		return fixture.StoredFixture{}, fmt.Errorf("%w: fixture=%s", ErrNotFound, fixtureID)
	}

	return item, nil
}

func (s *FixtureService) Delete(ctx context.Context, fixtureID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.Delete")
	defer span.End()

	fixtureID = strings.TrimSpace(fixtureID)
	if fixtureID == "" {
		return fmt.Errorf("%w: fixture id is required", ErrInvalidInput)
	}

	deleted, err := s.fixtureRepo.Delete(ctx, fixtureID)
	if err != nil {
		return fmt.Errorf("delete fixture: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: fixture=%s", ErrNotFound, fixtureID)
	}
	return nil
}

// Export renders the matching fixtures as a JSON array of canonical
// records, suitable for re-import.
func (s *FixtureService) Export(ctx context.Context, filter fixture.Filter) ([]byte, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.Export")
	defer span.End()

	items, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]fixture.Fixture, 0, len(items))
	for _, item := range items {
		out = append(out, fixture.FromStored(item))
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(out); err != nil {
		return nil, fmt.Errorf("encode fixtures: %w", err)
	}
	return append([]byte(nil), buf.B...), nil
}

func (s *FixtureService) LeagueTable(ctx context.Context, season, competition string) ([]leaguetable.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.LeagueTable",
		attribute.String("fixture.competition", competition),
	)
	defer span.End()

	items, err := s.fixtureRepo.List(ctx, fixture.Filter{
		Season: strings.TrimSpace(season),
		Status: fixture.StatusResults,
	})
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}

	fixtures := make([]fixture.Fixture, 0, len(items))
	for _, item := range items {
		fixtures = append(fixtures, fixture.FromStored(item))
	}
	return leaguetable.Build(fixtures, competition), nil
}

func normalizeFilter(filter fixture.Filter) (fixture.Filter, error) {
	filter.Season = strings.TrimSpace(filter.Season)
	filter.Competition = strings.TrimSpace(filter.Competition)
	filter.Status = strings.ToLower(strings.TrimSpace(filter.Status))

	switch filter.Status {
	case "", fixture.StatusAll:
		filter.Status = ""
	case fixture.StatusUpcoming, fixture.StatusResults:
	default:
		return fixture.Filter{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, filter.Status)
	}
	return filter, nil
}

func sortByKickoff(items []fixture.StoredFixture, newestFirst bool) {
	sort.SliceStable(items, func(i, j int) bool {
		ki, _ := items[i].Kickoff(time.UTC)
		kj, _ := items[j].Kickoff(time.UTC)
		if !ki.Equal(kj) {
			if newestFirst {
				return ki.After(kj)
			}
			return ki.Before(kj)
		}
		return items[i].ID < items[j].ID
	})
}
