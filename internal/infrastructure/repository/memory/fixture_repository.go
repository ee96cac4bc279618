package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/club-fixtures/internal/domain/fixture"
)

type FixtureRepository struct {
	mu       sync.RWMutex
	fixtures map[string]fixture.StoredFixture
	now      func() time.Time
}

func NewFixtureRepository(seed []fixture.StoredFixture) *FixtureRepository {
	fixtures := make(map[string]fixture.StoredFixture, len(seed))
	for _, item := range seed {
		fixtures[item.ID] = cloneFixture(item)
	}

	return &FixtureRepository{
		fixtures: fixtures,
		now:      time.Now,
	}
}

func (r *FixtureRepository) List(_ context.Context, filter fixture.Filter) ([]fixture.StoredFixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fixture.StoredFixture, 0, len(r.fixtures))
	for _, item := range r.fixtures {
		if !filter.Matches(item) {
			continue
		}
		out = append(out, cloneFixture(item))
	}
	return out, nil
}

func (r *FixtureRepository) GetByID(_ context.Context, id string) (fixture.StoredFixture, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.fixtures[id]
	if !ok {
		return fixture.StoredFixture{}, false, nil
	}
	return cloneFixture(item), true, nil
}

// UpsertFixtures replaces rows by id. created_at survives an update.
func (r *FixtureRepository) UpsertFixtures(_ context.Context, fixtures []fixture.StoredFixture) (fixture.UpsertResult, error) {
	for i, item := range fixtures {
		if strings.TrimSpace(item.ID) == "" {
			return fixture.UpsertResult{}, fmt.Errorf("fixture %d: id is required", i)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var result fixture.UpsertResult
	now := r.now().UTC()
	for _, item := range fixtures {
		row := cloneFixture(item)
		if existing, ok := r.fixtures[row.ID]; ok {
			row.CreatedAt = existing.CreatedAt
			result.Updated++
		} else {
			result.Added++
		}
		if row.CreatedAt.IsZero() {
			row.CreatedAt = now
		}
		row.UpdatedAt = now
		r.fixtures[row.ID] = row
	}
	return result, nil
}

func (r *FixtureRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.fixtures[id]; !ok {
		return false, nil
	}
	delete(r.fixtures, id)
	return true, nil
}

func cloneFixture(item fixture.StoredFixture) fixture.StoredFixture {
	if item.HomeScore != nil {
		v := *item.HomeScore
		item.HomeScore = &v
	}
	if item.AwayScore != nil {
		v := *item.AwayScore
		item.AwayScore = &v
	}
	return item
}
