package cache

import (
	"context"
	"strings"
	"time"

	"github.com/riskibarqy/club-fixtures/internal/domain/fixture"
	basecache "github.com/riskibarqy/club-fixtures/internal/platform/cache"
)

const (
	fixtureListPrefix = "fixture:list:"
	fixtureIDPrefix   = "fixture:id:"
)

type cachedFixtureByID struct {
	value  fixture.StoredFixture
	exists bool
}

// FixtureRepository is a read-through cache over another fixture
// repository. Writes go straight to next and drop affected entries.
type FixtureRepository struct {
	next  fixture.Repository
	lists *basecache.Store[[]fixture.StoredFixture]
	items *basecache.Store[cachedFixtureByID]
}

func NewFixtureRepository(next fixture.Repository, ttl time.Duration) *FixtureRepository {
	return &FixtureRepository{
		next:  next,
		lists: basecache.NewStore[[]fixture.StoredFixture](ttl),
		items: basecache.NewStore[cachedFixtureByID](ttl),
	}
}

func (r *FixtureRepository) List(ctx context.Context, filter fixture.Filter) ([]fixture.StoredFixture, error) {
	key := fixtureListPrefix + strings.Join([]string{filter.Season, filter.Competition, filter.Status}, "|")
	items, err := r.lists.GetOrLoad(ctx, key, func(ctx context.Context) ([]fixture.StoredFixture, error) {
		items, err := r.next.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		return cloneFixtures(items), nil
	})
	if err != nil {
		return nil, err
	}
	return cloneFixtures(items), nil
}

func (r *FixtureRepository) GetByID(ctx context.Context, id string) (fixture.StoredFixture, bool, error) {
	cached, err := r.items.GetOrLoad(ctx, fixtureIDPrefix+id, func(ctx context.Context) (cachedFixtureByID, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return cachedFixtureByID{}, err
		}
		return cachedFixtureByID{value: cloneFixture(item), exists: exists}, nil
	})
	if err != nil {
		return fixture.StoredFixture{}, false, err
	}
	return cloneFixture(cached.value), cached.exists, nil
}

func (r *FixtureRepository) UpsertFixtures(ctx context.Context, fixtures []fixture.StoredFixture) (fixture.UpsertResult, error) {
	res, err := r.next.UpsertFixtures(ctx, fixtures)
	// a failed batch may still have written part of its rows
	r.lists.DeletePrefix(ctx, fixtureListPrefix)
	for _, item := range fixtures {
		r.items.Delete(ctx, fixtureIDPrefix+strings.TrimSpace(item.ID))
	}
	return res, err
}

func (r *FixtureRepository) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := r.next.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		r.lists.DeletePrefix(ctx, fixtureListPrefix)
		r.items.Delete(ctx, fixtureIDPrefix+id)
	}
	return deleted, nil
}

func cloneFixtures(items []fixture.StoredFixture) []fixture.StoredFixture {
	if items == nil {
		return nil
	}
	out := make([]fixture.StoredFixture, len(items))
	for i, item := range items {
		out[i] = cloneFixture(item)
	}
	return out
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
