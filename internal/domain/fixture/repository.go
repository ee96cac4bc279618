package fixture

import "context"

// Filter narrows fixture listings. Empty fields match everything.
type Filter struct {
	Season      string
	Competition string
	Status      string
}

// UpsertResult counts how many records were created versus overwritten.
type UpsertResult struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
}

// Add merges another batch result into r.
func (r UpsertResult) Add(other UpsertResult) UpsertResult {
	return UpsertResult{
		Added:   r.Added + other.Added,
		Updated: r.Updated + other.Updated,
	}
}

// Repository persists fixtures keyed by id.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]StoredFixture, error)
	GetByID(ctx context.Context, id string) (StoredFixture, bool, error)
	UpsertFixtures(ctx context.Context, fixtures []StoredFixture) (UpsertResult, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Matches reports whether f passes the filter.
func (flt Filter) Matches(f StoredFixture) bool {
	if flt.Season != "" && f.Season != flt.Season {
		return false
	}
	if flt.Competition != "" && f.Competition != flt.Competition {
		return false
	}
	switch flt.Status {
	case StatusUpcoming:
		return !f.IsCompleted
	case StatusResults:
		return f.IsCompleted
	default:
		return true
	}
}
