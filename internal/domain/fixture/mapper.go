package fixture

import (
	"strings"
	"time"
)

// StorageOptions controls the synthesized storage-only columns.
type StorageOptions struct {
	ImportSource string
	SourceID     string
	Now          time.Time
}

// ToStorage maps a Match onto its persisted shape.
func ToStorage(m Match, opts StorageOptions) StoredFixture {
	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	importSource := strings.TrimSpace(opts.ImportSource)
	if importSource == "" {
		importSource = ImportSourceManual
	}

	return StoredFixture{
		ID:           m.ID,
		Date:         m.Date,
		Time:         m.Time,
		HomeTeam:     m.HomeTeam,
		AwayTeam:     m.AwayTeam,
		Competition:  m.Competition,
		Venue:        m.Venue,
		IsCompleted:  m.IsCompleted,
		HomeScore:    copyInt(m.HomeScore),
		AwayScore:    copyInt(m.AwayScore),
		Season:       m.Season,
		TicketLink:   m.TicketLink,
		Source:       m.Source,
		CreatedAt:    now,
		UpdatedAt:    now,
		DatePassed:   datePassed(m.Date, now),
		ImportDate:   now,
		ImportSource: importSource,
		Location:     m.Venue,
		SourceID:     strings.TrimSpace(opts.SourceID),
	}
}

// ToMatch drops the storage-only columns.
func ToMatch(f StoredFixture) Match {
	return Match{
		ID:          f.ID,
		Date:        f.Date,
		Time:        f.Time,
		HomeTeam:    f.HomeTeam,
		AwayTeam:    f.AwayTeam,
		Competition: f.Competition,
		Venue:       f.Venue,
		IsCompleted: f.IsCompleted,
		HomeScore:   copyInt(f.HomeScore),
		AwayScore:   copyInt(f.AwayScore),
		Season:      f.Season,
		TicketLink:  f.TicketLink,
		Source:      f.Source,
	}
}

// FromFixture renders a canonical fixture in the camelCase shape. An
// undefined venue becomes an empty string.
func FromFixture(f Fixture) Match {
	venue := ""
	if f.Venue != nil {
		venue = *f.Venue
	}
	return Match{
		ID:          f.ID,
		Date:        f.Date,
		Time:        f.Time,
		HomeTeam:    f.HomeTeam,
		AwayTeam:    f.AwayTeam,
		Competition: f.Competition,
		Venue:       venue,
		IsCompleted: f.IsCompleted,
		HomeScore:   copyInt(f.HomeScore),
		AwayScore:   copyInt(f.AwayScore),
		Season:      f.Season,
		TicketLink:  f.TicketLink,
		Source:      f.Source,
	}
}

// ToFixture is the inverse of FromFixture.
func ToFixture(m Match) Fixture {
	venue := m.Venue
	return Fixture{
		ID:          m.ID,
		Date:        m.Date,
		Time:        m.Time,
		HomeTeam:    m.HomeTeam,
		AwayTeam:    m.AwayTeam,
		Competition: m.Competition,
		Venue:       &venue,
		IsCompleted: m.IsCompleted,
		HomeScore:   copyInt(m.HomeScore),
		AwayScore:   copyInt(m.AwayScore),
		Season:      m.Season,
		TicketLink:  m.TicketLink,
		Source:      m.Source,
	}
}

// FromStored returns the canonical view of a persisted fixture.
func FromStored(f StoredFixture) Fixture {
	return ToFixture(ToMatch(f))
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	return ptr(*v)
}
