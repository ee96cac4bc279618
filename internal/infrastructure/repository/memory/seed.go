package memory

import (
	"time"

	"github.com/riskibarqy/club-fixtures/internal/domain/fixture"
	"github.com/riskibarqy/club-fixtures/internal/platform/id"
)

const SeedSourceID = "demo-seed"

// SeedFixtures returns a small demo season for club, for local runs on the
// memory driver.
func SeedFixtures(club fixture.ClubProfile, now time.Time) []fixture.StoredFixture {
	home, away := club.HomeVenue, club.AwayVenue
	score := func(v int) *int { return &v }
	venue := func(v string) *string { return &v }

	fixtures := []fixture.Fixture{
		{
			Date: "2025-07-26", Time: "15:00", HomeTeam: club.Name, AwayTeam: "Brora Rangers",
			Competition: "Highland League", Venue: venue(home), IsCompleted: true,
			HomeScore: score(2), AwayScore: score(1), Season: "2025/26",
		},
		{
			Date: "2025-08-02", Time: "15:00", HomeTeam: "Fraserburgh", AwayTeam: club.Name,
			Competition: "Highland League", Venue: venue(away), IsCompleted: true,
			HomeScore: score(0), AwayScore: score(0), Season: "2025/26",
		},
		{
			Date: "2025-08-09", Time: "15:00", HomeTeam: club.Name, AwayTeam: "Buckie Thistle",
			Competition: "Highland League", Venue: venue(home), IsCompleted: true,
			HomeScore: score(1), AwayScore: score(3), Season: "2025/26",
		},
		{
			Date: "2026-08-01", Time: "15:00", HomeTeam: "Formartine United", AwayTeam: club.Name,
			Competition: "Highland League", Venue: venue(away), Season: "2026/27",
		},
		{
			Date: "2026-08-08", Time: "19:45", HomeTeam: club.Name, AwayTeam: "Inverurie Loco Works",
			Competition: "Aberdeenshire Shield", Venue: venue(home), Season: "2026/27",
		},
	}

	out := make([]fixture.StoredFixture, 0, len(fixtures))
	for _, f := range fixtures {
		f.ID = id.FixtureID(f.Date, f.HomeTeam, f.AwayTeam, f.Competition)
		out = append(out, fixture.ToStorage(fixture.FromFixture(f), fixture.StorageOptions{
			ImportSource: fixture.ImportSourceManual,
			SourceID:     SeedSourceID,
			Now:          now,
		}))
	}
	return out
}
