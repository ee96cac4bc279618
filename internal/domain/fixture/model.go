package fixture

import (
	"strings"
	"time"
)

const (
	DefaultKickoffTime = "15:00"

	ImportSourceManual = "manual"
	ImportSourceFile   = "file"
	ImportSourceScrape = "scrape"

	StatusUpcoming = "upcoming"
	StatusResults  = "results"
	StatusAll      = "all"

	dateLayout = "2006-01-02"
)

// Fixture is the canonical record every input shape is reconciled into.
type Fixture struct {
	ID          string  `json:"id,omitempty"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	HomeTeam    string  `json:"home_team"`
	AwayTeam    string  `json:"away_team"`
	Competition string  `json:"competition"`
	Venue       *string `json:"venue"`
	IsCompleted bool    `json:"is_completed"`
	HomeScore   *int    `json:"home_score"`
	AwayScore   *int    `json:"away_score"`
	Season      string  `json:"season,omitempty"`
	TicketLink  string  `json:"ticket_link,omitempty"`
	Source      string  `json:"source,omitempty"`
}

// Match is the camelCase shape consumed by UIs and produced by scrapers.
type Match struct {
	ID          string `json:"id,omitempty"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	HomeTeam    string `json:"homeTeam"`
	AwayTeam    string `json:"awayTeam"`
	Competition string `json:"competition"`
	Venue       string `json:"venue"`
	IsCompleted bool   `json:"isCompleted"`
	HomeScore   *int   `json:"homeScore"`
	AwayScore   *int   `json:"awayScore"`
	Season      string `json:"season,omitempty"`
	TicketLink  string `json:"ticketLink,omitempty"`
	Source      string `json:"source,omitempty"`
}

// ScrapedFixture is what scraper sources hand back.
type ScrapedFixture = Match

// StoredFixture is the persisted record with bookkeeping columns.
type StoredFixture struct {
	ID           string    `json:"id"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	HomeTeam     string    `json:"home_team"`
	AwayTeam     string    `json:"away_team"`
	Competition  string    `json:"competition"`
	Venue        string    `json:"venue"`
	IsCompleted  bool      `json:"is_completed"`
	HomeScore    *int      `json:"home_score"`
	AwayScore    *int      `json:"away_score"`
	Season       string    `json:"season,omitempty"`
	TicketLink   string    `json:"ticket_link,omitempty"`
	Source       string    `json:"source,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	DatePassed   bool      `json:"date_passed"`
	ImportDate   time.Time `json:"import_date"`
	ImportSource string    `json:"import_source"`
	Location     string    `json:"location"`
	SourceID     string    `json:"source_id,omitempty"`
}

// Kickoff combines date and time in loc. Time falls back to DefaultKickoffTime.
func (f Fixture) Kickoff(loc *time.Location) (time.Time, error) {
	return kickoff(f.Date, f.Time, loc)
}

// Kickoff combines date and time in loc. Time falls back to DefaultKickoffTime.
func (f StoredFixture) Kickoff(loc *time.Location) (time.Time, error) {
	return kickoff(f.Date, f.Time, loc)
}

// HasScore reports whether both sides of the score are known.
func (f Fixture) HasScore() bool {
	return f.HomeScore != nil && f.AwayScore != nil
}

func kickoff(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	clock = strings.TrimSpace(clock)
	if clock == "" {
		clock = DefaultKickoffTime
	}
	return time.ParseInLocation(dateLayout+" 15:04", strings.TrimSpace(date)+" "+clock, loc)
}

func datePassed(date string, now time.Time) bool {
	day, err := time.ParseInLocation(dateLayout, strings.TrimSpace(date), time.UTC)
	if err != nil {
		return false
	}
	return day.Before(now)
}

func ptr[T any](v T) *T {
	return &v
}
