package postgres

import (
	"database/sql"
	"time"
)

const fixturesTable = "fixtures"

type fixtureTableModel struct {
	ID           string         `db:"id"`
	Date         string         `db:"match_date"`
	Time         string         `db:"kickoff_time"`
	HomeTeam     string         `db:"home_team"`
	AwayTeam     string         `db:"away_team"`
	Competition  string         `db:"competition"`
	Venue        string         `db:"venue"`
	IsCompleted  bool           `db:"is_completed"`
	HomeScore    sql.NullInt64  `db:"home_score"`
	AwayScore    sql.NullInt64  `db:"away_score"`
	Season       sql.NullString `db:"season"`
	TicketLink   sql.NullString `db:"ticket_link"`
	Source       sql.NullString `db:"source"`
	DatePassed   bool           `db:"date_passed"`
	ImportDate   time.Time      `db:"import_date"`
	ImportSource string         `db:"import_source"`
	Location     string         `db:"location"`
	SourceID     string         `db:"source_id"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// fixtureInsertModel leaves updated_at and deleted_at to the upsert clause.
type fixtureInsertModel struct {
	ID           string         `db:"id"`
	Date         string         `db:"match_date"`
	Time         string         `db:"kickoff_time"`
	HomeTeam     string         `db:"home_team"`
	AwayTeam     string         `db:"away_team"`
	Competition  string         `db:"competition"`
	Venue        string         `db:"venue"`
	IsCompleted  bool           `db:"is_completed"`
	HomeScore    sql.NullInt64  `db:"home_score"`
	AwayScore    sql.NullInt64  `db:"away_score"`
	Season       sql.NullString `db:"season"`
	TicketLink   sql.NullString `db:"ticket_link"`
	Source       sql.NullString `db:"source"`
	DatePassed   bool           `db:"date_passed"`
	ImportDate   time.Time      `db:"import_date"`
	ImportSource string         `db:"import_source"`
	Location     string         `db:"location"`
	SourceID     string         `db:"source_id"`
	CreatedAt    time.Time      `db:"created_at"`
}

// fixtureUpsertColumns are overwritten when an id already exists.
var fixtureUpsertColumns = []string{
	"match_date",
	"kickoff_time",
	"home_team",
	"away_team",
	"competition",
	"venue",
	"is_completed",
	"home_score",
	"away_score",
	"season",
	"ticket_link",
	"source",
	"date_passed",
	"import_date",
	"import_source",
	"location",
	"source_id",
}
