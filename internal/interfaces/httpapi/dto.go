package httpapi

import (
	"time"

	"github.com/riskibarqy/club-fixtures/internal/domain/fixture"
)

type listFixturesQuery struct {
	Season      string `validate:"omitempty,max=20"`
	Competition string `validate:"omitempty,max=120"`
	Status      string `validate:"omitempty,oneof=upcoming results all"`
}

type leagueTableQuery struct {
	Season      string `validate:"omitempty,max=20"`
	Competition string `validate:"omitempty,max=120"`
}

type importQuery struct {
	Source   string `validate:"omitempty,oneof=manual file scrape"`
	SourceID string `validate:"omitempty,max=128"`
}

type scrapeRequest struct {
	Sources  []string `json:"sources" validate:"required,min=1,max=20,dive,required,url"`
	SourceID string   `json:"source_id" validate:"omitempty,max=128"`
	DryRun   bool     `json:"dry_run"`
}

// fixtureDTO is the display shape consumed by the club site.
type fixtureDTO struct {
	ID          string `json:"id"`
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
	IsHome      bool   `json:"isHome"`
	Result      string `json:"result,omitempty"`
	DatePassed  bool   `json:"datePassed"`
}

type adminFixtureDTO struct {
	fixtureDTO
	Source       string    `json:"source,omitempty"`
	ImportSource string    `json:"importSource"`
	ImportDate   time.Time `json:"importDate"`
	SourceID     string    `json:"sourceId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func fixtureToDTO(club fixture.ClubProfile, item fixture.StoredFixture) fixtureDTO {
	m := fixture.ToMatch(item)
	f := fixture.ToFixture(m)
	return fixtureDTO{
		ID:          m.ID,
		Date:        m.Date,
		Time:        m.Time,
		HomeTeam:    m.HomeTeam,
		AwayTeam:    m.AwayTeam,
		Competition: m.Competition,
		Venue:       m.Venue,
		IsCompleted: m.IsCompleted,
		HomeScore:   m.HomeScore,
		AwayScore:   m.AwayScore,
		Season:      m.Season,
		TicketLink:  m.TicketLink,
		IsHome:      club.IsHome(f),
		Result:      club.Result(f),
		DatePassed:  item.DatePassed,
	}
}

func adminFixtureToDTO(club fixture.ClubProfile, item fixture.StoredFixture) adminFixtureDTO {
	return adminFixtureDTO{
		fixtureDTO:   fixtureToDTO(club, item),
		Source:       item.Source,
		ImportSource: item.ImportSource,
		ImportDate:   item.ImportDate,
		SourceID:     item.SourceID,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}
