package fixture

import "strings"

const (
	DefaultClubName  = "Banks o' Dee"
	DefaultHomeVenue = "Spain Park"
	DefaultAwayVenue = "Away"

	ResultWin  = "W"
	ResultDraw = "D"
	ResultLoss = "L"
)

// ClubProfile is the club that location-relative records are written from.
type ClubProfile struct {
	Name      string
	HomeVenue string
	AwayVenue string
}

func DefaultClubProfile() ClubProfile {
	return ClubProfile{
		Name:      DefaultClubName,
		HomeVenue: DefaultHomeVenue,
		AwayVenue: DefaultAwayVenue,
	}
}

// WithDefaults fills blank fields from DefaultClubProfile.
func (c ClubProfile) WithDefaults() ClubProfile {
	defaults := DefaultClubProfile()
	if strings.TrimSpace(c.Name) == "" {
		c.Name = defaults.Name
	}
	if strings.TrimSpace(c.HomeVenue) == "" {
		c.HomeVenue = defaults.HomeVenue
	}
	if strings.TrimSpace(c.AwayVenue) == "" {
		c.AwayVenue = defaults.AwayVenue
	}
	return c
}

// IsHome reports whether the club is the home side of f.
func (c ClubProfile) IsHome(f Fixture) bool {
	return strings.EqualFold(strings.TrimSpace(f.HomeTeam), strings.TrimSpace(c.Name))
}

// IsAway reports whether the club is the away side of f.
func (c ClubProfile) IsAway(f Fixture) bool {
	return strings.EqualFold(strings.TrimSpace(f.AwayTeam), strings.TrimSpace(c.Name))
}

// Result returns W, D or L from the club's perspective. It is empty when
// the fixture has no final score or the club did not play in it.
func (c ClubProfile) Result(f Fixture) string {
	if !f.IsCompleted || !f.HasScore() {
		return ""
	}
	var own, other int
	switch {
	case c.IsHome(f):
		own, other = *f.HomeScore, *f.AwayScore
	case c.IsAway(f):
		own, other = *f.AwayScore, *f.HomeScore
	default:
		return ""
	}
	switch {
	case own > other:
		return ResultWin
	case own < other:
		return ResultLoss
	default:
		return ResultDraw
	}
}
