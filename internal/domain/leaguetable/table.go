package leaguetable

import (
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/club-fixtures/internal/domain/fixture"
)

const (
	pointsWin  = 3
	pointsDraw = 1
	formLength = 5
)

// Standing represents a league table row for one team.
type Standing struct {
	Team           string `json:"team"`
	Position       int    `json:"position"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Draw           int    `json:"draw"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference"`
	Points         int    `json:"points"`
	Form           string `json:"form"`
}

// Build tallies completed fixtures into a sorted table. An empty
// competition includes every fixture.
func Build(fixtures []fixture.Fixture, competition string) []Standing {
	competition = strings.TrimSpace(competition)

	played := make([]fixture.Fixture, 0, len(fixtures))
	for _, f := range fixtures {
		if !f.IsCompleted || !f.HasScore() {
			continue
		}
		if competition != "" && !strings.EqualFold(strings.TrimSpace(f.Competition), competition) {
			continue
		}
		played = append(played, f)
	}
	if len(played) == 0 {
		return []Standing{}
	}

	sort.SliceStable(played, func(i, j int) bool {
		ki, _ := played[i].Kickoff(time.UTC)
		kj, _ := played[j].Kickoff(time.UTC)
		return ki.Before(kj)
	})

	rows := make(map[string]*Standing)
	row := func(team string) *Standing {
		key := strings.ToLower(strings.TrimSpace(team))
		if r, ok := rows[key]; ok {
			return r
		}
		r := &Standing{Team: strings.TrimSpace(team)}
		rows[key] = r
		return r
	}

	for _, f := range played {
		home, away := row(f.HomeTeam), row(f.AwayTeam)
		record(home, *f.HomeScore, *f.AwayScore)
		record(away, *f.AwayScore, *f.HomeScore)
	}

	out := make([]Standing, 0, len(rows))
	for _, r := range rows {
		r.GoalDifference = r.GoalsFor - r.GoalsAgainst
		if len(r.Form) > formLength {
			r.Form = r.Form[len(r.Form)-formLength:]
		}
		out = append(out, *r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		if out[i].GoalDifference != out[j].GoalDifference {
			return out[i].GoalDifference > out[j].GoalDifference
		}
		if out[i].GoalsFor != out[j].GoalsFor {
			return out[i].GoalsFor > out[j].GoalsFor
		}
		return out[i].Team < out[j].Team
	})
	for i := range out {
		out[i].Position = i + 1
	}

	return out
}

func record(r *Standing, scored, conceded int) {
	r.Played++
	r.GoalsFor += scored
	r.GoalsAgainst += conceded
	switch {
	case scored > conceded:
		r.Won++
		r.Points += pointsWin
		r.Form += fixture.ResultWin
	case scored < conceded:
		r.Lost++
		r.Form += fixture.ResultLoss
	default:
		r.Draw++
		r.Points += pointsDraw
		r.Form += fixture.ResultDraw
	}
}
