package fixture

import (
	"strconv"
	"strings"
)

// Side names the team whose goals are written first in a score string.
type Side int

const (
	SideHome Side = iota
	SideAway
)

// ScoreInput carries the completion signals found on one raw record.
type ScoreInput struct {
	Score     string
	Completed *bool
	HomeScore *int
	AwayScore *int
	First     Side
}

// ScoreLine is the resolved completion state of a fixture.
type ScoreLine struct {
	IsCompleted bool
	HomeScore   *int
	AwayScore   *int
}

// ParseScore splits "<int> - <int>". Anything else reports ok=false.
func ParseScore(score string) (first, second int, ok bool) {
	score = strings.NewReplacer("–", "-", "—", "-").Replace(strings.TrimSpace(score))
	if score == "" {
		return 0, 0, false
	}
	parts := strings.Split(score, "-")
	if len(parts) != 2 {
		return 0, 0, false
	}
	first, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || first < 0 {
		return 0, 0, false
	}
	second, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || second < 0 {
		return 0, 0, false
	}
	return first, second, true
}

// ResolveScore derives completion and home/away goals. A parseable score
// string wins over every flag; a numeric home/away pair comes next; an
// explicit completion flag alone never produces goals.
func ResolveScore(in ScoreInput) ScoreLine {
	if first, second, ok := ParseScore(in.Score); ok {
		if in.First == SideAway {
			first, second = second, first
		}
		return ScoreLine{IsCompleted: true, HomeScore: ptr(first), AwayScore: ptr(second)}
	}
	if in.HomeScore != nil && in.AwayScore != nil {
		return ScoreLine{IsCompleted: true, HomeScore: ptr(*in.HomeScore), AwayScore: ptr(*in.AwayScore)}
	}
	return ScoreLine{IsCompleted: in.Completed != nil && *in.Completed}
}
