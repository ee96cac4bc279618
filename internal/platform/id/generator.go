package id

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var fixtureNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("club-fixtures/fixture"))

// Generator creates opaque IDs suitable for external references.
type Generator interface {
	NewID() (string, error)
}

type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return id.String(), nil
}

// FixtureID derives a stable id from the natural key of a fixture.
// Matching is case-insensitive.
func FixtureID(date, homeTeam, awayTeam, competition string) string {
	key := strings.ToLower(strings.Join([]string{
		strings.TrimSpace(date),
		strings.TrimSpace(homeTeam),
		strings.TrimSpace(awayTeam),
		strings.TrimSpace(competition),
	}, "|"))
	return uuid.NewSHA1(fixtureNamespace, []byte(key)).String()
}
