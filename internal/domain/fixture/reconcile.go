package fixture

import (
	"strings"

	crerr "github.com/cockroachdb/errors"
)

var (
	ErrMissingDate       = crerr.New("missing date")
	ErrUnrecognizedShape = crerr.New("unrecognized fixture shape: expected home_team/away_team/competition or opposition/location/competition")
	ErrNotObject         = crerr.New("fixture is not an object")
	ErrIncomplete        = crerr.New("incomplete fixture")
)

// Shape identifies which external layout a raw record uses.
type Shape int

const (
	ShapeUnknown Shape = iota
	ShapeStandard
	ShapeLocationRelative
)

func (s Shape) String() string {
	switch s {
	case ShapeStandard:
		return "standard"
	case ShapeLocationRelative:
		return "location_relative"
	default:
		return "unknown"
	}
}

// DetectShape classifies raw by field presence. The standard layout wins
// when a record carries both.
func DetectShape(raw map[string]any) Shape {
	switch {
	case present(raw, keysHomeTeam...) && present(raw, keysAwayTeam...) && present(raw, keysCompetition...):
		return ShapeStandard
	case present(raw, keysOpposition...) && present(raw, keysLocation...) && present(raw, keysCompetition...):
		return ShapeLocationRelative
	default:
		return ShapeUnknown
	}
}

// variant is a decoded raw record tagged with its shape.
type variant interface {
	shape() Shape
}

type commonFields struct {
	id          string
	date        string
	time        string
	competition string
	season      string
	ticketLink  string
	source      string
	score       ScoreInput
}

type standardRecord struct {
	commonFields
	homeTeam string
	awayTeam string
	venue    *string
}

func (standardRecord) shape() Shape { return ShapeStandard }

type locationRecord struct {
	commonFields
	opposition string
	home       bool
	venue      *string
}

func (locationRecord) shape() Shape { return ShapeLocationRelative }

func decodeVariant(raw map[string]any) (variant, error) {
	date, clockFromDate := normalizeDate(lookupString(raw, keysDate...))
	if date == "" {
		return nil, ErrMissingDate
	}

	common := commonFields{
		id:          lookupString(raw, keysID...),
		date:        date,
		time:        normalizeTime(lookupString(raw, keysTime...)),
		competition: lookupString(raw, keysCompetition...),
		season:      lookupString(raw, keysSeason...),
		ticketLink:  lookupString(raw, keysTicketLink...),
		source:      lookupString(raw, keysSource...),
		score: ScoreInput{
			Score:     lookupString(raw, keysScore...),
			Completed: lookupBool(raw, keysCompleted...),
			HomeScore: lookupInt(raw, keysHomeScore...),
			AwayScore: lookupInt(raw, keysAwayScore...),
		},
	}
	if common.time == "" {
		common.time = clockFromDate
	}

	switch DetectShape(raw) {
	case ShapeStandard:
		return standardRecord{
			commonFields: common,
			homeTeam:     lookupString(raw, keysHomeTeam...),
			awayTeam:     lookupString(raw, keysAwayTeam...),
			venue:        lookupStringPtr(raw, keysVenue...),
		}, nil
	case ShapeLocationRelative:
		return locationRecord{
			commonFields: common,
			opposition:   lookupString(raw, keysOpposition...),
			home:         strings.EqualFold(lookupString(raw, keysLocation...), "home"),
			venue:        lookupStringPtr(raw, keysVenue...),
		}, nil
	default:
		return nil, ErrUnrecognizedShape
	}
}

// Reconciler turns loosely typed records into canonical fixtures.
type Reconciler struct {
	club ClubProfile
}

func NewReconciler(club ClubProfile) *Reconciler {
	return &Reconciler{club: club.WithDefaults()}
}

func (r *Reconciler) Club() ClubProfile {
	return r.club
}

// Reconcile converts one raw record. It does not check completeness.
func (r *Reconciler) Reconcile(input any) (Fixture, error) {
	raw, ok := input.(map[string]any)
	if !ok {
		return Fixture{}, ErrNotObject
	}

	v, err := decodeVariant(raw)
	if err != nil {
		return Fixture{}, err
	}

	switch rec := v.(type) {
	case standardRecord:
		return r.fromStandard(rec), nil
	case locationRecord:
		return r.fromLocation(rec), nil
	default:
		return Fixture{}, ErrUnrecognizedShape
	}
}

func (r *Reconciler) fromStandard(rec standardRecord) Fixture {
	rec.score.First = SideHome
	f := rec.base()
	f.HomeTeam = rec.homeTeam
	f.AwayTeam = rec.awayTeam
	f.Venue = rec.venue
	return f.withScore(ResolveScore(rec.score))
}

func (r *Reconciler) fromLocation(rec locationRecord) Fixture {
	f := rec.base()
	if f.Time == "" {
		f.Time = DefaultKickoffTime
	}

	venue := r.club.AwayVenue
	if rec.home {
		rec.score.First = SideHome
		f.HomeTeam, f.AwayTeam = r.club.Name, rec.opposition
		venue = r.club.HomeVenue
	} else {
		rec.score.First = SideAway
		f.HomeTeam, f.AwayTeam = rec.opposition, r.club.Name
	}
	if rec.venue != nil {
		venue = *rec.venue
	}
	f.Venue = &venue

	return f.withScore(ResolveScore(rec.score))
}

func (c commonFields) base() Fixture {
	return Fixture{
		ID:          c.id,
		Date:        c.date,
		Time:        c.time,
		Competition: c.competition,
		Season:      c.season,
		TicketLink:  c.ticketLink,
		Source:      c.source,
	}
}

func (f Fixture) withScore(line ScoreLine) Fixture {
	f.IsCompleted = line.IsCompleted
	f.HomeScore = line.HomeScore
	f.AwayScore = line.AwayScore
	return f
}

// CheckComplete enforces the fields a fixture needs before it can be stored.
func CheckComplete(f Fixture) error {
	var missing []string
	if strings.TrimSpace(f.Date) == "" {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(f.Time) == "" {
		missing = append(missing, "time")
	}
	if strings.TrimSpace(f.HomeTeam) == "" {
		missing = append(missing, "home_team")
	}
	if strings.TrimSpace(f.AwayTeam) == "" {
		missing = append(missing, "away_team")
	}
	if strings.TrimSpace(f.Competition) == "" {
		missing = append(missing, "competition")
	}
	if f.Venue == nil {
		missing = append(missing, "venue")
	}
	if (f.HomeScore == nil) != (f.AwayScore == nil) {
		missing = append(missing, "home_score/away_score pair")
	}
	if len(missing) == 0 {
		return nil
	}
	return crerr.Mark(crerr.Newf("missing %s", strings.Join(missing, ", ")), ErrIncomplete)
}
