package fixture

import (
	"errors"
	"strings"
	"time"
)

// Competition types.
const (
	CompetitionLeague   = "league"
	CompetitionCup      = "cup"
	CompetitionFriendly = "friendly"
)

// ValidCompetitionTypes contains all valid competition type values.
var ValidCompetitionTypes = []string{CompetitionLeague, CompetitionCup, CompetitionFriendly}

// Domain errors
var (
	ErrEmptyTeams          = errors.New("home and away teams are required")
	ErrMissingDate         = errors.New("fixture date is required")
	ErrEmptyVenue          = errors.New("venue is required")
	ErrInvalidCompetition  = errors.New("competition type must be one of: league, cup, friendly")
	ErrNegativeScore       = errors.New("scores cannot be negative")
	ErrResultBeforeKickoff = errors.New("result cannot be recorded before the fixture date")
)

// Fixture is a scheduled match for one of the club's squads.
type Fixture struct {
	ID              string
	Date            time.Time
	KickoffTime     string // "15:00", display only
	HomeTeam        string
	AwayTeam        string
	Venue           string
	CompetitionType string
	CompetitionName string
	AgeGroup        string
	CreatedBy       string
	CreatedAt       time.Time
}

// Result is the recorded outcome of a played fixture.
type Result struct {
	ID         string
	FixtureID  string
	HomeTeam   string
	AwayTeam   string
	HomeScore  int
	AwayScore  int
	AgeGroup   string
	Date       time.Time
	RecordedBy string
	RecordedAt time.Time
}

// Selection is the set of players picked for a fixture's squad. Players in
// this list see the match briefing screen.
type Selection struct {
	FixtureID    string
	PlayerIDs    []string
	MeetingTime  string
	MeetingPlace string
	Notes        string
	UpdatedBy    string
	UpdatedAt    time.Time
}

// Validate checks if the Fixture has valid data.
// PRE: Fixture struct is populated
// POST: Returns nil if valid, error otherwise
func (f *Fixture) Validate() error {
	if strings.TrimSpace(f.HomeTeam) == "" || strings.TrimSpace(f.AwayTeam) == "" {
		return ErrEmptyTeams
	}
	if f.Date.IsZero() {
		return ErrMissingDate
	}
	if strings.TrimSpace(f.Venue) == "" {
		return ErrEmptyVenue
	}
	if !isValidCompetition(f.CompetitionType) {
		return ErrInvalidCompetition
	}
	return nil
}

// IsUpcoming reports whether the fixture is on or after the given date.
// INVARIANT: Fixture fields are not mutated
func (f *Fixture) IsUpcoming(now time.Time) bool {
	return !f.Date.Before(now.Truncate(24 * time.Hour))
}

// Validate checks if the Result has valid data.
// PRE: Result struct is populated
// POST: Returns nil if valid, error otherwise
func (r *Result) Validate() error {
	if strings.TrimSpace(r.HomeTeam) == "" || strings.TrimSpace(r.AwayTeam) == "" {
		return ErrEmptyTeams
	}
	if r.Date.IsZero() {
		return ErrMissingDate
	}
	if r.HomeScore < 0 || r.AwayScore < 0 {
		return ErrNegativeScore
	}
	return nil
}

// Includes reports whether the named player is in the selection.
// INVARIANT: Selection fields are not mutated
func (s *Selection) Includes(playerID string) bool {
	for _, id := range s.PlayerIDs {
		if id == playerID {
			return true
		}
	}
	return false
}

func isValidCompetition(ct string) bool {
	for _, v := range ValidCompetitionTypes {
		if v == ct {
			return true
		}
	}
	return false
}
