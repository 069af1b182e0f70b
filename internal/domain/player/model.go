package player

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"clubhouse/internal/domain/membership"
)

// AgeGroups lists the club's squads, youngest first.
var AgeGroups = []string{"u8", "u9", "u11", "u13", "u15", "u17", "u19", "senior"}

// Domain errors
var (
	ErrEmptyName           = errors.New("player first and last name are required")
	ErrMissingDOB          = errors.New("player date of birth is required")
	ErrInvalidAgeGroup     = errors.New("age group must be one of the club squads")
	ErrMissingRegistration = errors.New("player must reference a completed registration")
)

// Player is a registered club player, created from a completed registration
// when an administrator finalises the review.
type Player struct {
	ID                 string
	AccountID          string
	RegistrationID     string
	FirstName          string
	LastName           string
	DateOfBirth        time.Time
	PhotoURL           string
	RegistrationNumber string
	AgeGroup           string
	ExpiresAt          time.Time
	CreatedAt          time.Time
}

// Validate checks if the Player has valid data.
// PRE: Player struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Player) Validate() error {
	if strings.TrimSpace(p.FirstName) == "" || strings.TrimSpace(p.LastName) == "" {
		return ErrEmptyName
	}
	if p.DateOfBirth.IsZero() {
		return ErrMissingDOB
	}
	if p.RegistrationID == "" {
		return ErrMissingRegistration
	}
	if p.AgeGroup != "" && !isValidAgeGroup(p.AgeGroup) {
		return ErrInvalidAgeGroup
	}
	return nil
}

// FullName returns the player's display name.
func (p *Player) FullName() string {
	return p.FirstName + " " + p.LastName
}

// AgeGroupFor suggests the squad for a player of the given age: the
// youngest under-N group whose cutoff exceeds the player's age on the
// given date, or senior at 19 and up.
func AgeGroupFor(dob, on time.Time) string {
	age := membership.Age(dob, on)
	for _, g := range AgeGroups {
		if g == "senior" {
			break
		}
		var cutoff int
		if _, err := fmt.Sscanf(g, "u%d", &cutoff); err != nil {
			continue
		}
		if age < cutoff {
			return g
		}
	}
	return "senior"
}

func isValidAgeGroup(group string) bool {
	for _, g := range AgeGroups {
		if g == group {
			return true
		}
	}
	return false
}
