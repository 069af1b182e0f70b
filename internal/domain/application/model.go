package application

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"clubhouse/internal/domain/membership"
)

// Application statuses mirror the membership workflow positions an
// application record itself can be in.
const (
	StatusPending  = "pending application"
	StatusApproved = "approved application"
	StatusDenied   = "denied"
)

// Guardian relationship options.
var ValidRelationships = []string{"Mother", "Father", "Guardian", "Other"}

// Domain errors
var (
	ErrEmptyFirstName      = errors.New("player first name is required")
	ErrEmptyLastName       = errors.New("player last name is required")
	ErrMissingDOB          = errors.New("player date of birth is required")
	ErrEmptyGender         = errors.New("player gender is required")
	ErrEmptyAddress        = errors.New("address is required")
	ErrEmptyEmail          = errors.New("email address is required")
	ErrEmptyPhone          = errors.New("player phone number is required")
	ErrGuardianRequired    = errors.New("parent/guardian details are required for players under 18")
	ErrConsentRequired     = errors.New("parental consent is required for players under 18")
	ErrInvalidGuardianID   = errors.New("parent/guardian ID number must be 13 digits")
	ErrInvalidRelationship = errors.New("relationship must be one of: Mother, Father, Guardian, Other")
)

var guardianIDPattern = regexp.MustCompile(`^\d{13}$`)

// Guardian is the parent/guardian sub-section of an application, mandatory
// when the applicant is a minor at submission time.
type Guardian struct {
	FirstName    string
	LastName     string
	IDNumber     string // national ID, 13 digits
	Relationship string
	Phone        string
	Consent      bool
}

// Application is a prospective member's initial application to join the
// club. Approving it unlocks the full registration form.
type Application struct {
	ID          string
	AccountID   string
	FirstName   string
	LastName    string
	DateOfBirth time.Time
	Gender      string
	Address     string
	Email       string
	Phone       string
	Guardian    Guardian
	Status      string
	SubmittedAt time.Time
	DecidedAt   time.Time
	DecidedBy   string
}

// Age returns the applicant's age in whole years on the given date.
// INVARIANT: Application fields are not mutated
func (a *Application) Age(on time.Time) int {
	return membership.Age(a.DateOfBirth, on)
}

// RequiresGuardian reports whether the parent/guardian sub-section is
// mandatory: exactly when the applicant is under 18 on the given date.
// INVARIANT: Application fields are not mutated
func (a *Application) RequiresGuardian(on time.Time) bool {
	return membership.IsMinor(a.DateOfBirth, on)
}

// Validate checks the application against the submission-time rules.
// PRE: now is the submission time
// POST: Returns nil if valid; the first failing rule's error otherwise
func (a *Application) Validate(now time.Time) error {
	if strings.TrimSpace(a.FirstName) == "" {
		return ErrEmptyFirstName
	}
	if strings.TrimSpace(a.LastName) == "" {
		return ErrEmptyLastName
	}
	if a.DateOfBirth.IsZero() {
		return ErrMissingDOB
	}
	if strings.TrimSpace(a.Gender) == "" {
		return ErrEmptyGender
	}
	if strings.TrimSpace(a.Address) == "" {
		return ErrEmptyAddress
	}
	if strings.TrimSpace(a.Email) == "" {
		return ErrEmptyEmail
	}
	if strings.TrimSpace(a.Phone) == "" {
		return ErrEmptyPhone
	}
	if a.RequiresGuardian(now) {
		return a.Guardian.validate()
	}
	return nil
}

func (g Guardian) validate() error {
	if strings.TrimSpace(g.FirstName) == "" || strings.TrimSpace(g.LastName) == "" ||
		strings.TrimSpace(g.Phone) == "" {
		return ErrGuardianRequired
	}
	if !guardianIDPattern.MatchString(g.IDNumber) {
		return ErrInvalidGuardianID
	}
	if !isValidRelationship(g.Relationship) {
		return ErrInvalidRelationship
	}
	if !g.Consent {
		return ErrConsentRequired
	}
	return nil
}

func isValidRelationship(rel string) bool {
	for _, r := range ValidRelationships {
		if r == rel {
			return true
		}
	}
	return false
}
