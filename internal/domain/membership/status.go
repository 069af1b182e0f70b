package membership

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Status is the progress state of a member's application/registration.
type Status string

// Membership statuses. A brand-new account starts at StatusNone and walks the
// application/registration pipeline until it reaches StatusRegistered or
// StatusDenied, both of which are terminal.
const (
	StatusNone                Status = "none"
	StatusPendingApplication  Status = "pending application"
	StatusApprovedApplication Status = "approved application"
	StatusDenied              Status = "denied"
	StatusPendingRegistration Status = "pending registration"
	StatusReviewRegistration  Status = "review registration"
	StatusRegistered          Status = "registered"
)

// Event is a trigger that moves a membership from one status to another.
type Event string

// Workflow events. Submit* events are member-initiated; Approve, Decline and
// the review outcomes are administrator-initiated.
const (
	EventSubmitApplication  Event = "submit_application"
	EventApproveApplication Event = "approve_application"
	EventDeclineApplication Event = "decline_application"
	EventSubmitRegistration Event = "submit_registration"
	EventReviewComplete     Event = "review_complete"
	EventReviewAmend        Event = "review_amend"
	EventResubmit           Event = "resubmit"
)

// ValidStatuses contains all valid status values.
var ValidStatuses = []Status{
	StatusNone,
	StatusPendingApplication,
	StatusApprovedApplication,
	StatusDenied,
	StatusPendingRegistration,
	StatusReviewRegistration,
	StatusRegistered,
}

// Domain errors
var (
	ErrInvalidStatus     = errors.New("unknown membership status")
	ErrInvalidTransition = errors.New("transition not permitted from current status")
	ErrEmptyAmendSet     = errors.New("review requires at least one field to amend")
)

// transitions is the complete workflow table. Any (status, event) pair not
// listed here is rejected by Transition.
var transitions = map[Status]map[Event]Status{
	StatusNone: {
		EventSubmitApplication: StatusPendingApplication,
	},
	StatusPendingApplication: {
		EventApproveApplication: StatusApprovedApplication,
		EventDeclineApplication: StatusDenied,
	},
	StatusApprovedApplication: {
		EventSubmitRegistration: StatusPendingRegistration,
	},
	StatusPendingRegistration: {
		EventReviewComplete: StatusRegistered,
		EventReviewAmend:    StatusReviewRegistration,
	},
	StatusReviewRegistration: {
		EventResubmit: StatusPendingRegistration,
	},
	// StatusRegistered and StatusDenied are terminal: no outgoing events.
}

// IsValid reports whether s is a known status value.
// INVARIANT: Status values are compared exactly, no normalisation
func (s Status) IsValid() bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is defined for s.
func (s Status) IsTerminal() bool {
	return s == StatusRegistered || s == StatusDenied
}

// Transition applies event to the current status and returns the next status.
// PRE: current is a valid status
// POST: Returns the next status, or ErrInvalidTransition if the pair is not in the table
func Transition(current Status, event Event) (Status, error) {
	if !current.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, current)
	}
	next, ok := transitions[current][event]
	if !ok {
		return "", fmt.Errorf("%w: %s on %q", ErrInvalidTransition, event, current)
	}
	return next, nil
}

// AmendmentSet is the set of registration field names an administrator
// flagged as needing correction. It is non-empty exactly while the
// membership status is StatusReviewRegistration.
type AmendmentSet map[string]bool

// NewAmendmentSet builds a set from a list of field names.
func NewAmendmentSet(fields []string) AmendmentSet {
	set := make(AmendmentSet, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}

// Fields returns the field names in the set, sorted for stable output.
// INVARIANT: the set is not mutated
func (a AmendmentSet) Fields() []string {
	fields := make([]string, 0, len(a))
	for f := range a {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Contains reports whether the named field is in the set.
func (a AmendmentSet) Contains(field string) bool {
	return a[field]
}

// Missing returns the fields in the set that are absent from the supplied
// resubmission field names. A resubmission is acceptable only when Missing
// returns an empty slice.
// INVARIANT: the set is not mutated
func (a AmendmentSet) Missing(supplied []string) []string {
	have := make(map[string]bool, len(supplied))
	for _, f := range supplied {
		have[f] = true
	}
	var missing []string
	for _, f := range a.Fields() {
		if !have[f] {
			missing = append(missing, f)
		}
	}
	return missing
}

// ReviewOutcome is the result of evaluating an administrator's checklist.
type ReviewOutcome struct {
	Event  Event        // EventReviewComplete or EventReviewAmend
	Status Status       // StatusRegistered or StatusReviewRegistration
	Amend  AmendmentSet // non-empty iff Status is StatusReviewRegistration
}

// EvaluateChecklist turns an administrator's per-field checklist into a
// review outcome. Parent/guardian fields are pre-satisfied when the
// applicant is an adult, since no parent data is expected.
// PRE: checklist maps registration field names to acceptable=true/false
// POST: all acceptable ⇒ registered; otherwise review with the unacceptable fields
func EvaluateChecklist(checklist map[string]bool, adult bool) ReviewOutcome {
	amend := make(AmendmentSet)
	for field, ok := range checklist {
		if ok {
			continue
		}
		if adult && IsParentField(field) {
			continue
		}
		amend[field] = true
	}
	if len(amend) == 0 {
		return ReviewOutcome{Event: EventReviewComplete, Status: StatusRegistered}
	}
	return ReviewOutcome{Event: EventReviewAmend, Status: StatusReviewRegistration, Amend: amend}
}

// IsParentField reports whether a registration field belongs to the
// parent/guardian sub-section.
func IsParentField(field string) bool {
	switch field {
	case "parentFirstName", "parentLastName", "parentIDNumber",
		"parentRelationship", "parentPhone", "parentalConsent":
		return true
	}
	return false
}

// Age computes a person's age in whole years on a given date: calendar-year
// difference, minus one if the month/day of `on` falls before the month/day
// of the birthday.
// PRE: dob is not after on
// POST: returns age >= 0 for any dob <= on
func Age(dob, on time.Time) int {
	age := on.Year() - dob.Year()
	if on.Month() < dob.Month() || (on.Month() == dob.Month() && on.Day() < dob.Day()) {
		age--
	}
	return age
}

// IsMinor reports whether a person born on dob is under 18 on the given date.
func IsMinor(dob, on time.Time) bool {
	return Age(dob, on) < 18
}
