package membership_test

import (
	"errors"
	"testing"
	"time"

	"clubhouse/internal/domain/membership"
)

// TestTransitionTable walks every defined transition in the workflow.
func TestTransitionTable(t *testing.T) {
	tests := []struct {
		name    string
		current membership.Status
		event   membership.Event
		want    membership.Status
		wantErr bool
	}{
		{
			name:    "submit application from none",
			current: membership.StatusNone,
			event:   membership.EventSubmitApplication,
			want:    membership.StatusPendingApplication,
		},
		{
			name:    "approve pending application",
			current: membership.StatusPendingApplication,
			event:   membership.EventApproveApplication,
			want:    membership.StatusApprovedApplication,
		},
		{
			name:    "decline pending application",
			current: membership.StatusPendingApplication,
			event:   membership.EventDeclineApplication,
			want:    membership.StatusDenied,
		},
		{
			name:    "submit registration after approval",
			current: membership.StatusApprovedApplication,
			event:   membership.EventSubmitRegistration,
			want:    membership.StatusPendingRegistration,
		},
		{
			name:    "review complete registers the member",
			current: membership.StatusPendingRegistration,
			event:   membership.EventReviewComplete,
			want:    membership.StatusRegistered,
		},
		{
			name:    "review with amendments",
			current: membership.StatusPendingRegistration,
			event:   membership.EventReviewAmend,
			want:    membership.StatusReviewRegistration,
		},
		{
			name:    "resubmit returns to pending registration",
			current: membership.StatusReviewRegistration,
			event:   membership.EventResubmit,
			want:    membership.StatusPendingRegistration,
		},
		{
			name:    "registered is terminal",
			current: membership.StatusRegistered,
			event:   membership.EventSubmitApplication,
			wantErr: true,
		},
		{
			name:    "denied is terminal",
			current: membership.StatusDenied,
			event:   membership.EventSubmitApplication,
			wantErr: true,
		},
		{
			name:    "cannot skip application approval",
			current: membership.StatusNone,
			event:   membership.EventSubmitRegistration,
			wantErr: true,
		},
		{
			name:    "cannot approve an unsubmitted application",
			current: membership.StatusNone,
			event:   membership.EventApproveApplication,
			wantErr: true,
		},
		{
			name:    "cannot resubmit outside review",
			current: membership.StatusPendingRegistration,
			event:   membership.EventResubmit,
			wantErr: true,
		},
		{
			name:    "unknown status rejected",
			current: membership.Status("bogus"),
			event:   membership.EventSubmitApplication,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := membership.Transition(tt.current, tt.event)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got status %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// TestTransitionErrorKinds distinguishes unknown-status from bad-pair errors.
func TestTransitionErrorKinds(t *testing.T) {
	_, err := membership.Transition("nonsense", membership.EventSubmitApplication)
	if !errors.Is(err, membership.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}

	_, err = membership.Transition(membership.StatusRegistered, membership.EventResubmit)
	if !errors.Is(err, membership.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestIsTerminal(t *testing.T) {
	if !membership.StatusRegistered.IsTerminal() {
		t.Error("registered should be terminal")
	}
	if !membership.StatusDenied.IsTerminal() {
		t.Error("denied should be terminal")
	}
	if membership.StatusPendingRegistration.IsTerminal() {
		t.Error("pending registration should not be terminal")
	}
}

// TestAge covers the month/day boundary from the original age calculation.
func TestAge(t *testing.T) {
	dob := time.Date(2007, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		on   time.Time
		want int
	}{
		{"day before 18th birthday", time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), 17},
		{"on 18th birthday", time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), 18},
		{"day after 18th birthday", time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC), 18},
		{"earlier month same year", time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), 17},
		{"later month same year", time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := membership.Age(dob, tt.on); got != tt.want {
				t.Errorf("expected age %d, got %d", tt.want, got)
			}
		})
	}

	if !membership.IsMinor(dob, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)) {
		t.Error("expected minor the day before the 18th birthday")
	}
	if membership.IsMinor(dob, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)) {
		t.Error("expected adult on the 18th birthday")
	}
}

// TestEvaluateChecklist covers both review outcomes and the adult
// parent-field exemption.
func TestEvaluateChecklist(t *testing.T) {
	t.Run("all acceptable registers", func(t *testing.T) {
		outcome := membership.EvaluateChecklist(map[string]bool{
			"playerFirstName": true,
			"playerPhone":     true,
			"schoolName":      true,
		}, false)
		if outcome.Status != membership.StatusRegistered {
			t.Fatalf("expected registered, got %q", outcome.Status)
		}
		if outcome.Event != membership.EventReviewComplete {
			t.Errorf("expected review_complete, got %q", outcome.Event)
		}
		if len(outcome.Amend) != 0 {
			t.Errorf("expected empty amend set, got %v", outcome.Amend.Fields())
		}
	})

	t.Run("any unacceptable field triggers review", func(t *testing.T) {
		outcome := membership.EvaluateChecklist(map[string]bool{
			"playerFirstName": true,
			"playerPhone":     false,
			"schoolName":      false,
		}, false)
		if outcome.Status != membership.StatusReviewRegistration {
			t.Fatalf("expected review registration, got %q", outcome.Status)
		}
		got := outcome.Amend.Fields()
		want := []string{"playerPhone", "schoolName"}
		if len(got) != len(want) {
			t.Fatalf("expected amend fields %v, got %v", want, got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("expected amend field %q, got %q", want[i], got[i])
			}
		}
	})

	t.Run("parent fields pre-satisfied for adults", func(t *testing.T) {
		outcome := membership.EvaluateChecklist(map[string]bool{
			"playerFirstName": true,
			"parentFirstName": false,
			"parentalConsent": false,
		}, true)
		if outcome.Status != membership.StatusRegistered {
			t.Fatalf("expected registered for adult with only parent fields unchecked, got %q", outcome.Status)
		}
	})

	t.Run("parent fields still required for minors", func(t *testing.T) {
		outcome := membership.EvaluateChecklist(map[string]bool{
			"playerFirstName": true,
			"parentalConsent": false,
		}, false)
		if outcome.Status != membership.StatusReviewRegistration {
			t.Fatalf("expected review registration, got %q", outcome.Status)
		}
		if !outcome.Amend.Contains("parentalConsent") {
			t.Error("expected parentalConsent in amend set")
		}
	})
}

func TestAmendmentSetMissing(t *testing.T) {
	set := membership.NewAmendmentSet([]string{"playerPhone", "schoolName", "allergies"})

	missing := set.Missing([]string{"playerPhone", "allergies"})
	if len(missing) != 1 || missing[0] != "schoolName" {
		t.Errorf("expected [schoolName] missing, got %v", missing)
	}

	if missing := set.Missing([]string{"playerPhone", "schoolName", "allergies", "extra"}); len(missing) != 0 {
		t.Errorf("expected no missing fields, got %v", missing)
	}
}
