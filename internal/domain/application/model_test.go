package application_test

import (
	"testing"
	"time"

	"clubhouse/internal/domain/application"
)

var submissionDate = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func adultApplication() application.Application {
	return application.Application{
		ID:          "app-1",
		AccountID:   "acct-1",
		FirstName:   "Lwazi",
		LastName:    "Khumalo",
		DateOfBirth: time.Date(2000, 1, 20, 0, 0, 0, 0, time.UTC),
		Gender:      "Male",
		Address:     "14 Vine Road",
		Email:       "lwazi@example.com",
		Phone:       "0821234567",
	}
}

func minorApplication() application.Application {
	a := adultApplication()
	a.DateOfBirth = time.Date(2010, 9, 3, 0, 0, 0, 0, time.UTC)
	a.Guardian = application.Guardian{
		FirstName:    "Nomsa",
		LastName:     "Khumalo",
		IDNumber:     "8001015009087",
		Relationship: "Mother",
		Phone:        "0837654321",
		Consent:      true,
	}
	return a
}

func TestValidateAdult(t *testing.T) {
	a := adultApplication()
	if err := a.Validate(submissionDate); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Guardian details are irrelevant for adults.
	a.Guardian = application.Guardian{}
	if err := a.Validate(submissionDate); err != nil {
		t.Errorf("adult should not need guardian details: %v", err)
	}
}

func TestValidateRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*application.Application)
		want   error
	}{
		{"missing first name", func(a *application.Application) { a.FirstName = " " }, application.ErrEmptyFirstName},
		{"missing last name", func(a *application.Application) { a.LastName = "" }, application.ErrEmptyLastName},
		{"missing dob", func(a *application.Application) { a.DateOfBirth = time.Time{} }, application.ErrMissingDOB},
		{"missing gender", func(a *application.Application) { a.Gender = "" }, application.ErrEmptyGender},
		{"missing address", func(a *application.Application) { a.Address = "" }, application.ErrEmptyAddress},
		{"missing email", func(a *application.Application) { a.Email = "" }, application.ErrEmptyEmail},
		{"missing phone", func(a *application.Application) { a.Phone = "" }, application.ErrEmptyPhone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := adultApplication()
			tt.mutate(&a)
			if err := a.Validate(submissionDate); err != tt.want {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestValidateMinorGuardianRules(t *testing.T) {
	t.Run("complete guardian section passes", func(t *testing.T) {
		a := minorApplication()
		if err := a.Validate(submissionDate); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("guardian required for minor", func(t *testing.T) {
		a := minorApplication()
		a.Guardian = application.Guardian{}
		if err := a.Validate(submissionDate); err != application.ErrGuardianRequired {
			t.Errorf("expected ErrGuardianRequired, got %v", err)
		}
	})

	t.Run("guardian ID must be 13 digits", func(t *testing.T) {
		a := minorApplication()
		a.Guardian.IDNumber = "12345"
		if err := a.Validate(submissionDate); err != application.ErrInvalidGuardianID {
			t.Errorf("expected ErrInvalidGuardianID, got %v", err)
		}
	})

	t.Run("relationship must be from the closed set", func(t *testing.T) {
		a := minorApplication()
		a.Guardian.Relationship = "Uncle"
		if err := a.Validate(submissionDate); err != application.ErrInvalidRelationship {
			t.Errorf("expected ErrInvalidRelationship, got %v", err)
		}
	})

	t.Run("consent flag mandatory", func(t *testing.T) {
		a := minorApplication()
		a.Guardian.Consent = false
		if err := a.Validate(submissionDate); err != application.ErrConsentRequired {
			t.Errorf("expected ErrConsentRequired, got %v", err)
		}
	})
}

// TestRequiresGuardianBoundary pins the exact-birthday boundary: the
// guardian section stops being required on the 18th birthday itself.
func TestRequiresGuardianBoundary(t *testing.T) {
	a := adultApplication()
	a.DateOfBirth = time.Date(2007, 3, 15, 0, 0, 0, 0, time.UTC)

	dayBefore := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	if !a.RequiresGuardian(dayBefore) {
		t.Error("expected guardian required the day before the 18th birthday")
	}
	if got := a.Age(dayBefore); got != 17 {
		t.Errorf("expected age 17, got %d", got)
	}

	birthday := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	if a.RequiresGuardian(birthday) {
		t.Error("expected no guardian requirement on the 18th birthday")
	}
	if got := a.Age(birthday); got != 18 {
		t.Errorf("expected age 18, got %d", got)
	}
}
