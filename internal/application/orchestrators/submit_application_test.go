package orchestrators

import (
	"context"
	"errors"
	"testing"

	"clubhouse/internal/domain/account"
	"clubhouse/internal/domain/application"
	"clubhouse/internal/domain/membership"
)

func validApplicationInput(accountID string) SubmitApplicationInput {
	return SubmitApplicationInput{
		AccountID:   accountID,
		FirstName:   "Thabo",
		LastName:    "Mokoena",
		DateOfBirth: adultDOB,
		Gender:      "male",
		Address:     "12 Main Road, Gqeberha",
		Email:       "thabo@example.com",
		Phone:       "0821234567",
	}
}

// TestExecuteSubmitApplication_Adult tests a valid adult submission.
func TestExecuteSubmitApplication_Adult(t *testing.T) {
	accounts := newMockAccountStore()
	seedAccount(t, accounts, account.RoleUser, membership.StatusNone)
	apps := newMockApplicationStore()

	app, err := ExecuteSubmitApplication(context.Background(), validApplicationInput("acct-1"), SubmitApplicationDeps{
		AccountStore:     accounts,
		ApplicationStore: apps,
		GenerateID:       fixedID,
		Now:              fixedNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.Status != application.StatusPending {
		t.Errorf("expected pending application, got %q", app.Status)
	}
	if accounts.accounts["acct-1"].Status != membership.StatusPendingApplication {
		t.Errorf("expected account status advanced, got %q", accounts.accounts["acct-1"].Status)
	}
	if _, ok := apps.applications["test-id-001"]; !ok {
		t.Error("expected application to be persisted")
	}
}

// TestExecuteSubmitApplication_MinorNeedsGuardian tests the under-18 rule.
func TestExecuteSubmitApplication_MinorNeedsGuardian(t *testing.T) {
	accounts := newMockAccountStore()
	seedAccount(t, accounts, account.RoleUser, membership.StatusNone)
	apps := newMockApplicationStore()
	deps := SubmitApplicationDeps{
		AccountStore:     accounts,
		ApplicationStore: apps,
		GenerateID:       fixedID,
		Now:              fixedNow,
	}

	input := validApplicationInput("acct-1")
	input.DateOfBirth = minorDOB

	if _, err := ExecuteSubmitApplication(context.Background(), input, deps); !errors.Is(err, application.ErrGuardianRequired) {
		t.Fatalf("expected ErrGuardianRequired, got %v", err)
	}
	if accounts.accounts["acct-1"].Status != membership.StatusNone {
		t.Error("expected account status unchanged on validation failure")
	}

	input.Guardian = application.Guardian{
		FirstName:    "Lerato",
		LastName:     "Mokoena",
		IDNumber:     "8001015009087",
		Relationship: "Mother",
		Phone:        "0837654321",
		Consent:      true,
	}
	if _, err := ExecuteSubmitApplication(context.Background(), input, deps); err != nil {
		t.Fatalf("unexpected error with guardian: %v", err)
	}
}

// TestExecuteSubmitApplication_WrongStatus tests the workflow guard.
func TestExecuteSubmitApplication_WrongStatus(t *testing.T) {
	accounts := newMockAccountStore()
	seedAccount(t, accounts, account.RoleUser, membership.StatusPendingApplication)
	apps := newMockApplicationStore()

	_, err := ExecuteSubmitApplication(context.Background(), validApplicationInput("acct-1"), SubmitApplicationDeps{
		AccountStore:     accounts,
		ApplicationStore: apps,
		GenerateID:       fixedID,
		Now:              fixedNow,
	})
	if !errors.Is(err, membership.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

// TestExecuteSubmitApplication_AdminRejected tests that staff accounts cannot apply.
func TestExecuteSubmitApplication_AdminRejected(t *testing.T) {
	accounts := newMockAccountStore()
	seedAccount(t, accounts, account.RoleAdmin, "")
	apps := newMockApplicationStore()

	_, err := ExecuteSubmitApplication(context.Background(), validApplicationInput("acct-1"), SubmitApplicationDeps{
		AccountStore:     accounts,
		ApplicationStore: apps,
		GenerateID:       fixedID,
		Now:              fixedNow,
	})
	if err != ErrNotInWorkflow {
		t.Errorf("expected ErrNotInWorkflow, got %v", err)
	}
}
