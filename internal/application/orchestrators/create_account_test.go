package orchestrators

import (
	"context"
	"testing"

	"clubhouse/internal/domain/account"
	"clubhouse/internal/domain/membership"
)

// TestExecuteCreateAccount_Valid tests signing up with valid input.
func TestExecuteCreateAccount_Valid(t *testing.T) {
	store := newMockAccountStore()
	id, err := ExecuteCreateAccount(context.Background(), CreateAccountInput{
		FirstName: "Thabo",
		LastName:  "Mokoena",
		Email:     "thabo@example.com",
		Phone:     "0821234567",
		Password:  "correct-horse-battery",
	}, CreateAccountDeps{
		AccountStore: store,
		GenerateID:   fixedID,
		Now:          fixedNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "test-id-001" {
		t.Errorf("expected id=test-id-001, got %s", id)
	}
	acct := store.accounts[id]
	if acct.Role != account.RoleUser {
		t.Errorf("expected role=user, got %s", acct.Role)
	}
	if acct.Status != membership.StatusNone {
		t.Errorf("expected status=none, got %q", acct.Status)
	}
	if acct.PasswordHash == "" {
		t.Error("expected password to be hashed")
	}
	if err := acct.CheckPassword("correct-horse-battery"); err != nil {
		t.Errorf("expected stored hash to verify: %v", err)
	}
}

// TestExecuteCreateAccount_DuplicateEmail tests that a second signup with the
// same email is rejected.
func TestExecuteCreateAccount_DuplicateEmail(t *testing.T) {
	store := newMockAccountStore()
	input := CreateAccountInput{
		FirstName: "Thabo",
		LastName:  "Mokoena",
		Email:     "thabo@example.com",
		Password:  "correct-horse-battery",
	}
	deps := CreateAccountDeps{AccountStore: store, GenerateID: seqID(), Now: fixedNow}

	if _, err := ExecuteCreateAccount(context.Background(), input, deps); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ExecuteCreateAccount(context.Background(), input, deps); err != ErrEmailAlreadyExists {
		t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

// TestExecuteCreateAccount_ShortPassword tests the 12-character minimum.
func TestExecuteCreateAccount_ShortPassword(t *testing.T) {
	store := newMockAccountStore()
	_, err := ExecuteCreateAccount(context.Background(), CreateAccountInput{
		FirstName: "Thabo",
		LastName:  "Mokoena",
		Email:     "thabo@example.com",
		Password:  "short",
	}, CreateAccountDeps{AccountStore: store, GenerateID: fixedID, Now: fixedNow})
	if err != account.ErrPasswordTooShort {
		t.Errorf("expected ErrPasswordTooShort, got %v", err)
	}
	if len(store.accounts) != 0 {
		t.Error("expected no account to be persisted")
	}
}

// TestExecuteSeedAdmin tests that seeding only runs on an empty store.
func TestExecuteSeedAdmin(t *testing.T) {
	store := newMockAccountStore()
	deps := CreateAccountDeps{AccountStore: store, GenerateID: seqID(), Now: fixedNow}

	if err := ExecuteSeedAdmin(context.Background(), deps, "admin@club.example", "admin-password-123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.accounts) != 1 {
		t.Fatalf("expected 1 account, got %d", len(store.accounts))
	}
	acct := store.accounts["id-1"]
	if acct.Role != account.RoleAdmin {
		t.Errorf("expected role=admin, got %s", acct.Role)
	}
	if acct.Status != "" {
		t.Errorf("expected empty status for admin, got %q", acct.Status)
	}

	// Second run is a no-op
	if err := ExecuteSeedAdmin(context.Background(), deps, "other@club.example", "admin-password-123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.accounts) != 1 {
		t.Errorf("expected seeding to skip a populated store, got %d accounts", len(store.accounts))
	}
}
