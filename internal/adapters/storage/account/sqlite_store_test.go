package account

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"clubhouse/internal/adapters/storage"
	domain "clubhouse/internal/domain/account"
	"clubhouse/internal/domain/membership"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("failed to init schema: %v", err)
	}
	return NewSQLiteStore(db)
}

func testAccount(id string) domain.Account {
	return domain.Account{
		ID:        id,
		FirstName: "Thabo",
		LastName:  "Mokoena",
		Email:     id + "@example.com",
		Phone:     "0821234567",
		Role:      domain.RoleUser,
		Status:    membership.StatusNone,
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSQLiteStore_SaveAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	acct := testAccount("acct-1")
	if err := store.Save(ctx, acct); err != nil {
		t.Fatalf("save: %v", err)
	}

	byID, err := store.GetByID(ctx, "acct-1")
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if byID.Email != acct.Email || byID.Role != domain.RoleUser || byID.Status != membership.StatusNone {
		t.Errorf("round trip mismatch: %+v", byID)
	}
	if !byID.CreatedAt.Equal(acct.CreatedAt) {
		t.Errorf("expected created_at %v, got %v", acct.CreatedAt, byID.CreatedAt)
	}

	byEmail, err := store.GetByEmail(ctx, acct.Email)
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if byEmail.ID != "acct-1" {
		t.Errorf("expected acct-1, got %s", byEmail.ID)
	}

	if _, err := store.GetByID(ctx, "missing"); err == nil {
		t.Error("expected error for missing account")
	}
}

func TestSQLiteStore_SaveUpserts(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	acct := testAccount("acct-1")
	if err := store.Save(ctx, acct); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Advance the workflow status and lock the account
	acct.Status = membership.StatusPendingApplication
	acct.FailedLogins = 5
	acct.LockedUntil = time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC)
	if err := store.Save(ctx, acct); err != nil {
		t.Fatalf("second save: %v", err)
	}

	saved, err := store.GetByID(ctx, "acct-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if saved.Status != membership.StatusPendingApplication {
		t.Errorf("expected updated status, got %q", saved.Status)
	}
	if saved.FailedLogins != 5 || saved.LockedUntil.IsZero() {
		t.Errorf("expected lock state to persist, got %+v", saved)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected one row after upsert, got %d", count)
	}
}

func TestSQLiteStore_ListByRole(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	user := testAccount("acct-1")
	admin := testAccount("acct-2")
	admin.Role = domain.RoleAdmin
	admin.Status = ""
	for _, a := range []domain.Account{user, admin} {
		if err := store.Save(ctx, a); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	admins, err := store.List(ctx, ListFilter{Role: string(domain.RoleAdmin)})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(admins) != 1 || admins[0].ID != "acct-2" {
		t.Errorf("expected only the admin, got %v", admins)
	}

	all, err := store.List(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected both accounts, got %d", len(all))
	}
}

func TestSQLiteStore_Delete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, testAccount("acct-1")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(ctx, "acct-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetByID(ctx, "acct-1"); err == nil {
		t.Error("expected account gone after delete")
	}
}
