package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"clubhouse/internal/domain/account"
	"clubhouse/internal/domain/fixture"
	"clubhouse/internal/domain/membership"
	"clubhouse/internal/domain/player"
)

// AccountStoreForLogin defines the store interface needed by Login.
type AccountStoreForLogin interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// PlayerStoreForLogin resolves the player record for a player account.
type PlayerStoreForLogin interface {
	GetByAccountID(ctx context.Context, accountID string) (player.Player, error)
}

// SelectionStoreForLogin lists stored team selections.
type SelectionStoreForLogin interface {
	ListSelections(ctx context.Context) ([]fixture.Selection, error)
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult carries the result of a successful login, shaped for session
// creation.
type LoginResult struct {
	AccountID     string
	Email         string
	FirstName     string
	Role          account.Role
	Status        membership.Status
	SelectionFlag bool
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	AccountStore   AccountStoreForLogin
	PlayerStore    PlayerStoreForLogin
	SelectionStore SelectionStoreForLogin
}

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountLocked      = errors.New("account is locked due to too many failed attempts")
)

// ExecuteLogin validates credentials and returns account info for session creation.
// PRE: Valid email and password provided
// POST: Returns account info on success, records failed login on failure
// INVARIANT: Account must not be locked
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	if input.Email == "" || input.Password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	acct, err := deps.AccountStore.GetByEmail(ctx, input.Email)
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "not_found")
		return LoginResult{}, ErrInvalidCredentials
	}

	// Check if account is locked
	if acct.IsLocked() {
		slog.Info("auth_event", "event", "login_blocked", "email", input.Email, "reason", "locked")
		return LoginResult{}, ErrAccountLocked
	}

	// Verify password
	if err := acct.CheckPassword(input.Password); err != nil {
		acct.RecordFailedLogin()
		_ = deps.AccountStore.Save(ctx, acct)
		slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "wrong_password", "failed_logins", acct.FailedLogins)
		return LoginResult{}, ErrInvalidCredentials
	}

	// Successful login, reset failed attempts
	acct.ResetFailedLogins()
	_ = deps.AccountStore.Save(ctx, acct)

	result := LoginResult{
		AccountID: acct.ID,
		Email:     acct.Email,
		FirstName: acct.FirstName,
		Role:      acct.Role,
		Status:    acct.Status,
	}

	// Players additionally get a selection flag so the navbar can surface the
	// match briefing link. Lookup failures must never block a login.
	if acct.Role == account.RolePlayer {
		result.SelectionFlag = lookupSelectionFlag(ctx, acct.ID, deps)
	}

	slog.Info("auth_event", "event", "login_success", "email", input.Email, "role", acct.Role, "status", acct.Status)
	return result, nil
}

// lookupSelectionFlag reports whether the player behind the account appears
// in any stored team selection. Errors are logged and swallowed.
func lookupSelectionFlag(ctx context.Context, accountID string, deps LoginDeps) bool {
	if deps.PlayerStore == nil || deps.SelectionStore == nil {
		return false
	}
	pl, err := deps.PlayerStore.GetByAccountID(ctx, accountID)
	if err != nil {
		slog.Warn("selection_lookup_failed", "account_id", accountID, "error", err)
		return false
	}
	selections, err := deps.SelectionStore.ListSelections(ctx)
	if err != nil {
		slog.Warn("selection_lookup_failed", "account_id", accountID, "error", err)
		return false
	}
	for _, sel := range selections {
		if sel.Includes(pl.ID) {
			return true
		}
	}
	return false
}
