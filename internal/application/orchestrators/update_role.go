package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"clubhouse/internal/domain/account"
)

// UpdateRoleInput carries an administrator's role change request.
type UpdateRoleInput struct {
	AccountID string
	NewRole   account.Role
	UpdatedBy string
}

// UpdateRoleDeps holds dependencies for UpdateRole.
type UpdateRoleDeps struct {
	AccountStore AccountStoreForWorkflow
}

var ErrUnsupportedRoleChange = errors.New("only promotion from user to manager is supported here")

// ExecuteUpdateRole promotes a user account to manager. Player promotion goes
// through the create-player step instead, so it is rejected here.
// PRE: Target account has the user role
// POST: Account role is manager, membership status cleared
func ExecuteUpdateRole(ctx context.Context, input UpdateRoleInput, deps UpdateRoleDeps) (account.Account, error) {
	if input.AccountID == "" {
		return account.Account{}, errors.New("account ID is required")
	}
	if input.UpdatedBy == "" {
		return account.Account{}, errors.New("updater ID is required")
	}
	if input.NewRole != account.RoleManager {
		return account.Account{}, ErrUnsupportedRoleChange
	}

	acct, err := deps.AccountStore.GetByID(ctx, input.AccountID)
	if err != nil {
		return account.Account{}, err
	}
	if err := acct.PromoteToManager(); err != nil {
		return account.Account{}, err
	}

	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return account.Account{}, err
	}

	slog.Info("auth_event", "event", "role_updated", "account_id", acct.ID, "new_role", acct.Role, "updated_by", input.UpdatedBy)
	return acct, nil
}
