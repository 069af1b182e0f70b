package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"clubhouse/internal/domain/account"
	"clubhouse/internal/domain/application"
	"clubhouse/internal/domain/membership"
)

// AccountStoreForWorkflow defines the account operations the membership
// workflow orchestrators share.
type AccountStoreForWorkflow interface {
	GetByID(ctx context.Context, id string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// ApplicationStoreForSubmit defines the store interface needed by SubmitApplication.
type ApplicationStoreForSubmit interface {
	Save(ctx context.Context, a application.Application) error
}

// SubmitApplicationInput carries the application form fields.
type SubmitApplicationInput struct {
	AccountID   string
	FirstName   string
	LastName    string
	DateOfBirth time.Time
	Gender      string
	Address     string
	Email       string
	Phone       string
	Guardian    application.Guardian
}

// SubmitApplicationDeps holds dependencies for SubmitApplication.
type SubmitApplicationDeps struct {
	AccountStore     AccountStoreForWorkflow
	ApplicationStore ApplicationStoreForSubmit
	GenerateID       func() string
	Now              func() time.Time
}

var ErrNotInWorkflow = errors.New("account does not participate in the membership workflow")

// ExecuteSubmitApplication records a membership application and moves the
// account's status to "pending application".
// PRE: Account status permits submitting an application
// POST: Application persisted as pending; account status advanced
// INVARIANT: Account status only changes via the workflow table
func ExecuteSubmitApplication(ctx context.Context, input SubmitApplicationInput, deps SubmitApplicationDeps) (application.Application, error) {
	if input.AccountID == "" {
		return application.Application{}, errors.New("account ID is required")
	}

	acct, err := deps.AccountStore.GetByID(ctx, input.AccountID)
	if err != nil {
		return application.Application{}, err
	}
	if !acct.InWorkflow() {
		return application.Application{}, ErrNotInWorkflow
	}

	next, err := membership.Transition(acct.Status, membership.EventSubmitApplication)
	if err != nil {
		return application.Application{}, err
	}

	now := deps.Now()
	app := application.Application{
		ID:          deps.GenerateID(),
		AccountID:   acct.ID,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		DateOfBirth: input.DateOfBirth,
		Gender:      input.Gender,
		Address:     input.Address,
		Email:       input.Email,
		Phone:       input.Phone,
		Guardian:    input.Guardian,
		Status:      application.StatusPending,
		SubmittedAt: now,
	}
	if err := app.Validate(now); err != nil {
		return application.Application{}, err
	}

	if err := deps.ApplicationStore.Save(ctx, app); err != nil {
		return application.Application{}, err
	}

	acct.Status = next
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return application.Application{}, err
	}

	slog.Info("workflow_event", "event", "application_submitted", "account_id", acct.ID, "application_id", app.ID, "minor", app.RequiresGuardian(now))
	return app, nil
}
