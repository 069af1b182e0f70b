package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"clubhouse/internal/domain/membership"
	"clubhouse/internal/domain/registration"
)

// RegistrationStoreForSubmit defines the store interface needed by SubmitRegistration.
type RegistrationStoreForSubmit interface {
	Save(ctx context.Context, r registration.Registration) error
}

// SubmitRegistrationInput carries the full registration form. The Registration
// value is built by the handler from form fields and saved attachments; ID,
// Status and SubmittedAt are assigned here.
type SubmitRegistrationInput struct {
	AccountID    string
	Registration registration.Registration
}

// SubmitRegistrationDeps holds dependencies for SubmitRegistration.
type SubmitRegistrationDeps struct {
	AccountStore      AccountStoreForWorkflow
	RegistrationStore RegistrationStoreForSubmit
	GenerateID        func() string
	Now               func() time.Time
}

// ExecuteSubmitRegistration records a membership registration and moves the
// account's status to "pending registration".
// PRE: Account status is "approved application"
// POST: Registration persisted as pending; account status advanced
// INVARIANT: Account status only changes via the workflow table
func ExecuteSubmitRegistration(ctx context.Context, input SubmitRegistrationInput, deps SubmitRegistrationDeps) (registration.Registration, error) {
	if input.AccountID == "" {
		return registration.Registration{}, errors.New("account ID is required")
	}

	acct, err := deps.AccountStore.GetByID(ctx, input.AccountID)
	if err != nil {
		return registration.Registration{}, err
	}
	if !acct.InWorkflow() {
		return registration.Registration{}, ErrNotInWorkflow
	}

	next, err := membership.Transition(acct.Status, membership.EventSubmitRegistration)
	if err != nil {
		return registration.Registration{}, err
	}

	now := deps.Now()
	reg := input.Registration
	reg.ID = deps.GenerateID()
	reg.AccountID = acct.ID
	reg.Status = registration.StatusPending
	reg.SubmittedAt = now
	reg.AmendFields = nil

	if err := reg.Validate(now); err != nil {
		return registration.Registration{}, err
	}

	if err := deps.RegistrationStore.Save(ctx, reg); err != nil {
		return registration.Registration{}, err
	}

	acct.Status = next
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return registration.Registration{}, err
	}

	slog.Info("workflow_event", "event", "registration_submitted", "account_id", acct.ID, "registration_id", reg.ID, "adult", reg.IsAdult(now))
	return reg, nil
}
