package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"clubhouse/internal/domain/membership"
	"clubhouse/internal/domain/registration"
)

// AmendRegistrationInput carries a member's resubmission of the fields an
// administrator flagged for correction.
type AmendRegistrationInput struct {
	AccountID   string
	Values      map[string]string
	Attachments map[string]registration.Attachment
}

// AmendRegistrationDeps holds dependencies for AmendRegistration.
type AmendRegistrationDeps struct {
	AccountStore      AccountStoreForWorkflow
	RegistrationStore RegistrationStoreForReview
	Now               func() time.Time
}

var ErrNothingToAmend = errors.New("registration is not flagged for amendment")

// ExecuteAmendRegistration applies a resubmission to a flagged registration.
// Exactly the flagged fields must be supplied; the record then returns to
// pending review and the account status follows.
// PRE: Account status is "review registration"
// POST: Flagged fields updated, amend set cleared, statuses back to pending
func ExecuteAmendRegistration(ctx context.Context, input AmendRegistrationInput, deps AmendRegistrationDeps) (registration.Registration, error) {
	if input.AccountID == "" {
		return registration.Registration{}, errors.New("account ID is required")
	}

	acct, err := deps.AccountStore.GetByID(ctx, input.AccountID)
	if err != nil {
		return registration.Registration{}, err
	}

	next, err := membership.Transition(acct.Status, membership.EventResubmit)
	if err != nil {
		return registration.Registration{}, err
	}

	reg, err := deps.RegistrationStore.GetByAccountID(ctx, input.AccountID)
	if err != nil {
		return registration.Registration{}, err
	}
	if reg.Status != registration.StatusUnderamend || len(reg.AmendFields) == 0 {
		return registration.Registration{}, ErrNothingToAmend
	}

	if err := reg.Amend(input.Values, input.Attachments); err != nil {
		return registration.Registration{}, err
	}
	reg.SubmittedAt = deps.Now()

	if err := deps.RegistrationStore.Save(ctx, reg); err != nil {
		return registration.Registration{}, err
	}

	acct.Status = next
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return registration.Registration{}, err
	}

	slog.Info("workflow_event", "event", "registration_amended", "registration_id", reg.ID, "account_id", acct.ID)
	return reg, nil
}
