package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	emailAdapter "clubhouse/internal/adapters/email"
	"clubhouse/internal/domain/membership"
	"clubhouse/internal/domain/registration"
)

// RegistrationStoreForReview defines the store interface needed by the review
// and amend orchestrators.
type RegistrationStoreForReview interface {
	GetByID(ctx context.Context, id string) (registration.Registration, error)
	GetByAccountID(ctx context.Context, accountID string) (registration.Registration, error)
	Save(ctx context.Context, r registration.Registration) error
}

// ReviewRegistrationInput carries an administrator's completed checklist.
type ReviewRegistrationInput struct {
	RegistrationID string
	Checklist      map[string]bool
	ReviewerID     string
}

// ReviewRegistrationDeps holds dependencies for ReviewRegistration.
type ReviewRegistrationDeps struct {
	AccountStore      AccountStoreForWorkflow
	RegistrationStore RegistrationStoreForReview
	EmailSender       emailAdapter.Sender
	FromAddress       string
	BaseAddress       string
	Now               func() time.Time
}

var (
	ErrNotPendingReview = errors.New("registration is not awaiting review")
	ErrUnknownChecklist = errors.New("checklist contains an unknown field")
)

// ExecuteReviewRegistration applies an administrator's checklist to a pending
// registration. All fields acceptable registers the member; any unacceptable
// field sends the registration back for amendment with exactly those fields
// listed. Parent fields count as acceptable for adult applicants.
// PRE: Registration status is "pending registration"
// POST: Registration and account statuses reflect the checklist outcome
func ExecuteReviewRegistration(ctx context.Context, input ReviewRegistrationInput, deps ReviewRegistrationDeps) (registration.Registration, error) {
	if input.RegistrationID == "" {
		return registration.Registration{}, errors.New("registration ID is required")
	}
	if input.ReviewerID == "" {
		return registration.Registration{}, errors.New("reviewer ID is required")
	}
	for field := range input.Checklist {
		if !registration.IsChecklistField(field) {
			return registration.Registration{}, fmt.Errorf("%w: %s", ErrUnknownChecklist, field)
		}
	}

	reg, err := deps.RegistrationStore.GetByID(ctx, input.RegistrationID)
	if err != nil {
		return registration.Registration{}, err
	}
	if reg.Status != registration.StatusPending {
		return registration.Registration{}, ErrNotPendingReview
	}

	acct, err := deps.AccountStore.GetByID(ctx, reg.AccountID)
	if err != nil {
		return registration.Registration{}, err
	}

	now := deps.Now()
	outcome := membership.EvaluateChecklist(input.Checklist, reg.IsAdult(now))

	next, err := membership.Transition(acct.Status, outcome.Event)
	if err != nil {
		return registration.Registration{}, err
	}

	if outcome.Event == membership.EventReviewComplete {
		reg.Status = registration.StatusComplete
	} else {
		if err := reg.FlagForAmendment(outcome.Amend); err != nil {
			return registration.Registration{}, err
		}
	}
	reg.ReviewedAt = now
	reg.ReviewedBy = input.ReviewerID

	if err := deps.RegistrationStore.Save(ctx, reg); err != nil {
		return registration.Registration{}, err
	}

	acct.Status = next
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return registration.Registration{}, err
	}

	notifyReview(ctx, reg, outcome, deps)

	slog.Info("workflow_event", "event", "registration_reviewed", "registration_id", reg.ID, "account_id", acct.ID,
		"outcome", outcome.Status, "amend_fields", len(outcome.Amend), "reviewed_by", input.ReviewerID)
	return reg, nil
}

// notifyReview emails the member about the review outcome. Failures are
// logged and swallowed.
func notifyReview(ctx context.Context, reg registration.Registration, outcome membership.ReviewOutcome, deps ReviewRegistrationDeps) {
	if deps.EmailSender == nil || reg.Email == "" {
		return
	}

	var subject, body string
	if outcome.Event == membership.EventReviewComplete {
		subject = "Welcome to the club"
		body = fmt.Sprintf("<p>Hi %s,</p><p>Your registration has been accepted. You are now a registered member of the club.</p>", reg.FirstName)
	} else {
		subject = "Your registration needs corrections"
		body = fmt.Sprintf(
			"<p>Hi %s,</p><p>Your registration needs corrections to the following fields before it can be accepted:</p><p>%s</p>"+
				"<p>Please log in at <a href=%q>%s</a> to resubmit them.</p>",
			reg.FirstName, strings.Join(outcome.Amend.Fields(), ", "), deps.BaseAddress, deps.BaseAddress)
	}

	_, err := deps.EmailSender.Send(ctx, emailAdapter.SendRequest{
		To:      []string{reg.Email},
		From:    deps.FromAddress,
		Subject: subject,
		HTML:    body,
	})
	if err != nil {
		slog.Warn("review_email_failed", "registration_id", reg.ID, "error", err)
	}
}
