package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	emailAdapter "clubhouse/internal/adapters/email"
	"clubhouse/internal/domain/application"
	"clubhouse/internal/domain/membership"
)

// ApplicationStoreForDecide defines the store interface needed by DecideApplication.
type ApplicationStoreForDecide interface {
	GetByID(ctx context.Context, id string) (application.Application, error)
	Save(ctx context.Context, a application.Application) error
}

// DecideApplicationInput carries an administrator's decision.
type DecideApplicationInput struct {
	ApplicationID string
	Approve       bool
	DeciderID     string
}

// DecideApplicationDeps holds dependencies for DecideApplication.
type DecideApplicationDeps struct {
	AccountStore     AccountStoreForWorkflow
	ApplicationStore ApplicationStoreForDecide
	EmailSender      emailAdapter.Sender
	FromAddress      string
	BaseAddress      string
	Now              func() time.Time
}

var ErrAlreadyDecided = errors.New("application has already been decided")

// ExecuteDecideApplication approves or declines a pending application and
// advances the applicant's membership status. The notification email is best
// effort: a delivery failure never rolls back the decision.
// PRE: Application is pending; DeciderID identifies an administrator
// POST: Application and account statuses reflect the decision
func ExecuteDecideApplication(ctx context.Context, input DecideApplicationInput, deps DecideApplicationDeps) (application.Application, error) {
	if input.ApplicationID == "" {
		return application.Application{}, errors.New("application ID is required")
	}
	if input.DeciderID == "" {
		return application.Application{}, errors.New("decider ID is required")
	}

	app, err := deps.ApplicationStore.GetByID(ctx, input.ApplicationID)
	if err != nil {
		return application.Application{}, err
	}
	if app.Status != application.StatusPending {
		return application.Application{}, ErrAlreadyDecided
	}

	acct, err := deps.AccountStore.GetByID(ctx, app.AccountID)
	if err != nil {
		return application.Application{}, err
	}

	event := membership.EventDeclineApplication
	if input.Approve {
		event = membership.EventApproveApplication
	}
	next, err := membership.Transition(acct.Status, event)
	if err != nil {
		return application.Application{}, err
	}

	if input.Approve {
		app.Status = application.StatusApproved
	} else {
		app.Status = application.StatusDenied
	}
	app.DecidedAt = deps.Now()
	app.DecidedBy = input.DeciderID

	if err := deps.ApplicationStore.Save(ctx, app); err != nil {
		return application.Application{}, err
	}

	acct.Status = next
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return application.Application{}, err
	}

	notifyDecision(ctx, app, input.Approve, deps)

	slog.Info("workflow_event", "event", "application_decided", "application_id", app.ID, "account_id", acct.ID, "approved", input.Approve, "decided_by", input.DeciderID)
	return app, nil
}

// notifyDecision emails the applicant about the outcome. Failures are logged
// and swallowed.
func notifyDecision(ctx context.Context, app application.Application, approved bool, deps DecideApplicationDeps) {
	if deps.EmailSender == nil || app.Email == "" {
		return
	}

	subject := "Your membership application"
	body := fmt.Sprintf("<p>Hi %s,</p><p>Unfortunately your membership application was not successful this time.</p>", app.FirstName)
	if approved {
		subject = "Your membership application was approved"
		body = fmt.Sprintf(
			"<p>Hi %s,</p><p>Good news: your membership application has been approved. "+
				"Please log in at <a href=%q>%s</a> and complete the registration form to finish joining the club.</p>",
			app.FirstName, deps.BaseAddress, deps.BaseAddress)
	}

	_, err := deps.EmailSender.Send(ctx, emailAdapter.SendRequest{
		To:      []string{app.Email},
		From:    deps.FromAddress,
		Subject: subject,
		HTML:    body,
	})
	if err != nil {
		slog.Warn("decision_email_failed", "application_id", app.ID, "error", err)
	}
}
