package projections

import (
	"context"
	"time"

	domainRegistration "clubhouse/internal/domain/registration"
)

// GetRegistrationReviewQuery carries query parameters. Exactly one of
// RegistrationID (admin view) or AccountID (member's own record) is set.
type GetRegistrationReviewQuery struct {
	RegistrationID string
	AccountID      string
	Now            time.Time
}

// GetRegistrationReviewResult carries the review screen's data: the record,
// the checklist the reviewer works through, and any fields already flagged.
type GetRegistrationReviewResult struct {
	Registration    domainRegistration.Registration
	ChecklistFields []string
	AmendFields     []string
	Adult           bool
}

// GetRegistrationReviewDeps holds dependencies for GetRegistrationReview.
type GetRegistrationReviewDeps struct {
	RegistrationStore RegistrationStore
}

// QueryGetRegistrationReview retrieves a registration for the admin review
// screen or the member's amendment form.
// PRE: one of RegistrationID or AccountID is set
// POST: AmendFields is sorted and non-empty only for flagged records
func QueryGetRegistrationReview(ctx context.Context, query GetRegistrationReviewQuery, deps GetRegistrationReviewDeps) (GetRegistrationReviewResult, error) {
	var reg domainRegistration.Registration
	var err error
	if query.RegistrationID != "" {
		reg, err = deps.RegistrationStore.GetByID(ctx, query.RegistrationID)
	} else {
		reg, err = deps.RegistrationStore.GetByAccountID(ctx, query.AccountID)
	}
	if err != nil {
		return GetRegistrationReviewResult{}, err
	}

	return GetRegistrationReviewResult{
		Registration:    reg,
		ChecklistFields: domainRegistration.ChecklistFields(),
		AmendFields:     reg.AmendFields.Fields(),
		Adult:           reg.IsAdult(query.Now),
	}, nil
}
