package projections

import (
	"context"
	"time"

	storageApplication "clubhouse/internal/adapters/storage/application"
	storageRegistration "clubhouse/internal/adapters/storage/registration"
	domainApplication "clubhouse/internal/domain/application"
	domainRegistration "clubhouse/internal/domain/registration"
)

// PendingApplication is one row of the admin application queue.
type PendingApplication struct {
	ID          string
	Name        string
	Email       string
	Minor       bool
	SubmittedAt time.Time
}

// PendingRegistration is one row of the admin registration queue.
type PendingRegistration struct {
	ID          string
	Name        string
	Email       string
	Adult       bool
	SubmittedAt time.Time
}

// GetReviewQueueQuery carries query parameters.
type GetReviewQueueQuery struct {
	Now time.Time
}

// GetReviewQueueResult carries everything waiting on an administrator.
type GetReviewQueueResult struct {
	Applications  []PendingApplication
	Registrations []PendingRegistration
}

// GetReviewQueueDeps holds dependencies for GetReviewQueue.
type GetReviewQueueDeps struct {
	ApplicationStore  ApplicationStore
	RegistrationStore RegistrationStore
}

// QueryGetReviewQueue retrieves the admin dashboard's work queues: pending
// applications awaiting a decision and pending registrations awaiting a
// checklist review.
// POST: both queues are newest-first, as the stores return them
func QueryGetReviewQueue(ctx context.Context, query GetReviewQueueQuery, deps GetReviewQueueDeps) (GetReviewQueueResult, error) {
	apps, err := deps.ApplicationStore.List(ctx, storageApplication.ListFilter{
		Status: domainApplication.StatusPending,
	})
	if err != nil {
		return GetReviewQueueResult{}, err
	}
	regs, err := deps.RegistrationStore.List(ctx, storageRegistration.ListFilter{
		Status: domainRegistration.StatusPending,
	})
	if err != nil {
		return GetReviewQueueResult{}, err
	}

	result := GetReviewQueueResult{}
	for _, a := range apps {
		result.Applications = append(result.Applications, PendingApplication{
			ID:          a.ID,
			Name:        a.FirstName + " " + a.LastName,
			Email:       a.Email,
			Minor:       a.RequiresGuardian(query.Now),
			SubmittedAt: a.SubmittedAt,
		})
	}
	for _, r := range regs {
		result.Registrations = append(result.Registrations, PendingRegistration{
			ID:          r.ID,
			Name:        r.FirstName + " " + r.LastName,
			Email:       r.Email,
			Adult:       r.IsAdult(query.Now),
			SubmittedAt: r.SubmittedAt,
		})
	}
	return result, nil
}
