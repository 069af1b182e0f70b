package registration

import (
	"context"

	domain "clubhouse/internal/domain/registration"
)

// Store persists Registration state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Registration, error)
	GetByAccountID(ctx context.Context, accountID string) (domain.Registration, error)
	Save(ctx context.Context, value domain.Registration) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Registration, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Status string
	Limit  int
	Offset int
}
