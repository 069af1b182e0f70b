package fixture

import (
	"context"

	domain "clubhouse/internal/domain/fixture"
)

// Store persists Fixture, Result and Selection state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Fixture, error)
	Save(ctx context.Context, value domain.Fixture) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Fixture, error)

	GetResult(ctx context.Context, fixtureID string) (domain.Result, error)
	SaveResult(ctx context.Context, value domain.Result) error
	ListResults(ctx context.Context, filter ListFilter) ([]domain.Result, error)

	GetSelection(ctx context.Context, fixtureID string) (domain.Selection, error)
	SaveSelection(ctx context.Context, value domain.Selection) error
	ListSelections(ctx context.Context) ([]domain.Selection, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	AgeGroup string
	Limit    int
	Offset   int
}
