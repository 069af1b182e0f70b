package projections

import (
	"context"

	storageAccount "clubhouse/internal/adapters/storage/account"
	storageApplication "clubhouse/internal/adapters/storage/application"
	storageFixture "clubhouse/internal/adapters/storage/fixture"
	storageNotice "clubhouse/internal/adapters/storage/notice"
	storageRegistration "clubhouse/internal/adapters/storage/registration"
	domainAccount "clubhouse/internal/domain/account"
	domainApplication "clubhouse/internal/domain/application"
	domainFixture "clubhouse/internal/domain/fixture"
	domainNotice "clubhouse/internal/domain/notice"
	domainPlayer "clubhouse/internal/domain/player"
	domainRegistration "clubhouse/internal/domain/registration"
)

// AccountStore interface for account queries.
type AccountStore interface {
	GetByID(ctx context.Context, id string) (domainAccount.Account, error)
	List(ctx context.Context, filter storageAccount.ListFilter) ([]domainAccount.Account, error)
}

// ApplicationStore interface for application queries.
type ApplicationStore interface {
	GetByID(ctx context.Context, id string) (domainApplication.Application, error)
	GetByAccountID(ctx context.Context, accountID string) (domainApplication.Application, error)
	List(ctx context.Context, filter storageApplication.ListFilter) ([]domainApplication.Application, error)
}

// RegistrationStore interface for registration queries.
type RegistrationStore interface {
	GetByID(ctx context.Context, id string) (domainRegistration.Registration, error)
	GetByAccountID(ctx context.Context, accountID string) (domainRegistration.Registration, error)
	List(ctx context.Context, filter storageRegistration.ListFilter) ([]domainRegistration.Registration, error)
}

// PlayerStore interface for player queries.
type PlayerStore interface {
	GetByID(ctx context.Context, id string) (domainPlayer.Player, error)
	GetByAccountID(ctx context.Context, accountID string) (domainPlayer.Player, error)
}

// FixtureStore interface for fixture, result and selection queries.
type FixtureStore interface {
	GetByID(ctx context.Context, id string) (domainFixture.Fixture, error)
	List(ctx context.Context, filter storageFixture.ListFilter) ([]domainFixture.Fixture, error)
	ListResults(ctx context.Context, filter storageFixture.ListFilter) ([]domainFixture.Result, error)
	GetSelection(ctx context.Context, fixtureID string) (domainFixture.Selection, error)
	ListSelections(ctx context.Context) ([]domainFixture.Selection, error)
}

// NoticeStore interface for notice queries.
type NoticeStore interface {
	List(ctx context.Context, filter storageNotice.ListFilter) ([]domainNotice.Notice, error)
}
