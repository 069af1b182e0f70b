package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"clubhouse/internal/domain/player"
	"clubhouse/internal/domain/registration"
)

// RegistrationStoreForPlayer resolves the registration backing a new player.
type RegistrationStoreForPlayer interface {
	GetByID(ctx context.Context, id string) (registration.Registration, error)
}

// PlayerStoreForCreate defines the store interface needed by CreatePlayer.
type PlayerStoreForCreate interface {
	GetByAccountID(ctx context.Context, accountID string) (player.Player, error)
	Save(ctx context.Context, p player.Player) error
}

// CreatePlayerInput carries input for the create-player step.
type CreatePlayerInput struct {
	RegistrationID     string
	AgeGroup           string // optional; derived from date of birth when empty
	RegistrationNumber string
	PhotoURL           string
	CreatedBy          string
}

// CreatePlayerDeps holds dependencies for CreatePlayer.
type CreatePlayerDeps struct {
	AccountStore      AccountStoreForWorkflow
	RegistrationStore RegistrationStoreForPlayer
	PlayerStore       PlayerStoreForCreate
	GenerateID        func() string
	Now               func() time.Time
}

var (
	ErrRegistrationNotComplete = errors.New("player can only be created from a completed registration")
	ErrPlayerExists            = errors.New("a player already exists for this account")
)

// ExecuteCreatePlayer turns a completed registration into a player record and
// advances the account from user to player.
// PRE: Registration status is "registered"; account role is user
// POST: Player persisted; account role is player
func ExecuteCreatePlayer(ctx context.Context, input CreatePlayerInput, deps CreatePlayerDeps) (player.Player, error) {
	if input.RegistrationID == "" {
		return player.Player{}, errors.New("registration ID is required")
	}

	reg, err := deps.RegistrationStore.GetByID(ctx, input.RegistrationID)
	if err != nil {
		return player.Player{}, err
	}
	if reg.Status != registration.StatusComplete {
		return player.Player{}, ErrRegistrationNotComplete
	}

	if _, err := deps.PlayerStore.GetByAccountID(ctx, reg.AccountID); err == nil {
		return player.Player{}, ErrPlayerExists
	}

	acct, err := deps.AccountStore.GetByID(ctx, reg.AccountID)
	if err != nil {
		return player.Player{}, err
	}
	if err := acct.PromoteToPlayer(); err != nil {
		return player.Player{}, err
	}

	now := deps.Now()
	ageGroup := input.AgeGroup
	if ageGroup == "" {
		ageGroup = player.AgeGroupFor(reg.DateOfBirth, now)
	}
	regNumber := input.RegistrationNumber
	if regNumber == "" {
		regNumber = fmt.Sprintf("%d-%s", now.Year(), reg.ID[:8])
	}

	pl := player.Player{
		ID:                 deps.GenerateID(),
		AccountID:          reg.AccountID,
		RegistrationID:     reg.ID,
		FirstName:          reg.FirstName,
		LastName:           reg.LastName,
		DateOfBirth:        reg.DateOfBirth,
		PhotoURL:           input.PhotoURL,
		RegistrationNumber: regNumber,
		AgeGroup:           ageGroup,
		ExpiresAt:          time.Date(now.Year()+1, time.January, 31, 0, 0, 0, 0, now.Location()),
		CreatedAt:          now,
	}
	if err := pl.Validate(); err != nil {
		return player.Player{}, err
	}

	if err := deps.PlayerStore.Save(ctx, pl); err != nil {
		return player.Player{}, err
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return player.Player{}, err
	}

	slog.Info("workflow_event", "event", "player_created", "player_id", pl.ID, "account_id", acct.ID, "age_group", pl.AgeGroup, "created_by", input.CreatedBy)
	return pl, nil
}
