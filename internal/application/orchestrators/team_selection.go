package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"clubhouse/internal/domain/fixture"
	"clubhouse/internal/domain/player"
)

// FixtureStoreForSelection defines the store interface needed by SaveSelection.
type FixtureStoreForSelection interface {
	GetByID(ctx context.Context, id string) (fixture.Fixture, error)
	SaveSelection(ctx context.Context, s fixture.Selection) error
}

// PlayerStoreForSelection verifies the selected players exist.
type PlayerStoreForSelection interface {
	GetByID(ctx context.Context, id string) (player.Player, error)
}

// SaveSelectionInput carries a manager's team selection for a fixture.
type SaveSelectionInput struct {
	FixtureID    string
	PlayerIDs    []string
	MeetingTime  string
	MeetingPlace string
	Notes        string
	UpdatedBy    string
}

// SaveSelectionDeps holds dependencies for SaveSelection.
type SaveSelectionDeps struct {
	FixtureStore FixtureStoreForSelection
	PlayerStore  PlayerStoreForSelection
	Now          func() time.Time
}

var ErrEmptySelection = errors.New("selection must include at least one player")

// ExecuteSaveSelection stores the squad picked for a fixture. Saving again
// replaces the previous selection.
// PRE: Fixture exists; every player ID resolves to a player
// POST: Selection persisted, keyed by fixture
func ExecuteSaveSelection(ctx context.Context, input SaveSelectionInput, deps SaveSelectionDeps) (fixture.Selection, error) {
	if input.FixtureID == "" {
		return fixture.Selection{}, errors.New("fixture ID is required")
	}
	if input.UpdatedBy == "" {
		return fixture.Selection{}, errors.New("updater ID is required")
	}
	if len(input.PlayerIDs) == 0 {
		return fixture.Selection{}, ErrEmptySelection
	}

	if _, err := deps.FixtureStore.GetByID(ctx, input.FixtureID); err != nil {
		return fixture.Selection{}, err
	}
	for _, pid := range input.PlayerIDs {
		if _, err := deps.PlayerStore.GetByID(ctx, pid); err != nil {
			return fixture.Selection{}, fmt.Errorf("unknown player %s: %w", pid, err)
		}
	}

	sel := fixture.Selection{
		FixtureID:    input.FixtureID,
		PlayerIDs:    input.PlayerIDs,
		MeetingTime:  input.MeetingTime,
		MeetingPlace: input.MeetingPlace,
		Notes:        input.Notes,
		UpdatedBy:    input.UpdatedBy,
		UpdatedAt:    deps.Now(),
	}

	if err := deps.FixtureStore.SaveSelection(ctx, sel); err != nil {
		return fixture.Selection{}, err
	}

	slog.Info("fixture_event", "event", "selection_saved", "fixture_id", sel.FixtureID, "players", len(sel.PlayerIDs), "updated_by", input.UpdatedBy)
	return sel, nil
}
