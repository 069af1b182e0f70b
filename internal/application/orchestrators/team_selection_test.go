package orchestrators

import (
	"context"
	"errors"
	"testing"

	"clubhouse/internal/domain/fixture"
	"clubhouse/internal/domain/player"
)

func TestExecuteSaveSelection(t *testing.T) {
	ctx := context.Background()

	setup := func() (*mockFixtureStore, *mockPlayerStore, SaveSelectionDeps) {
		fixtures := newMockFixtureStore()
		players := newMockPlayerStore()
		fixtures.fixtures["fix-1"] = fixture.Fixture{ID: "fix-1", AgeGroup: "u13"}
		players.players["p-1"] = player.Player{ID: "p-1", AgeGroup: "u13"}
		players.players["p-2"] = player.Player{ID: "p-2", AgeGroup: "u13"}
		return fixtures, players, SaveSelectionDeps{
			FixtureStore: fixtures,
			PlayerStore:  players,
			Now:          fixedNow,
		}
	}

	t.Run("saves selection", func(t *testing.T) {
		fixtures, _, deps := setup()

		sel, err := ExecuteSaveSelection(ctx, SaveSelectionInput{
			FixtureID:    "fix-1",
			PlayerIDs:    []string{"p-1", "p-2"},
			MeetingTime:  "08:30",
			MeetingPlace: "Clubhouse car park",
			Notes:        "Bring both kits",
			UpdatedBy:    "mgr-1",
		}, deps)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sel.PlayerIDs) != 2 || !sel.UpdatedAt.Equal(fixedTime) {
			t.Errorf("unexpected selection: %+v", sel)
		}

		stored, ok := fixtures.selections["fix-1"]
		if !ok {
			t.Fatal("selection not persisted")
		}
		if stored.MeetingPlace != "Clubhouse car park" || stored.UpdatedBy != "mgr-1" {
			t.Errorf("stored selection mismatch: %+v", stored)
		}
	})

	t.Run("resaving replaces the squad", func(t *testing.T) {
		fixtures, _, deps := setup()

		input := SaveSelectionInput{
			FixtureID: "fix-1",
			PlayerIDs: []string{"p-1", "p-2"},
			UpdatedBy: "mgr-1",
		}
		if _, err := ExecuteSaveSelection(ctx, input, deps); err != nil {
			t.Fatalf("first save: %v", err)
		}

		input.PlayerIDs = []string{"p-2"}
		if _, err := ExecuteSaveSelection(ctx, input, deps); err != nil {
			t.Fatalf("second save: %v", err)
		}

		stored := fixtures.selections["fix-1"]
		if len(stored.PlayerIDs) != 1 || stored.PlayerIDs[0] != "p-2" {
			t.Errorf("expected replacement squad, got %v", stored.PlayerIDs)
		}
	})

	t.Run("rejects empty squad", func(t *testing.T) {
		_, _, deps := setup()

		_, err := ExecuteSaveSelection(ctx, SaveSelectionInput{
			FixtureID: "fix-1",
			UpdatedBy: "mgr-1",
		}, deps)
		if !errors.Is(err, ErrEmptySelection) {
			t.Errorf("expected ErrEmptySelection, got %v", err)
		}
	})

	t.Run("rejects unknown fixture", func(t *testing.T) {
		_, _, deps := setup()

		_, err := ExecuteSaveSelection(ctx, SaveSelectionInput{
			FixtureID: "fix-missing",
			PlayerIDs: []string{"p-1"},
			UpdatedBy: "mgr-1",
		}, deps)
		if err == nil {
			t.Error("expected error for unknown fixture")
		}
	})

	t.Run("rejects unknown player", func(t *testing.T) {
		fixtures, _, deps := setup()

		_, err := ExecuteSaveSelection(ctx, SaveSelectionInput{
			FixtureID: "fix-1",
			PlayerIDs: []string{"p-1", "p-ghost"},
			UpdatedBy: "mgr-1",
		}, deps)
		if err == nil {
			t.Error("expected error for unknown player")
		}
		if _, ok := fixtures.selections["fix-1"]; ok {
			t.Error("selection must not be saved when a player is unknown")
		}
	})
}
