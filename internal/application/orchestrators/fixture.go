package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"clubhouse/internal/domain/fixture"
)

// FixtureStoreForOrchestrator defines the store interface needed by fixture orchestrators.
type FixtureStoreForOrchestrator interface {
	GetByID(ctx context.Context, id string) (fixture.Fixture, error)
	Save(ctx context.Context, f fixture.Fixture) error
	Delete(ctx context.Context, id string) error
	GetResult(ctx context.Context, fixtureID string) (fixture.Result, error)
	SaveResult(ctx context.Context, r fixture.Result) error
}

// --- Create Fixture ---

// CreateFixtureInput carries input for scheduling a fixture.
type CreateFixtureInput struct {
	Date            time.Time
	KickoffTime     string
	HomeTeam        string
	AwayTeam        string
	Venue           string
	CompetitionType string
	CompetitionName string
	AgeGroup        string
	CreatedBy       string
}

// CreateFixtureDeps holds dependencies for CreateFixture.
type CreateFixtureDeps struct {
	FixtureStore FixtureStoreForOrchestrator
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteCreateFixture schedules a match for one of the club's squads.
// PRE: Valid teams, date, venue and competition type
// POST: Fixture persisted
func ExecuteCreateFixture(ctx context.Context, input CreateFixtureInput, deps CreateFixtureDeps) (fixture.Fixture, error) {
	if input.CreatedBy == "" {
		return fixture.Fixture{}, errors.New("creator ID is required")
	}

	f := fixture.Fixture{
		ID:              deps.GenerateID(),
		Date:            input.Date,
		KickoffTime:     input.KickoffTime,
		HomeTeam:        input.HomeTeam,
		AwayTeam:        input.AwayTeam,
		Venue:           input.Venue,
		CompetitionType: input.CompetitionType,
		CompetitionName: input.CompetitionName,
		AgeGroup:        input.AgeGroup,
		CreatedBy:       input.CreatedBy,
		CreatedAt:       deps.Now(),
	}
	if err := f.Validate(); err != nil {
		return fixture.Fixture{}, err
	}

	if err := deps.FixtureStore.Save(ctx, f); err != nil {
		return fixture.Fixture{}, err
	}

	slog.Info("fixture_event", "event", "fixture_created", "fixture_id", f.ID, "age_group", f.AgeGroup, "date", f.Date, "created_by", input.CreatedBy)
	return f, nil
}

// --- Record Result ---

// RecordResultInput carries input for recording a fixture's outcome.
type RecordResultInput struct {
	FixtureID  string
	HomeScore  int
	AwayScore  int
	RecordedBy string
}

// RecordResultDeps holds dependencies for RecordResult.
type RecordResultDeps struct {
	FixtureStore FixtureStoreForOrchestrator
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteRecordResult records the outcome of a played fixture. Teams, age
// group and date are copied from the fixture so results stand alone in lists.
// PRE: Fixture exists and its date has passed
// POST: Result persisted (recording again overwrites the scores)
func ExecuteRecordResult(ctx context.Context, input RecordResultInput, deps RecordResultDeps) (fixture.Result, error) {
	if input.FixtureID == "" {
		return fixture.Result{}, errors.New("fixture ID is required")
	}
	if input.RecordedBy == "" {
		return fixture.Result{}, errors.New("recorder ID is required")
	}

	f, err := deps.FixtureStore.GetByID(ctx, input.FixtureID)
	if err != nil {
		return fixture.Result{}, err
	}

	now := deps.Now()
	if f.Date.After(now) {
		return fixture.Result{}, fixture.ErrResultBeforeKickoff
	}

	r := fixture.Result{
		ID:         deps.GenerateID(),
		FixtureID:  f.ID,
		HomeTeam:   f.HomeTeam,
		AwayTeam:   f.AwayTeam,
		HomeScore:  input.HomeScore,
		AwayScore:  input.AwayScore,
		AgeGroup:   f.AgeGroup,
		Date:       f.Date,
		RecordedBy: input.RecordedBy,
		RecordedAt: now,
	}

	// Re-recording keeps the original result row
	if existing, err := deps.FixtureStore.GetResult(ctx, f.ID); err == nil {
		r.ID = existing.ID
	}

	if err := r.Validate(); err != nil {
		return fixture.Result{}, err
	}

	if err := deps.FixtureStore.SaveResult(ctx, r); err != nil {
		return fixture.Result{}, err
	}

	slog.Info("fixture_event", "event", "result_recorded", "fixture_id", f.ID, "home_score", r.HomeScore, "away_score", r.AwayScore, "recorded_by", input.RecordedBy)
	return r, nil
}

// --- Delete Fixture ---

// DeleteFixtureInput carries input for removing a fixture.
type DeleteFixtureInput struct {
	FixtureID string
	DeletedBy string
}

// DeleteFixtureDeps holds dependencies for DeleteFixture.
type DeleteFixtureDeps struct {
	FixtureStore FixtureStoreForOrchestrator
}

// ExecuteDeleteFixture removes a fixture along with its result and selection.
// PRE: Fixture exists
// POST: Fixture and dependents are deleted
func ExecuteDeleteFixture(ctx context.Context, input DeleteFixtureInput, deps DeleteFixtureDeps) error {
	if input.FixtureID == "" {
		return errors.New("fixture ID is required")
	}
	if input.DeletedBy == "" {
		return errors.New("deleter ID is required")
	}

	if _, err := deps.FixtureStore.GetByID(ctx, input.FixtureID); err != nil {
		return err
	}
	if err := deps.FixtureStore.Delete(ctx, input.FixtureID); err != nil {
		return err
	}

	slog.Info("fixture_event", "event", "fixture_deleted", "fixture_id", input.FixtureID, "deleted_by", input.DeletedBy)
	return nil
}
