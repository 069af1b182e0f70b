package fixture

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"clubhouse/internal/adapters/storage"
	domain "clubhouse/internal/domain/fixture"
)

const fixtureColumns = "id, date, kickoff_time, home_team, away_team, venue, " +
	"competition_type, competition_name, age_group, created_by, created_at"

const resultColumns = "id, fixture_id, home_team, away_team, home_score, away_score, " +
	"age_group, date, recorded_by, recorded_at"

const selectionColumns = "fixture_id, player_ids, meeting_time, meeting_place, notes, updated_by, updated_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new FixtureStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Fixture by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Fixture, error) {
	query := "SELECT " + fixtureColumns + " FROM fixture WHERE id = ?"
	row := s.db.QueryRowContext(ctx, query, id)

	entity, err := scanFixture(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Fixture{}, fmt.Errorf("fixture not found: %w", err)
	}
	return entity, err
}

// Save persists a Fixture to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Fixture) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fields := strings.Split(fixtureColumns, ", ")
	placeholders := make([]string, len(fields))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	var updates []string
	for _, f := range fields {
		if f == "id" || f == "created_by" || f == "created_at" {
			continue
		}
		updates = append(updates, f+"=excluded."+f)
	}

	query := fmt.Sprintf(
		"INSERT INTO fixture (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		storage.FormatDate(entity.Date),
		entity.KickoffTime,
		entity.HomeTeam,
		entity.AwayTeam,
		entity.Venue,
		entity.CompetitionType,
		entity.CompetitionName,
		entity.AgeGroup,
		entity.CreatedBy,
		storage.FormatTime(entity.CreatedAt),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Fixture and its dependents from the database.
// PRE: id is non-empty
// POST: Fixture, its result and its selection are removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM selection WHERE fixture_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM result WHERE fixture_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM fixture WHERE id = ?", id); err != nil {
		return err
	}
	return tx.Commit()
}

// List retrieves Fixtures based on the filter.
// PRE: filter has valid parameters
// POST: Returns matching entities in chronological order
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Fixture, error) {
	var queryBuilder strings.Builder
	var args []interface{}

	queryBuilder.WriteString("SELECT " + fixtureColumns + " FROM fixture")
	if filter.AgeGroup != "" {
		queryBuilder.WriteString(" WHERE age_group = ?")
		args = append(args, filter.AgeGroup)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}
	queryBuilder.WriteString(" ORDER BY date, kickoff_time LIMIT ? OFFSET ?")
	args = append(args, limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Fixture
	for rows.Next() {
		entity, err := scanFixture(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, nil
}

// GetResult retrieves the Result recorded for a fixture.
// PRE: fixtureID is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetResult(ctx context.Context, fixtureID string) (domain.Result, error) {
	query := "SELECT " + resultColumns + " FROM result WHERE fixture_id = ?"
	row := s.db.QueryRowContext(ctx, query, fixtureID)

	entity, err := scanResult(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Result{}, fmt.Errorf("result not found: %w", err)
	}
	return entity, err
}

// SaveResult persists a Result to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) SaveResult(ctx context.Context, entity domain.Result) error {
	query := `INSERT INTO result (id, fixture_id, home_team, away_team, home_score, away_score, age_group, date, recorded_by, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			home_team=excluded.home_team,
			away_team=excluded.away_team,
			home_score=excluded.home_score,
			away_score=excluded.away_score,
			age_group=excluded.age_group,
			date=excluded.date,
			recorded_by=excluded.recorded_by,
			recorded_at=excluded.recorded_at`

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.FixtureID,
		entity.HomeTeam,
		entity.AwayTeam,
		entity.HomeScore,
		entity.AwayScore,
		entity.AgeGroup,
		storage.FormatDate(entity.Date),
		entity.RecordedBy,
		storage.FormatTime(entity.RecordedAt),
	)
	return err
}

// ListResults retrieves Results based on the filter.
// PRE: filter has valid parameters
// POST: Returns matching entities, newest match first
func (s *SQLiteStore) ListResults(ctx context.Context, filter ListFilter) ([]domain.Result, error) {
	var queryBuilder strings.Builder
	var args []interface{}

	queryBuilder.WriteString("SELECT " + resultColumns + " FROM result")
	if filter.AgeGroup != "" {
		queryBuilder.WriteString(" WHERE age_group = ?")
		args = append(args, filter.AgeGroup)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}
	queryBuilder.WriteString(" ORDER BY date DESC LIMIT ? OFFSET ?")
	args = append(args, limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Result
	for rows.Next() {
		entity, err := scanResult(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, nil
}

// GetSelection retrieves the Selection for a fixture.
// PRE: fixtureID is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetSelection(ctx context.Context, fixtureID string) (domain.Selection, error) {
	query := "SELECT " + selectionColumns + " FROM selection WHERE fixture_id = ?"
	row := s.db.QueryRowContext(ctx, query, fixtureID)

	entity, err := scanSelection(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Selection{}, fmt.Errorf("selection not found: %w", err)
	}
	return entity, err
}

// SaveSelection persists a Selection to the database.
// PRE: entity references an existing fixture
// POST: Entity is persisted (insert or update, keyed by fixture)
func (s *SQLiteStore) SaveSelection(ctx context.Context, entity domain.Selection) error {
	query := `INSERT INTO selection (fixture_id, player_ids, meeting_time, meeting_place, notes, updated_by, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(fixture_id) DO UPDATE SET
			player_ids=excluded.player_ids,
			meeting_time=excluded.meeting_time,
			meeting_place=excluded.meeting_place,
			notes=excluded.notes,
			updated_by=excluded.updated_by,
			updated_at=excluded.updated_at`

	_, err := s.db.ExecContext(ctx, query,
		entity.FixtureID,
		strings.Join(entity.PlayerIDs, ","),
		entity.MeetingTime,
		entity.MeetingPlace,
		entity.Notes,
		entity.UpdatedBy,
		storage.FormatTime(entity.UpdatedAt),
	)
	return err
}

// ListSelections retrieves all stored Selections.
// POST: Returns every selection, most recently updated first
func (s *SQLiteStore) ListSelections(ctx context.Context) ([]domain.Selection, error) {
	query := "SELECT " + selectionColumns + " FROM selection ORDER BY updated_at DESC"
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Selection
	for rows.Next() {
		entity, err := scanSelection(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, nil
}

// scanFixture extracts a Fixture from a row scanner function.
func scanFixture(scan func(dest ...interface{}) error) (domain.Fixture, error) {
	var entity domain.Fixture
	var date, createdAt string
	err := scan(
		&entity.ID,
		&date,
		&entity.KickoffTime,
		&entity.HomeTeam,
		&entity.AwayTeam,
		&entity.Venue,
		&entity.CompetitionType,
		&entity.CompetitionName,
		&entity.AgeGroup,
		&entity.CreatedBy,
		&createdAt,
	)
	if err != nil {
		return domain.Fixture{}, err
	}
	entity.Date, _ = storage.ParseTime(date)
	entity.CreatedAt, _ = storage.ParseTime(createdAt)
	return entity, nil
}

// scanResult extracts a Result from a row scanner function.
func scanResult(scan func(dest ...interface{}) error) (domain.Result, error) {
	var entity domain.Result
	var date, recordedAt string
	err := scan(
		&entity.ID,
		&entity.FixtureID,
		&entity.HomeTeam,
		&entity.AwayTeam,
		&entity.HomeScore,
		&entity.AwayScore,
		&entity.AgeGroup,
		&date,
		&entity.RecordedBy,
		&recordedAt,
	)
	if err != nil {
		return domain.Result{}, err
	}
	entity.Date, _ = storage.ParseTime(date)
	entity.RecordedAt, _ = storage.ParseTime(recordedAt)
	return entity, nil
}

// scanSelection extracts a Selection from a row scanner function.
func scanSelection(scan func(dest ...interface{}) error) (domain.Selection, error) {
	var entity domain.Selection
	var playerIDs, updatedAt string
	err := scan(
		&entity.FixtureID,
		&playerIDs,
		&entity.MeetingTime,
		&entity.MeetingPlace,
		&entity.Notes,
		&entity.UpdatedBy,
		&updatedAt,
	)
	if err != nil {
		return domain.Selection{}, err
	}
	if playerIDs != "" {
		entity.PlayerIDs = strings.Split(playerIDs, ",")
	}
	entity.UpdatedAt, _ = storage.ParseTime(updatedAt)
	return entity, nil
}
