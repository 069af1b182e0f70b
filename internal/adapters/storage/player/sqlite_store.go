package player

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"clubhouse/internal/adapters/storage"
	domain "clubhouse/internal/domain/player"
)

const playerColumns = "id, account_id, registration_id, first_name, last_name, date_of_birth, " +
	"photo_url, registration_number, age_group, expires_at, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new PlayerStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Player by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Player, error) {
	query := "SELECT " + playerColumns + " FROM player WHERE id = ?"
	row := s.db.QueryRowContext(ctx, query, id)

	entity, err := scanPlayer(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Player{}, fmt.Errorf("player not found: %w", err)
	}
	return entity, err
}

// GetByAccountID retrieves the Player linked to an account.
// PRE: accountID is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByAccountID(ctx context.Context, accountID string) (domain.Player, error) {
	query := "SELECT " + playerColumns + " FROM player WHERE account_id = ? ORDER BY created_at DESC LIMIT 1"
	row := s.db.QueryRowContext(ctx, query, accountID)

	entity, err := scanPlayer(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Player{}, fmt.Errorf("player not found: %w", err)
	}
	return entity, err
}

// Save persists a Player to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Player) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fields := strings.Split(playerColumns, ", ")
	placeholders := make([]string, len(fields))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	var updates []string
	for _, f := range fields {
		if f == "id" || f == "account_id" || f == "created_at" {
			continue
		}
		updates = append(updates, f+"=excluded."+f)
	}

	query := fmt.Sprintf(
		"INSERT INTO player (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	var expiresAt interface{}
	if !entity.ExpiresAt.IsZero() {
		expiresAt = storage.FormatTime(entity.ExpiresAt)
	}

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.AccountID,
		entity.RegistrationID,
		entity.FirstName,
		entity.LastName,
		storage.FormatDate(entity.DateOfBirth),
		entity.PhotoURL,
		entity.RegistrationNumber,
		entity.AgeGroup,
		expiresAt,
		storage.FormatTime(entity.CreatedAt),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Player from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM player WHERE id = ?", id)
	return err
}

// List retrieves Players based on the filter.
// PRE: filter has valid parameters
// POST: Returns matching entities ordered by last name
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Player, error) {
	var queryBuilder strings.Builder
	var args []interface{}

	queryBuilder.WriteString("SELECT " + playerColumns + " FROM player")
	if filter.AgeGroup != "" {
		queryBuilder.WriteString(" WHERE age_group = ?")
		args = append(args, filter.AgeGroup)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}
	queryBuilder.WriteString(" ORDER BY last_name, first_name LIMIT ? OFFSET ?")
	args = append(args, limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Player
	for rows.Next() {
		entity, err := scanPlayer(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, nil
}

// scanPlayer extracts a Player from a row scanner function.
func scanPlayer(scan func(dest ...interface{}) error) (domain.Player, error) {
	var entity domain.Player
	var dob, createdAt string
	var expiresAt sql.NullString
	err := scan(
		&entity.ID,
		&entity.AccountID,
		&entity.RegistrationID,
		&entity.FirstName,
		&entity.LastName,
		&dob,
		&entity.PhotoURL,
		&entity.RegistrationNumber,
		&entity.AgeGroup,
		&expiresAt,
		&createdAt,
	)
	if err != nil {
		return domain.Player{}, err
	}
	entity.DateOfBirth, _ = storage.ParseTime(dob)
	entity.CreatedAt, _ = storage.ParseTime(createdAt)
	if expiresAt.Valid && expiresAt.String != "" {
		entity.ExpiresAt, _ = storage.ParseTime(expiresAt.String)
	}
	return entity, nil
}
