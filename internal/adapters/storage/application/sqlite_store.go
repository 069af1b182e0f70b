package application

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"clubhouse/internal/adapters/storage"
	domain "clubhouse/internal/domain/application"
)

const applicationColumns = "id, account_id, first_name, last_name, date_of_birth, gender, address, email, phone, " +
	"guardian_first_name, guardian_last_name, guardian_id_number, guardian_relationship, guardian_phone, parental_consent, " +
	"status, submitted_at, decided_at, decided_by"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new ApplicationStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves an Application by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Application, error) {
	query := "SELECT " + applicationColumns + " FROM application WHERE id = ?"
	row := s.db.QueryRowContext(ctx, query, id)

	entity, err := scanApplication(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Application{}, fmt.Errorf("application not found: %w", err)
	}
	return entity, err
}

// GetByAccountID retrieves the most recent Application for an account.
// PRE: accountID is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByAccountID(ctx context.Context, accountID string) (domain.Application, error) {
	query := "SELECT " + applicationColumns + " FROM application WHERE account_id = ? ORDER BY submitted_at DESC LIMIT 1"
	row := s.db.QueryRowContext(ctx, query, accountID)

	entity, err := scanApplication(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Application{}, fmt.Errorf("application not found: %w", err)
	}
	return entity, err
}

// Save persists an Application to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Application) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fields := []string{
		"id", "account_id", "first_name", "last_name", "date_of_birth", "gender", "address", "email", "phone",
		"guardian_first_name", "guardian_last_name", "guardian_id_number", "guardian_relationship", "guardian_phone", "parental_consent",
		"status", "submitted_at", "decided_at", "decided_by",
	}
	placeholders := make([]string, len(fields))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	updates := []string{
		"first_name=excluded.first_name",
		"last_name=excluded.last_name",
		"date_of_birth=excluded.date_of_birth",
		"gender=excluded.gender",
		"address=excluded.address",
		"email=excluded.email",
		"phone=excluded.phone",
		"guardian_first_name=excluded.guardian_first_name",
		"guardian_last_name=excluded.guardian_last_name",
		"guardian_id_number=excluded.guardian_id_number",
		"guardian_relationship=excluded.guardian_relationship",
		"guardian_phone=excluded.guardian_phone",
		"parental_consent=excluded.parental_consent",
		"status=excluded.status",
		"decided_at=excluded.decided_at",
		"decided_by=excluded.decided_by",
	}

	query := fmt.Sprintf(
		"INSERT INTO application (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	var decidedAt, decidedBy interface{}
	if !entity.DecidedAt.IsZero() {
		decidedAt = storage.FormatTime(entity.DecidedAt)
	}
	if entity.DecidedBy != "" {
		decidedBy = entity.DecidedBy
	}

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.AccountID,
		entity.FirstName,
		entity.LastName,
		storage.FormatDate(entity.DateOfBirth),
		entity.Gender,
		entity.Address,
		entity.Email,
		entity.Phone,
		entity.Guardian.FirstName,
		entity.Guardian.LastName,
		entity.Guardian.IDNumber,
		entity.Guardian.Relationship,
		entity.Guardian.Phone,
		boolToInt(entity.Guardian.Consent),
		entity.Status,
		storage.FormatTime(entity.SubmittedAt),
		decidedAt,
		decidedBy,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes an Application from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM application WHERE id = ?", id)
	return err
}

// List retrieves Applications based on the filter.
// PRE: filter has valid parameters
// POST: Returns matching entities, newest first
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Application, error) {
	var queryBuilder strings.Builder
	var args []interface{}

	queryBuilder.WriteString("SELECT " + applicationColumns + " FROM application")
	if filter.Status != "" {
		queryBuilder.WriteString(" WHERE status = ?")
		args = append(args, filter.Status)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}
	queryBuilder.WriteString(" ORDER BY submitted_at DESC LIMIT ? OFFSET ?")
	args = append(args, limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Application
	for rows.Next() {
		entity, err := scanApplication(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, nil
}

// scanApplication extracts an Application from a row scanner function.
func scanApplication(scan func(dest ...interface{}) error) (domain.Application, error) {
	var entity domain.Application
	var dob, submittedAt string
	var consent int
	var decidedAt, decidedBy sql.NullString
	err := scan(
		&entity.ID,
		&entity.AccountID,
		&entity.FirstName,
		&entity.LastName,
		&dob,
		&entity.Gender,
		&entity.Address,
		&entity.Email,
		&entity.Phone,
		&entity.Guardian.FirstName,
		&entity.Guardian.LastName,
		&entity.Guardian.IDNumber,
		&entity.Guardian.Relationship,
		&entity.Guardian.Phone,
		&consent,
		&entity.Status,
		&submittedAt,
		&decidedAt,
		&decidedBy,
	)
	if err != nil {
		return domain.Application{}, err
	}
	entity.Guardian.Consent = consent != 0
	entity.DateOfBirth, _ = storage.ParseTime(dob)
	entity.SubmittedAt, _ = storage.ParseTime(submittedAt)
	if decidedAt.Valid && decidedAt.String != "" {
		entity.DecidedAt, _ = storage.ParseTime(decidedAt.String)
	}
	if decidedBy.Valid {
		entity.DecidedBy = decidedBy.String
	}
	return entity, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
