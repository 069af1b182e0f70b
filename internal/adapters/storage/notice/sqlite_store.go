package notice

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"clubhouse/internal/adapters/storage"
	domain "clubhouse/internal/domain/notice"
)

const noticeColumns = "id, type, status, title, content, age_group, pinned, created_by, created_at, published_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new NoticeStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Notice by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Notice, error) {
	query := "SELECT " + noticeColumns + " FROM notice WHERE id = ?"
	row := s.db.QueryRowContext(ctx, query, id)

	entity, err := scanNotice(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Notice{}, fmt.Errorf("notice not found: %w", err)
	}
	return entity, err
}

// Save persists a Notice to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Notice) error {
	query := `INSERT INTO notice (id, type, status, title, content, age_group, pinned, created_by, created_at, published_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type=excluded.type,
			status=excluded.status,
			title=excluded.title,
			content=excluded.content,
			age_group=excluded.age_group,
			pinned=excluded.pinned,
			published_at=excluded.published_at`

	var publishedAt interface{}
	if !entity.PublishedAt.IsZero() {
		publishedAt = storage.FormatTime(entity.PublishedAt)
	}

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.Type,
		entity.Status,
		entity.Title,
		entity.Content,
		entity.AgeGroup,
		boolToInt(entity.Pinned),
		entity.CreatedBy,
		storage.FormatTime(entity.CreatedAt),
		publishedAt,
	)
	return err
}

// Delete removes a Notice from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM notice WHERE id = ?", id)
	return err
}

// List retrieves Notices based on the filter.
// PRE: filter has valid parameters
// POST: Returns matching entities, pinned first then newest first
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Notice, error) {
	var queryBuilder strings.Builder
	var args []interface{}
	var conditions []string

	queryBuilder.WriteString("SELECT " + noticeColumns + " FROM notice")
	if filter.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.AgeGroup != "" {
		conditions = append(conditions, "(age_group = ? OR age_group = '')")
		args = append(args, filter.AgeGroup)
	}
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}
	queryBuilder.WriteString(" ORDER BY pinned DESC, created_at DESC LIMIT ? OFFSET ?")
	args = append(args, limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Notice
	for rows.Next() {
		entity, err := scanNotice(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, nil
}

// scanNotice extracts a Notice from a row scanner function.
func scanNotice(scan func(dest ...interface{}) error) (domain.Notice, error) {
	var entity domain.Notice
	var createdAt string
	var pinned int
	var publishedAt sql.NullString
	err := scan(
		&entity.ID,
		&entity.Type,
		&entity.Status,
		&entity.Title,
		&entity.Content,
		&entity.AgeGroup,
		&pinned,
		&entity.CreatedBy,
		&createdAt,
		&publishedAt,
	)
	if err != nil {
		return domain.Notice{}, err
	}
	entity.Pinned = pinned != 0
	entity.CreatedAt, _ = storage.ParseTime(createdAt)
	if publishedAt.Valid && publishedAt.String != "" {
		entity.PublishedAt, _ = storage.ParseTime(publishedAt.String)
	}
	return entity, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
