package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLDB is the subset of *sql.DB the stores depend on.
type SQLDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Compile-time check that *sql.DB satisfies SQLDB.
var _ SQLDB = (*sql.DB)(nil)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create tables
	schema := `
	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		phone TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		membership_status TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		failed_logins INTEGER NOT NULL DEFAULT 0,
		locked_until TEXT
	);

	CREATE TABLE IF NOT EXISTS application (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		date_of_birth TEXT NOT NULL,
		gender TEXT NOT NULL,
		address TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL,
		guardian_first_name TEXT NOT NULL DEFAULT '',
		guardian_last_name TEXT NOT NULL DEFAULT '',
		guardian_id_number TEXT NOT NULL DEFAULT '',
		guardian_relationship TEXT NOT NULL DEFAULT '',
		guardian_phone TEXT NOT NULL DEFAULT '',
		parental_consent INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		submitted_at TEXT NOT NULL,
		decided_at TEXT,
		decided_by TEXT,
		FOREIGN KEY (account_id) REFERENCES account(id)
	);

	CREATE TABLE IF NOT EXISTS registration (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		date_of_birth TEXT NOT NULL,
		gender TEXT NOT NULL,
		id_number TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL,
		guardian_first_name TEXT NOT NULL DEFAULT '',
		guardian_last_name TEXT NOT NULL DEFAULT '',
		guardian_id_number TEXT NOT NULL DEFAULT '',
		guardian_relationship TEXT NOT NULL DEFAULT '',
		guardian_phone TEXT NOT NULL DEFAULT '',
		parental_consent INTEGER NOT NULL DEFAULT 0,
		school_name TEXT NOT NULL DEFAULT '',
		grade_level TEXT NOT NULL DEFAULT '',
		emergency_contact_name TEXT NOT NULL DEFAULT '',
		emergency_contact_relationship TEXT NOT NULL DEFAULT '',
		emergency_contact_phone TEXT NOT NULL DEFAULT '',
		emergency_contact_alt_phone TEXT NOT NULL DEFAULT '',
		allergies TEXT NOT NULL DEFAULT '',
		medical_conditions TEXT NOT NULL DEFAULT '',
		current_medications TEXT NOT NULL DEFAULT '',
		family_doctor TEXT NOT NULL DEFAULT '',
		doctor_phone TEXT NOT NULL DEFAULT '',
		medical_release INTEGER NOT NULL DEFAULT 0,
		photo_release INTEGER NOT NULL DEFAULT 0,
		terms_agreement INTEGER NOT NULL DEFAULT 0,
		comments TEXT NOT NULL DEFAULT '',
		birth_certificate_name TEXT NOT NULL DEFAULT '',
		birth_certificate_type TEXT NOT NULL DEFAULT '',
		birth_certificate_size INTEGER NOT NULL DEFAULT 0,
		birth_certificate_path TEXT NOT NULL DEFAULT '',
		medical_clearance_name TEXT NOT NULL DEFAULT '',
		medical_clearance_type TEXT NOT NULL DEFAULT '',
		medical_clearance_size INTEGER NOT NULL DEFAULT 0,
		medical_clearance_path TEXT NOT NULL DEFAULT '',
		amend_fields TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		submitted_at TEXT NOT NULL,
		reviewed_at TEXT,
		reviewed_by TEXT,
		FOREIGN KEY (account_id) REFERENCES account(id)
	);

	CREATE TABLE IF NOT EXISTS player (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		registration_id TEXT NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		date_of_birth TEXT NOT NULL,
		photo_url TEXT NOT NULL DEFAULT '',
		registration_number TEXT NOT NULL DEFAULT '',
		age_group TEXT NOT NULL DEFAULT '',
		expires_at TEXT,
		created_at TEXT NOT NULL,
		FOREIGN KEY (account_id) REFERENCES account(id),
		FOREIGN KEY (registration_id) REFERENCES registration(id)
	);

	CREATE TABLE IF NOT EXISTS fixture (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		kickoff_time TEXT NOT NULL DEFAULT '',
		home_team TEXT NOT NULL,
		away_team TEXT NOT NULL,
		venue TEXT NOT NULL,
		competition_type TEXT NOT NULL,
		competition_name TEXT NOT NULL DEFAULT '',
		age_group TEXT NOT NULL DEFAULT '',
		created_by TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS result (
		id TEXT PRIMARY KEY,
		fixture_id TEXT NOT NULL,
		home_team TEXT NOT NULL,
		away_team TEXT NOT NULL,
		home_score INTEGER NOT NULL,
		away_score INTEGER NOT NULL,
		age_group TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL,
		recorded_by TEXT NOT NULL DEFAULT '',
		recorded_at TEXT NOT NULL,
		FOREIGN KEY (fixture_id) REFERENCES fixture(id)
	);

	CREATE TABLE IF NOT EXISTS selection (
		fixture_id TEXT PRIMARY KEY,
		player_ids TEXT NOT NULL DEFAULT '',
		meeting_time TEXT NOT NULL DEFAULT '',
		meeting_place TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		updated_by TEXT NOT NULL DEFAULT '',
		updated_at TEXT NOT NULL,
		FOREIGN KEY (fixture_id) REFERENCES fixture(id)
	);

	CREATE TABLE IF NOT EXISTS notice (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		status TEXT NOT NULL,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		age_group TEXT NOT NULL DEFAULT '',
		pinned INTEGER NOT NULL DEFAULT 0,
		created_by TEXT NOT NULL,
		created_at TEXT NOT NULL,
		published_at TEXT
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
