package registration

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"clubhouse/internal/adapters/storage"
	"clubhouse/internal/domain/membership"
	domain "clubhouse/internal/domain/registration"
)

const registrationColumns = "id, account_id, first_name, last_name, date_of_birth, gender, id_number, address, email, phone, " +
	"guardian_first_name, guardian_last_name, guardian_id_number, guardian_relationship, guardian_phone, parental_consent, " +
	"school_name, grade_level, " +
	"emergency_contact_name, emergency_contact_relationship, emergency_contact_phone, emergency_contact_alt_phone, " +
	"allergies, medical_conditions, current_medications, family_doctor, doctor_phone, " +
	"medical_release, photo_release, terms_agreement, comments, " +
	"birth_certificate_name, birth_certificate_type, birth_certificate_size, birth_certificate_path, " +
	"medical_clearance_name, medical_clearance_type, medical_clearance_size, medical_clearance_path, " +
	"amend_fields, status, submitted_at, reviewed_at, reviewed_by"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new RegistrationStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Registration by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Registration, error) {
	query := "SELECT " + registrationColumns + " FROM registration WHERE id = ?"
	row := s.db.QueryRowContext(ctx, query, id)

	entity, err := scanRegistration(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Registration{}, fmt.Errorf("registration not found: %w", err)
	}
	return entity, err
}

// GetByAccountID retrieves the most recent Registration for an account.
// PRE: accountID is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByAccountID(ctx context.Context, accountID string) (domain.Registration, error) {
	query := "SELECT " + registrationColumns + " FROM registration WHERE account_id = ? ORDER BY submitted_at DESC LIMIT 1"
	row := s.db.QueryRowContext(ctx, query, accountID)

	entity, err := scanRegistration(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Registration{}, fmt.Errorf("registration not found: %w", err)
	}
	return entity, err
}

// Save persists a Registration to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Registration) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fields := strings.Split(registrationColumns, ", ")
	placeholders := make([]string, len(fields))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	var updates []string
	for _, f := range fields {
		if f == "id" || f == "account_id" || f == "submitted_at" {
			continue
		}
		updates = append(updates, f+"=excluded."+f)
	}

	query := fmt.Sprintf(
		"INSERT INTO registration (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	var reviewedAt, reviewedBy interface{}
	if !entity.ReviewedAt.IsZero() {
		reviewedAt = storage.FormatTime(entity.ReviewedAt)
	}
	if entity.ReviewedBy != "" {
		reviewedBy = entity.ReviewedBy
	}

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.AccountID,
		entity.FirstName,
		entity.LastName,
		storage.FormatDate(entity.DateOfBirth),
		entity.Gender,
		entity.IDNumber,
		entity.Address,
		entity.Email,
		entity.Phone,
		entity.GuardianFirstName,
		entity.GuardianLastName,
		entity.GuardianIDNumber,
		entity.GuardianRelationship,
		entity.GuardianPhone,
		boolToInt(entity.ParentalConsent),
		entity.SchoolName,
		entity.GradeLevel,
		entity.EmergencyContactName,
		entity.EmergencyContactRelationship,
		entity.EmergencyContactPhone,
		entity.EmergencyContactAltPhone,
		entity.Allergies,
		entity.MedicalConditions,
		entity.CurrentMedications,
		entity.FamilyDoctor,
		entity.DoctorPhone,
		boolToInt(entity.MedicalRelease),
		boolToInt(entity.PhotoRelease),
		boolToInt(entity.TermsAgreement),
		entity.Comments,
		entity.BirthCertificate.FileName,
		entity.BirthCertificate.ContentType,
		entity.BirthCertificate.Size,
		entity.BirthCertificate.StoragePath,
		entity.MedicalClearance.FileName,
		entity.MedicalClearance.ContentType,
		entity.MedicalClearance.Size,
		entity.MedicalClearance.StoragePath,
		strings.Join(entity.AmendFields.Fields(), ","),
		entity.Status,
		storage.FormatTime(entity.SubmittedAt),
		reviewedAt,
		reviewedBy,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Registration from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM registration WHERE id = ?", id)
	return err
}

// List retrieves Registrations based on the filter.
// PRE: filter has valid parameters
// POST: Returns matching entities, newest first
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Registration, error) {
	var queryBuilder strings.Builder
	var args []interface{}

	queryBuilder.WriteString("SELECT " + registrationColumns + " FROM registration")
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

	var results []domain.Registration
	for rows.Next() {
		entity, err := scanRegistration(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, nil
}

// scanRegistration extracts a Registration from a row scanner function.
func scanRegistration(scan func(dest ...interface{}) error) (domain.Registration, error) {
	var entity domain.Registration
	var dob, submittedAt, amendFields string
	var consent, medicalRelease, photoRelease, terms int
	var reviewedAt, reviewedBy sql.NullString
	err := scan(
		&entity.ID,
		&entity.AccountID,
		&entity.FirstName,
		&entity.LastName,
		&dob,
		&entity.Gender,
		&entity.IDNumber,
		&entity.Address,
		&entity.Email,
		&entity.Phone,
		&entity.GuardianFirstName,
		&entity.GuardianLastName,
		&entity.GuardianIDNumber,
		&entity.GuardianRelationship,
		&entity.GuardianPhone,
		&consent,
		&entity.SchoolName,
		&entity.GradeLevel,
		&entity.EmergencyContactName,
		&entity.EmergencyContactRelationship,
		&entity.EmergencyContactPhone,
		&entity.EmergencyContactAltPhone,
		&entity.Allergies,
		&entity.MedicalConditions,
		&entity.CurrentMedications,
		&entity.FamilyDoctor,
		&entity.DoctorPhone,
		&medicalRelease,
		&photoRelease,
		&terms,
		&entity.Comments,
		&entity.BirthCertificate.FileName,
		&entity.BirthCertificate.ContentType,
		&entity.BirthCertificate.Size,
		&entity.BirthCertificate.StoragePath,
		&entity.MedicalClearance.FileName,
		&entity.MedicalClearance.ContentType,
		&entity.MedicalClearance.Size,
		&entity.MedicalClearance.StoragePath,
		&amendFields,
		&entity.Status,
		&submittedAt,
		&reviewedAt,
		&reviewedBy,
	)
	if err != nil {
		return domain.Registration{}, err
	}
	entity.ParentalConsent = consent != 0
	entity.MedicalRelease = medicalRelease != 0
	entity.PhotoRelease = photoRelease != 0
	entity.TermsAgreement = terms != 0
	entity.DateOfBirth, _ = storage.ParseTime(dob)
	entity.SubmittedAt, _ = storage.ParseTime(submittedAt)
	if amendFields != "" {
		entity.AmendFields = membership.NewAmendmentSet(strings.Split(amendFields, ","))
	}
	if reviewedAt.Valid && reviewedAt.String != "" {
		entity.ReviewedAt, _ = storage.ParseTime(reviewedAt.String)
	}
	if reviewedBy.Valid {
		entity.ReviewedBy = reviewedBy.String
	}
	return entity, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
