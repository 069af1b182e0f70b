package registration

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"clubhouse/internal/domain/membership"
)

// MaxAttachmentSize is the ceiling for uploaded documents, enforced before
// any attachment is persisted.
const MaxAttachmentSize = 5 << 20 // 5 MB

// Registration statuses mirror the membership workflow positions a
// registration record itself can be in.
const (
	StatusPending    = "pending registration"
	StatusUnderamend = "review registration"
	StatusComplete   = "registered"
)

// Attachment field names.
const (
	FieldBirthCertificate = "birthCertificate"
	FieldMedicalClearance = "medicalClearance"
)

// Domain errors
var (
	ErrAttachmentTooLarge  = errors.New("file size exceeds 5MB limit")
	ErrMissingAttachment   = errors.New("birth certificate and medical clearance are required")
	ErrEmergencyIncomplete = errors.New("emergency contact name, relationship and phone are required")
	ErrSchoolIncomplete    = errors.New("school name and grade level are required")
	ErrMedicalIncomplete   = errors.New("family doctor and doctor phone are required")
	ErrReleasesRequired    = errors.New("medical release and terms agreement must be accepted")
	ErrUnknownField        = errors.New("unknown registration field")
	ErrFieldNotListed      = errors.New("field is not listed for amendment")
	ErrAmendmentIncomplete = errors.New("resubmission must supply every field listed for amendment")
)

// Attachment is an uploaded supporting document. Only metadata lives in the
// domain; bytes are written by the storage adapter.
type Attachment struct {
	FileName    string
	ContentType string
	Size        int64
	StoragePath string
}

// Present reports whether a file has been attached.
func (a Attachment) Present() bool {
	return a.FileName != "" && a.Size > 0
}

// CheckSize enforces the upload ceiling.
// POST: nil iff Size <= MaxAttachmentSize
func (a Attachment) CheckSize() error {
	if a.Size > MaxAttachmentSize {
		return fmt.Errorf("%w: %s is %d bytes", ErrAttachmentTooLarge, a.FileName, a.Size)
	}
	return nil
}

// Registration is the full membership registration record: a superset of the
// application's player identity fields plus school, emergency contact,
// medical details, releases, and two supporting documents.
type Registration struct {
	ID          string
	AccountID   string
	FirstName   string
	LastName    string
	DateOfBirth time.Time
	Gender      string
	IDNumber    string
	Address     string
	Email       string
	Phone       string

	GuardianFirstName    string
	GuardianLastName     string
	GuardianIDNumber     string
	GuardianRelationship string
	GuardianPhone        string
	ParentalConsent      bool

	SchoolName string
	GradeLevel string

	EmergencyContactName         string
	EmergencyContactRelationship string
	EmergencyContactPhone        string
	EmergencyContactAltPhone     string

	Allergies          string
	MedicalConditions  string
	CurrentMedications string
	FamilyDoctor       string
	DoctorPhone        string

	MedicalRelease bool
	PhotoRelease   bool
	TermsAgreement bool
	Comments       string

	BirthCertificate Attachment
	MedicalClearance Attachment

	// AmendFields is non-empty exactly while the membership status is
	// "review registration".
	AmendFields membership.AmendmentSet

	Status      string
	SubmittedAt time.Time
	ReviewedAt  time.Time
	ReviewedBy  string
}

// Age returns the player's age in whole years on the given date.
// INVARIANT: Registration fields are not mutated
func (r *Registration) Age(on time.Time) int {
	return membership.Age(r.DateOfBirth, on)
}

// IsAdult reports whether the player is 18 or older on the given date.
// INVARIANT: Registration fields are not mutated
func (r *Registration) IsAdult(on time.Time) bool {
	return !membership.IsMinor(r.DateOfBirth, on)
}

// Validate checks the registration against the submission-time rules.
// PRE: now is the submission time
// POST: Returns nil if valid; the first failing rule's error otherwise
func (r *Registration) Validate(now time.Time) error {
	if strings.TrimSpace(r.FirstName) == "" || strings.TrimSpace(r.LastName) == "" ||
		r.DateOfBirth.IsZero() || strings.TrimSpace(r.Address) == "" ||
		strings.TrimSpace(r.Email) == "" || strings.TrimSpace(r.Phone) == "" {
		return errors.New("player identity fields are required")
	}
	if strings.TrimSpace(r.SchoolName) == "" || strings.TrimSpace(r.GradeLevel) == "" {
		return ErrSchoolIncomplete
	}
	if strings.TrimSpace(r.EmergencyContactName) == "" ||
		strings.TrimSpace(r.EmergencyContactRelationship) == "" ||
		strings.TrimSpace(r.EmergencyContactPhone) == "" {
		return ErrEmergencyIncomplete
	}
	if strings.TrimSpace(r.FamilyDoctor) == "" || strings.TrimSpace(r.DoctorPhone) == "" {
		return ErrMedicalIncomplete
	}
	if !r.MedicalRelease || !r.TermsAgreement {
		return ErrReleasesRequired
	}
	if !r.IsAdult(now) {
		if strings.TrimSpace(r.GuardianFirstName) == "" || strings.TrimSpace(r.GuardianLastName) == "" ||
			strings.TrimSpace(r.GuardianPhone) == "" {
			return errors.New("parent/guardian details are required for players under 18")
		}
		if !r.ParentalConsent {
			return errors.New("parental consent is required for players under 18")
		}
	}
	if !r.BirthCertificate.Present() || !r.MedicalClearance.Present() {
		return ErrMissingAttachment
	}
	if err := r.BirthCertificate.CheckSize(); err != nil {
		return err
	}
	return r.MedicalClearance.CheckSize()
}

// ChecklistFields returns the canonical reviewable field names, in form
// order. The administrator's review checklist covers exactly these.
func ChecklistFields() []string {
	return []string{
		"playerFirstName", "playerSecondName", "playerDob", "playerGender",
		"playerIDNumber", "address", "emailAddress", "playerPhone",
		FieldBirthCertificate, FieldMedicalClearance,
		"parentFirstName", "parentLastName", "parentIDNumber",
		"parentRelationship", "parentPhone", "parentalConsent",
		"schoolName", "gradeLevel",
		"emergencyContactName", "emergencyContactRelationship",
		"emergencyContactPhone", "emergencyContactAltPhone",
		"allergies", "medicalConditions", "currentMedications",
		"familyDoctor", "doctorPhone", "comments",
	}
}

// IsChecklistField reports whether name is a reviewable field.
func IsChecklistField(name string) bool {
	for _, f := range ChecklistFields() {
		if f == name {
			return true
		}
	}
	return false
}

// setters maps checklist field names to mutators for string-valued fields.
// Attachment fields are handled separately by AmendAttachment.
var setters = map[string]func(*Registration, string){
	"playerFirstName":              func(r *Registration, v string) { r.FirstName = v },
	"playerSecondName":             func(r *Registration, v string) { r.LastName = v },
	"playerGender":                 func(r *Registration, v string) { r.Gender = v },
	"playerIDNumber":               func(r *Registration, v string) { r.IDNumber = v },
	"address":                      func(r *Registration, v string) { r.Address = v },
	"emailAddress":                 func(r *Registration, v string) { r.Email = v },
	"playerPhone":                  func(r *Registration, v string) { r.Phone = v },
	"parentFirstName":              func(r *Registration, v string) { r.GuardianFirstName = v },
	"parentLastName":               func(r *Registration, v string) { r.GuardianLastName = v },
	"parentIDNumber":               func(r *Registration, v string) { r.GuardianIDNumber = v },
	"parentRelationship":           func(r *Registration, v string) { r.GuardianRelationship = v },
	"parentPhone":                  func(r *Registration, v string) { r.GuardianPhone = v },
	"parentalConsent":              func(r *Registration, v string) { r.ParentalConsent = v == "true" || v == "on" },
	"schoolName":                   func(r *Registration, v string) { r.SchoolName = v },
	"gradeLevel":                   func(r *Registration, v string) { r.GradeLevel = v },
	"emergencyContactName":         func(r *Registration, v string) { r.EmergencyContactName = v },
	"emergencyContactRelationship": func(r *Registration, v string) { r.EmergencyContactRelationship = v },
	"emergencyContactPhone":        func(r *Registration, v string) { r.EmergencyContactPhone = v },
	"emergencyContactAltPhone":     func(r *Registration, v string) { r.EmergencyContactAltPhone = v },
	"allergies":                    func(r *Registration, v string) { r.Allergies = v },
	"medicalConditions":            func(r *Registration, v string) { r.MedicalConditions = v },
	"currentMedications":           func(r *Registration, v string) { r.CurrentMedications = v },
	"familyDoctor":                 func(r *Registration, v string) { r.FamilyDoctor = v },
	"doctorPhone":                  func(r *Registration, v string) { r.DoctorPhone = v },
	"comments":                     func(r *Registration, v string) { r.Comments = v },
}

// Amend applies a member's resubmission to the fields flagged for
// amendment. Every flagged field must be supplied (attachments included),
// and only flagged fields may be supplied. On success the amendment set is
// cleared and the record returns to pending review.
// PRE: Status is "review registration" and AmendFields is non-empty
// POST: flagged fields updated, AmendFields emptied, Status is StatusPending
func (r *Registration) Amend(values map[string]string, attachments map[string]Attachment) error {
	supplied := make([]string, 0, len(values)+len(attachments))
	for name := range values {
		if _, ok := setters[name]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, name)
		}
		if !r.AmendFields.Contains(name) {
			return fmt.Errorf("%w: %s", ErrFieldNotListed, name)
		}
		supplied = append(supplied, name)
	}
	for name, att := range attachments {
		if name != FieldBirthCertificate && name != FieldMedicalClearance {
			return fmt.Errorf("%w: %s", ErrUnknownField, name)
		}
		if !r.AmendFields.Contains(name) {
			return fmt.Errorf("%w: %s", ErrFieldNotListed, name)
		}
		if err := att.CheckSize(); err != nil {
			return err
		}
		supplied = append(supplied, name)
	}

	if missing := r.AmendFields.Missing(supplied); len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrAmendmentIncomplete, strings.Join(missing, ", "))
	}

	for name, v := range values {
		setters[name](r, v)
	}
	for name, att := range attachments {
		if name == FieldBirthCertificate {
			r.BirthCertificate = att
		} else {
			r.MedicalClearance = att
		}
	}

	r.AmendFields = nil
	r.Status = StatusPending
	return nil
}

// FlagForAmendment records an administrator's amend set on the record.
// PRE: set is non-empty
// POST: Status is "review registration", AmendFields equals set
func (r *Registration) FlagForAmendment(set membership.AmendmentSet) error {
	if len(set) == 0 {
		return membership.ErrEmptyAmendSet
	}
	r.AmendFields = set
	r.Status = StatusUnderamend
	return nil
}
