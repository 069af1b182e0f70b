package web

import (
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/csrf"

	"clubhouse/internal/adapters/http/middleware"
	"clubhouse/internal/application/orchestrators"
	"clubhouse/internal/application/projections"
	domainApplication "clubhouse/internal/domain/application"
	domainRegistration "clubhouse/internal/domain/registration"
)

// maxUpload bounds a registration submission: two 5 MB documents plus form
// overhead.
const maxUpload = 12 << 20

const dateLayout = "2006-01-02"

// handleApplication handles GET (form) and POST (submit) for /application
func handleApplication(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if r.Method == "GET" {
		renderTemplate(w, r, "application.html", map[string]any{
			"CSRFToken": csrf.Token(r),
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		dob, err := time.Parse(dateLayout, r.FormValue("DateOfBirth"))
		if err != nil {
			renderTemplate(w, r, "application.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Error":     "date of birth must be YYYY-MM-DD",
			})
			return
		}

		input := orchestrators.SubmitApplicationInput{
			AccountID:   sess.AccountID,
			FirstName:   r.FormValue("FirstName"),
			LastName:    r.FormValue("LastName"),
			DateOfBirth: dob,
			Gender:      r.FormValue("Gender"),
			Address:     r.FormValue("Address"),
			Email:       r.FormValue("Email"),
			Phone:       r.FormValue("Phone"),
			Guardian: domainApplication.Guardian{
				FirstName:    r.FormValue("GuardianFirstName"),
				LastName:     r.FormValue("GuardianLastName"),
				IDNumber:     r.FormValue("GuardianIDNumber"),
				Relationship: r.FormValue("GuardianRelationship"),
				Phone:        r.FormValue("GuardianPhone"),
				Consent:      r.FormValue("GuardianConsent") == "on",
			},
		}

		deps := orchestrators.SubmitApplicationDeps{
			AccountStore:     stores.AccountStore,
			ApplicationStore: stores.ApplicationStore,
			GenerateID:       generateID,
			Now:              timeNow,
		}

		if _, err := orchestrators.ExecuteSubmitApplication(r.Context(), input, deps); err != nil {
			renderTemplate(w, r, "application.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Error":     err.Error(),
			})
			return
		}

		refreshSession(r)
		http.Redirect(w, r, "/notices", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// formAttachment validates and stores one uploaded document. A missing file
// yields a zero Attachment and no error; oversize or unsaveable files error.
func formAttachment(r *http.Request, field string) (domainRegistration.Attachment, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return domainRegistration.Attachment{}, nil
	}
	defer file.Close()
	return storeAttachment(field, header, file)
}

func storeAttachment(field string, header *multipart.FileHeader, file multipart.File) (domainRegistration.Attachment, error) {
	att := domainRegistration.Attachment{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	}
	if err := att.CheckSize(); err != nil {
		return domainRegistration.Attachment{}, err
	}
	path, err := saveAttachment(generateID()+"-"+field, file)
	if err != nil {
		return domainRegistration.Attachment{}, err
	}
	att.StoragePath = path
	return att, nil
}

// registrationFromForm maps the posted registration form onto the domain
// record. Attachments are handled separately.
func registrationFromForm(r *http.Request) (domainRegistration.Registration, error) {
	dob, err := time.Parse(dateLayout, r.FormValue("DateOfBirth"))
	if err != nil {
		return domainRegistration.Registration{}, err
	}
	return domainRegistration.Registration{
		FirstName:   r.FormValue("FirstName"),
		LastName:    r.FormValue("LastName"),
		DateOfBirth: dob,
		Gender:      r.FormValue("Gender"),
		IDNumber:    r.FormValue("IDNumber"),
		Address:     r.FormValue("Address"),
		Email:       r.FormValue("Email"),
		Phone:       r.FormValue("Phone"),

		GuardianFirstName:    r.FormValue("GuardianFirstName"),
		GuardianLastName:     r.FormValue("GuardianLastName"),
		GuardianIDNumber:     r.FormValue("GuardianIDNumber"),
		GuardianRelationship: r.FormValue("GuardianRelationship"),
		GuardianPhone:        r.FormValue("GuardianPhone"),
		ParentalConsent:      r.FormValue("ParentalConsent") == "on",

		SchoolName: r.FormValue("SchoolName"),
		GradeLevel: r.FormValue("GradeLevel"),

		EmergencyContactName:         r.FormValue("EmergencyContactName"),
		EmergencyContactRelationship: r.FormValue("EmergencyContactRelationship"),
		EmergencyContactPhone:        r.FormValue("EmergencyContactPhone"),
		EmergencyContactAltPhone:     r.FormValue("EmergencyContactAltPhone"),

		Allergies:          r.FormValue("Allergies"),
		MedicalConditions:  r.FormValue("MedicalConditions"),
		CurrentMedications: r.FormValue("CurrentMedications"),
		FamilyDoctor:       r.FormValue("FamilyDoctor"),
		DoctorPhone:        r.FormValue("DoctorPhone"),

		MedicalRelease: r.FormValue("MedicalRelease") == "on",
		PhotoRelease:   r.FormValue("PhotoRelease") == "on",
		TermsAgreement: r.FormValue("TermsAgreement") == "on",
		Comments:       r.FormValue("Comments"),
	}, nil
}

// handleRegistration handles GET (form) and POST (submit) for /registration
func handleRegistration(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if r.Method == "GET" {
		renderTemplate(w, r, "registration.html", map[string]any{
			"CSRFToken": csrf.Token(r),
		})
		return
	}

	if r.Method == "POST" {
		r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
		if err := r.ParseMultipartForm(maxUpload); err != nil {
			http.Error(w, "request too large or malformed", http.StatusBadRequest)
			return
		}

		reg, err := registrationFromForm(r)
		if err != nil {
			renderTemplate(w, r, "registration.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Error":     "date of birth must be YYYY-MM-DD",
			})
			return
		}

		if reg.BirthCertificate, err = formAttachment(r, "BirthCertificate"); err != nil {
			renderTemplate(w, r, "registration.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Error":     err.Error(),
			})
			return
		}
		if reg.MedicalClearance, err = formAttachment(r, "MedicalClearance"); err != nil {
			renderTemplate(w, r, "registration.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Error":     err.Error(),
			})
			return
		}

		input := orchestrators.SubmitRegistrationInput{
			AccountID:    sess.AccountID,
			Registration: reg,
		}
		deps := orchestrators.SubmitRegistrationDeps{
			AccountStore:      stores.AccountStore,
			RegistrationStore: stores.RegistrationStore,
			GenerateID:        generateID,
			Now:               timeNow,
		}

		if _, err := orchestrators.ExecuteSubmitRegistration(r.Context(), input, deps); err != nil {
			renderTemplate(w, r, "registration.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Error":     err.Error(),
			})
			return
		}

		refreshSession(r)
		http.Redirect(w, r, "/notices", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleAmendRegistration handles GET (flagged fields) and POST (resubmit)
// for /registration/amend
func handleAmendRegistration(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if r.Method == "GET" {
		result, err := projections.QueryGetRegistrationReview(r.Context(),
			projections.GetRegistrationReviewQuery{AccountID: sess.AccountID, Now: timeNow()},
			projections.GetRegistrationReviewDeps{RegistrationStore: stores.RegistrationStore},
		)
		if err != nil {
			internalError(w, err)
			return
		}
		renderTemplate(w, r, "amend.html", map[string]any{
			"CSRFToken":    csrf.Token(r),
			"AmendFields":  result.AmendFields,
			"Registration": result.Registration,
		})
		return
	}

	if r.Method == "POST" {
		r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
		if err := r.ParseMultipartForm(maxUpload); err != nil {
			http.Error(w, "request too large or malformed", http.StatusBadRequest)
			return
		}

		// Only flagged fields are accepted; the orchestrator rejects extras
		// and omissions.
		values := make(map[string]string)
		attachments := make(map[string]domainRegistration.Attachment)
		for field := range r.MultipartForm.Value {
			if !domainRegistration.IsChecklistField(field) {
				continue
			}
			values[field] = strings.TrimSpace(r.FormValue(field))
		}
		for field := range r.MultipartForm.File {
			if !domainRegistration.IsChecklistField(field) {
				continue
			}
			att, err := formAttachment(r, field)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if att.Present() {
				attachments[field] = att
			}
		}

		input := orchestrators.AmendRegistrationInput{
			AccountID:   sess.AccountID,
			Values:      values,
			Attachments: attachments,
		}
		deps := orchestrators.AmendRegistrationDeps{
			AccountStore:      stores.AccountStore,
			RegistrationStore: stores.RegistrationStore,
			Now:               timeNow,
		}

		if _, err := orchestrators.ExecuteAmendRegistration(r.Context(), input, deps); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		refreshSession(r)
		http.Redirect(w, r, "/notices", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}
