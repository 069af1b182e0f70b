package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"time"

	emailAdapter "clubhouse/internal/adapters/email"
	"clubhouse/internal/domain/account"
	"clubhouse/internal/domain/application"
	"clubhouse/internal/domain/fixture"
	"clubhouse/internal/domain/notice"
	"clubhouse/internal/domain/player"
	"clubhouse/internal/domain/registration"
)

var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

func fixedID() string { return "test-id-001" }

// seqID returns a generator producing id-1, id-2, ...
func seqID() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// --- account store mock ---

type mockAccountStore struct {
	accounts map[string]account.Account
}

func newMockAccountStore() *mockAccountStore {
	return &mockAccountStore{accounts: make(map[string]account.Account)}
}

func (m *mockAccountStore) GetByID(_ context.Context, id string) (account.Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return account.Account{}, errors.New("not found")
	}
	return a, nil
}

func (m *mockAccountStore) GetByEmail(_ context.Context, email string) (account.Account, error) {
	for _, a := range m.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return account.Account{}, errors.New("not found")
}

func (m *mockAccountStore) Save(_ context.Context, a account.Account) error {
	m.accounts[a.ID] = a
	return nil
}

func (m *mockAccountStore) Count(_ context.Context) (int, error) {
	return len(m.accounts), nil
}

// --- application store mock ---

type mockApplicationStore struct {
	applications map[string]application.Application
}

func newMockApplicationStore() *mockApplicationStore {
	return &mockApplicationStore{applications: make(map[string]application.Application)}
}

func (m *mockApplicationStore) GetByID(_ context.Context, id string) (application.Application, error) {
	a, ok := m.applications[id]
	if !ok {
		return application.Application{}, errors.New("not found")
	}
	return a, nil
}

func (m *mockApplicationStore) Save(_ context.Context, a application.Application) error {
	m.applications[a.ID] = a
	return nil
}

// --- registration store mock ---

type mockRegistrationStore struct {
	registrations map[string]registration.Registration
}

func newMockRegistrationStore() *mockRegistrationStore {
	return &mockRegistrationStore{registrations: make(map[string]registration.Registration)}
}

func (m *mockRegistrationStore) GetByID(_ context.Context, id string) (registration.Registration, error) {
	r, ok := m.registrations[id]
	if !ok {
		return registration.Registration{}, errors.New("not found")
	}
	return r, nil
}

func (m *mockRegistrationStore) GetByAccountID(_ context.Context, accountID string) (registration.Registration, error) {
	for _, r := range m.registrations {
		if r.AccountID == accountID {
			return r, nil
		}
	}
	return registration.Registration{}, errors.New("not found")
}

func (m *mockRegistrationStore) Save(_ context.Context, r registration.Registration) error {
	m.registrations[r.ID] = r
	return nil
}

// --- player store mock ---

type mockPlayerStore struct {
	players map[string]player.Player
}

func newMockPlayerStore() *mockPlayerStore {
	return &mockPlayerStore{players: make(map[string]player.Player)}
}

func (m *mockPlayerStore) GetByID(_ context.Context, id string) (player.Player, error) {
	p, ok := m.players[id]
	if !ok {
		return player.Player{}, errors.New("not found")
	}
	return p, nil
}

func (m *mockPlayerStore) GetByAccountID(_ context.Context, accountID string) (player.Player, error) {
	for _, p := range m.players {
		if p.AccountID == accountID {
			return p, nil
		}
	}
	return player.Player{}, errors.New("not found")
}

func (m *mockPlayerStore) Save(_ context.Context, p player.Player) error {
	m.players[p.ID] = p
	return nil
}

// --- fixture store mock ---

type mockFixtureStore struct {
	fixtures   map[string]fixture.Fixture
	results    map[string]fixture.Result
	selections map[string]fixture.Selection
}

func newMockFixtureStore() *mockFixtureStore {
	return &mockFixtureStore{
		fixtures:   make(map[string]fixture.Fixture),
		results:    make(map[string]fixture.Result),
		selections: make(map[string]fixture.Selection),
	}
}

func (m *mockFixtureStore) GetByID(_ context.Context, id string) (fixture.Fixture, error) {
	f, ok := m.fixtures[id]
	if !ok {
		return fixture.Fixture{}, errors.New("not found")
	}
	return f, nil
}

func (m *mockFixtureStore) Save(_ context.Context, f fixture.Fixture) error {
	m.fixtures[f.ID] = f
	return nil
}

func (m *mockFixtureStore) Delete(_ context.Context, id string) error {
	delete(m.fixtures, id)
	delete(m.results, id)
	delete(m.selections, id)
	return nil
}

func (m *mockFixtureStore) GetResult(_ context.Context, fixtureID string) (fixture.Result, error) {
	r, ok := m.results[fixtureID]
	if !ok {
		return fixture.Result{}, errors.New("not found")
	}
	return r, nil
}

func (m *mockFixtureStore) SaveResult(_ context.Context, r fixture.Result) error {
	m.results[r.FixtureID] = r
	return nil
}

func (m *mockFixtureStore) GetSelection(_ context.Context, fixtureID string) (fixture.Selection, error) {
	s, ok := m.selections[fixtureID]
	if !ok {
		return fixture.Selection{}, errors.New("not found")
	}
	return s, nil
}

func (m *mockFixtureStore) SaveSelection(_ context.Context, s fixture.Selection) error {
	m.selections[s.FixtureID] = s
	return nil
}

func (m *mockFixtureStore) ListSelections(_ context.Context) ([]fixture.Selection, error) {
	var out []fixture.Selection
	for _, s := range m.selections {
		out = append(out, s)
	}
	return out, nil
}

// --- notice store mock ---

type mockNoticeStore struct {
	notices map[string]notice.Notice
}

func newMockNoticeStore() *mockNoticeStore {
	return &mockNoticeStore{notices: make(map[string]notice.Notice)}
}

func (m *mockNoticeStore) GetByID(_ context.Context, id string) (notice.Notice, error) {
	n, ok := m.notices[id]
	if !ok {
		return notice.Notice{}, errors.New("not found")
	}
	return n, nil
}

func (m *mockNoticeStore) Save(_ context.Context, n notice.Notice) error {
	m.notices[n.ID] = n
	return nil
}

func (m *mockNoticeStore) Delete(_ context.Context, id string) error {
	delete(m.notices, id)
	return nil
}

// --- email sender mock ---

type mockEmailSender struct {
	sent []emailAdapter.SendRequest
	err  error
}

func (m *mockEmailSender) Send(_ context.Context, req emailAdapter.SendRequest) (emailAdapter.SendResult, error) {
	if m.err != nil {
		return emailAdapter.SendResult{}, m.err
	}
	m.sent = append(m.sent, req)
	return emailAdapter.SendResult{MessageID: "mock-msg-1", SentAt: fixedTime}, nil
}

// --- fixtures for workflow entities ---

// adultDOB is over 18 at fixedTime; minorDOB is under 18.
var (
	adultDOB = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	minorDOB = time.Date(2012, 6, 1, 0, 0, 0, 0, time.UTC)
)

func validAttachment(name string) registration.Attachment {
	return registration.Attachment{
		FileName:    name,
		ContentType: "application/pdf",
		Size:        128 * 1024,
		StoragePath: "uploads/" + name,
	}
}

// validRegistrationForm returns a complete adult registration form, without
// ID, AccountID, Status or SubmittedAt.
func validRegistrationForm() registration.Registration {
	return registration.Registration{
		FirstName:                    "Thabo",
		LastName:                     "Mokoena",
		DateOfBirth:                  adultDOB,
		Gender:                       "male",
		IDNumber:                     "0001015009087",
		Address:                      "12 Main Road, Gqeberha",
		Email:                        "thabo@example.com",
		Phone:                        "0821234567",
		SchoolName:                   "N/A",
		GradeLevel:                   "N/A",
		EmergencyContactName:         "Lerato Mokoena",
		EmergencyContactRelationship: "Sister",
		EmergencyContactPhone:        "0837654321",
		FamilyDoctor:                 "Dr Naidoo",
		DoctorPhone:                  "0415551234",
		MedicalRelease:               true,
		TermsAgreement:               true,
		BirthCertificate:             validAttachment("birth.pdf"),
		MedicalClearance:             validAttachment("medical.pdf"),
	}
}
