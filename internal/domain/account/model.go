package account

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"clubhouse/internal/domain/membership"
)

// Max length constants for user-editable fields.
const (
	MaxEmailLength = 254
)

// Role is the closed set of authenticated roles. An unauthenticated visitor
// has no account and therefore no role ("guest" is the absence of a session).
type Role string

// Role constants
const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RolePlayer  Role = "player"
	RoleUser    Role = "user"
)

// ValidRoles contains all valid role values.
var ValidRoles = []Role{RoleAdmin, RoleManager, RolePlayer, RoleUser}

// Domain errors
var (
	ErrInvalidEmail      = errors.New("email must contain '@'")
	ErrEmptyEmail        = errors.New("email cannot be empty")
	ErrEmptyName         = errors.New("first and last name are required")
	ErrInvalidRole       = errors.New("role must be one of: admin, manager, player, user")
	ErrEmptyPassword     = errors.New("password cannot be empty")
	ErrPasswordTooShort  = errors.New("password must be at least 12 characters")
	ErrWrongPassword     = errors.New("incorrect password")
	ErrStatusNotAllowed  = errors.New("admin and manager accounts do not carry a membership status")
	ErrInvalidStatus     = errors.New("unknown membership status")
	ErrRoleChangeBlocked = errors.New("role can only advance from user to player or manager")
)

// Account holds state for an authenticated identity: who they are, how they
// log in, and, for the user/player progression, where they sit in the
// membership workflow.
type Account struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role
	// Status is the membership workflow position. Empty for admin and
	// manager accounts, which never enter the workflow.
	Status       membership.Status
	CreatedAt    time.Time
	FailedLogins int
	LockedUntil  time.Time
}

// Validate checks if the Account has valid data.
// PRE: Account struct is populated
// POST: Returns nil if valid, error otherwise
func (a *Account) Validate() error {
	if strings.TrimSpace(a.Email) == "" {
		return ErrEmptyEmail
	}
	if len(a.Email) > MaxEmailLength {
		return errors.New("email cannot exceed 254 characters")
	}
	if !strings.Contains(a.Email, "@") {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(a.FirstName) == "" || strings.TrimSpace(a.LastName) == "" {
		return ErrEmptyName
	}
	if !isValidRole(a.Role) {
		return ErrInvalidRole
	}
	switch a.Role {
	case RoleAdmin, RoleManager:
		if a.Status != "" {
			return ErrStatusNotAllowed
		}
	default:
		if !a.Status.IsValid() {
			return ErrInvalidStatus
		}
	}
	return nil
}

// SetPassword hashes and stores a password using bcrypt with cost 12.
// PRE: plaintext is non-empty and >= 12 characters
// POST: PasswordHash is set to bcrypt hash
func (a *Account) SetPassword(plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	if len(plaintext) < 12 {
		return ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), 12)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// PRE: PasswordHash is set
// INVARIANT: Account fields are not mutated
func (a *Account) CheckPassword(plaintext string) error {
	if a.PasswordHash == "" {
		return ErrWrongPassword
	}
	err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(plaintext))
	if err != nil {
		return ErrWrongPassword
	}
	return nil
}

// IsLocked returns true if the account is currently locked out.
// INVARIANT: Account fields are not mutated
func (a *Account) IsLocked() bool {
	if a.LockedUntil.IsZero() {
		return false
	}
	return time.Now().Before(a.LockedUntil)
}

// RecordFailedLogin increments the failed login counter and locks the account after 5 failures.
// PRE: Account exists
// POST: FailedLogins incremented; LockedUntil set if >= 5 failures
func (a *Account) RecordFailedLogin() {
	a.FailedLogins++
	if a.FailedLogins >= 5 {
		a.LockedUntil = time.Now().Add(15 * time.Minute)
	}
}

// ResetFailedLogins clears the failed login counter and lock.
// PRE: Account exists
// POST: FailedLogins is 0, LockedUntil is zero
func (a *Account) ResetFailedLogins() {
	a.FailedLogins = 0
	a.LockedUntil = time.Time{}
}

// IsAdmin returns true if the account has admin role.
// INVARIANT: Account fields are not mutated
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// InWorkflow reports whether this account participates in the membership
// workflow (only user and player accounts do).
// INVARIANT: Account fields are not mutated
func (a *Account) InWorkflow() bool {
	return a.Role == RoleUser || a.Role == RolePlayer
}

// PromoteToPlayer advances a user account to the player role. Tied to the
// create-player step that follows a completed registration review.
// PRE: Role is user and Status is registered
// POST: Role is player
func (a *Account) PromoteToPlayer() error {
	if a.Role != RoleUser || a.Status != membership.StatusRegistered {
		return ErrRoleChangeBlocked
	}
	a.Role = RolePlayer
	return nil
}

// PromoteToManager advances a user account to the manager role
// (admin-initiated). The membership status is discarded because manager
// accounts never carry one.
// PRE: Role is user
// POST: Role is manager, Status is cleared
func (a *Account) PromoteToManager() error {
	if a.Role != RoleUser {
		return ErrRoleChangeBlocked
	}
	a.Role = RoleManager
	a.Status = ""
	return nil
}

// DisplayName returns the name shown in the welcome banner.
func (a *Account) DisplayName() string {
	return a.FirstName
}

func isValidRole(role Role) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
