package notice

import (
	"errors"
	"time"
)

// Notice types
const (
	TypeClubWide = "club_wide"
	TypeAgeGroup = "age_group"
)

// Notice statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// MaxTitleLength bounds user-supplied titles.
const MaxTitleLength = 200

// Domain errors
var (
	ErrEmptyTitle       = errors.New("notice title cannot be empty")
	ErrEmptyContent     = errors.New("notice content cannot be empty")
	ErrTitleTooLong     = errors.New("notice title cannot exceed 200 characters")
	ErrInvalidType      = errors.New("notice type must be one of: club_wide, age_group")
	ErrMissingAgeGroup  = errors.New("age group notices must name an age group")
	ErrAlreadyPublished = errors.New("notice is already published")
)

// Notice is a notice-board entry. Content is markdown, rendered at display
// time.
type Notice struct {
	ID          string
	Type        string
	Status      string
	Title       string
	Content     string
	AgeGroup    string // set when Type is age_group
	Pinned      bool
	CreatedBy   string
	CreatedAt   time.Time
	PublishedAt time.Time
}

// Validate checks if the Notice has valid data.
// PRE: Notice struct is populated
// POST: Returns nil if valid, error otherwise
func (n *Notice) Validate() error {
	if n.Title == "" {
		return ErrEmptyTitle
	}
	if len(n.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if n.Content == "" {
		return ErrEmptyContent
	}
	if n.Type != TypeClubWide && n.Type != TypeAgeGroup {
		return ErrInvalidType
	}
	if n.Type == TypeAgeGroup && n.AgeGroup == "" {
		return ErrMissingAgeGroup
	}
	return nil
}

// Publish transitions the notice from draft to published.
// PRE: Status is draft
// POST: Status is published, PublishedAt is set
func (n *Notice) Publish(now time.Time) error {
	if n.Status == StatusPublished {
		return ErrAlreadyPublished
	}
	n.Status = StatusPublished
	n.PublishedAt = now
	return nil
}

// IsVisible reports whether the notice should appear on the member notice
// board.
// INVARIANT: Notice fields are not mutated
func (n *Notice) IsVisible() bool {
	return n.Status == StatusPublished
}
