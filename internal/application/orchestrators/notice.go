package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"clubhouse/internal/domain/notice"
)

// NoticeStoreForOrchestrator defines the store interface needed by notice orchestrators.
type NoticeStoreForOrchestrator interface {
	GetByID(ctx context.Context, id string) (notice.Notice, error)
	Save(ctx context.Context, n notice.Notice) error
	Delete(ctx context.Context, id string) error
}

// --- Create Notice ---

// CreateNoticeInput carries input for creating a notice.
type CreateNoticeInput struct {
	Type      string
	Title     string
	Content   string // markdown
	AgeGroup  string
	Publish   bool // publish immediately instead of saving a draft
	CreatedBy string
}

// CreateNoticeDeps holds dependencies for CreateNotice.
type CreateNoticeDeps struct {
	NoticeStore NoticeStoreForOrchestrator
	GenerateID  func() string
	Now         func() time.Time
}

// ExecuteCreateNotice creates a notice, as a draft or published immediately.
// PRE: Valid type, non-empty title and content, CreatedBy set
// POST: Notice persisted
func ExecuteCreateNotice(ctx context.Context, input CreateNoticeInput, deps CreateNoticeDeps) (notice.Notice, error) {
	if input.CreatedBy == "" {
		return notice.Notice{}, errors.New("creator ID is required")
	}

	now := deps.Now()
	n := notice.Notice{
		ID:        deps.GenerateID(),
		Type:      input.Type,
		Status:    notice.StatusDraft,
		Title:     input.Title,
		Content:   input.Content,
		AgeGroup:  input.AgeGroup,
		CreatedBy: input.CreatedBy,
		CreatedAt: now,
	}
	if err := n.Validate(); err != nil {
		return notice.Notice{}, err
	}
	if input.Publish {
		if err := n.Publish(now); err != nil {
			return notice.Notice{}, err
		}
	}

	if err := deps.NoticeStore.Save(ctx, n); err != nil {
		return notice.Notice{}, err
	}

	slog.Info("notice_event", "event", "notice_created", "notice_id", n.ID, "type", n.Type, "status", n.Status, "created_by", input.CreatedBy)
	return n, nil
}

// --- Publish Notice ---

// PublishNoticeInput carries input for publishing a draft notice.
type PublishNoticeInput struct {
	NoticeID    string
	PublisherID string
}

// PublishNoticeDeps holds dependencies for PublishNotice.
type PublishNoticeDeps struct {
	NoticeStore NoticeStoreForOrchestrator
	Now         func() time.Time
}

// ExecutePublishNotice transitions a draft notice to published.
// PRE: Notice exists and is a draft
// POST: Notice is published with PublishedAt set
func ExecutePublishNotice(ctx context.Context, input PublishNoticeInput, deps PublishNoticeDeps) (notice.Notice, error) {
	if input.NoticeID == "" {
		return notice.Notice{}, errors.New("notice ID is required")
	}
	if input.PublisherID == "" {
		return notice.Notice{}, errors.New("publisher ID is required")
	}

	n, err := deps.NoticeStore.GetByID(ctx, input.NoticeID)
	if err != nil {
		return notice.Notice{}, err
	}
	if err := n.Publish(deps.Now()); err != nil {
		return notice.Notice{}, err
	}

	if err := deps.NoticeStore.Save(ctx, n); err != nil {
		return notice.Notice{}, err
	}

	slog.Info("notice_event", "event", "notice_published", "notice_id", n.ID, "published_by", input.PublisherID)
	return n, nil
}

// --- Pin Notice ---

// PinNoticeInput carries input for pinning or unpinning a notice.
type PinNoticeInput struct {
	NoticeID string
	Pinned   bool
}

// PinNoticeDeps holds dependencies for PinNotice.
type PinNoticeDeps struct {
	NoticeStore NoticeStoreForOrchestrator
}

// ExecutePinNotice pins or unpins a notice on the board.
// PRE: Notice exists
// POST: Pinned flag matches input
func ExecutePinNotice(ctx context.Context, input PinNoticeInput, deps PinNoticeDeps) (notice.Notice, error) {
	if input.NoticeID == "" {
		return notice.Notice{}, errors.New("notice ID is required")
	}

	n, err := deps.NoticeStore.GetByID(ctx, input.NoticeID)
	if err != nil {
		return notice.Notice{}, err
	}
	n.Pinned = input.Pinned

	if err := deps.NoticeStore.Save(ctx, n); err != nil {
		return notice.Notice{}, err
	}

	slog.Info("notice_event", "event", "notice_pinned", "notice_id", n.ID, "pinned", n.Pinned)
	return n, nil
}

// --- Delete Notice ---

// DeleteNoticeInput carries input for deleting a notice.
type DeleteNoticeInput struct {
	NoticeID  string
	DeletedBy string
}

// DeleteNoticeDeps holds dependencies for DeleteNotice.
type DeleteNoticeDeps struct {
	NoticeStore NoticeStoreForOrchestrator
}

// ExecuteDeleteNotice removes a notice from the board.
// PRE: Notice exists
// POST: Notice is deleted
func ExecuteDeleteNotice(ctx context.Context, input DeleteNoticeInput, deps DeleteNoticeDeps) error {
	if input.NoticeID == "" {
		return errors.New("notice ID is required")
	}
	if input.DeletedBy == "" {
		return errors.New("deleter ID is required")
	}

	if _, err := deps.NoticeStore.GetByID(ctx, input.NoticeID); err != nil {
		return err
	}
	if err := deps.NoticeStore.Delete(ctx, input.NoticeID); err != nil {
		return err
	}

	slog.Info("notice_event", "event", "notice_deleted", "notice_id", input.NoticeID, "deleted_by", input.DeletedBy)
	return nil
}
