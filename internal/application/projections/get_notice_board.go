package projections

import (
	"context"

	storageNotice "clubhouse/internal/adapters/storage/notice"
	"clubhouse/internal/application/listutil"
	domainNotice "clubhouse/internal/domain/notice"
)

// GetNoticeBoardQuery carries query parameters. AgeGroup narrows the board
// to club-wide notices plus that squad's notices; empty shows everything
// published. Page controls which slice of the board is returned; a zero
// value falls back to page 1 with the default page size.
type GetNoticeBoardQuery struct {
	AgeGroup     string
	IncludeDraft bool // admins see drafts too
	Page         listutil.PageParams
}

// GetNoticeBoardResult carries one page of the board's notices, pinned
// first, plus the metadata the template needs to render paging controls.
type GetNoticeBoardResult struct {
	Notices []domainNotice.Notice
	Page    listutil.PageInfo
}

// GetNoticeBoardDeps holds dependencies for GetNoticeBoard.
type GetNoticeBoardDeps struct {
	NoticeStore NoticeStore
}

// QueryGetNoticeBoard retrieves one page of the notice board.
// POST: members see only published notices; ordering is pinned first then
// newest first, as the store returns them
func QueryGetNoticeBoard(ctx context.Context, query GetNoticeBoardQuery, deps GetNoticeBoardDeps) (GetNoticeBoardResult, error) {
	filter := storageNotice.ListFilter{AgeGroup: query.AgeGroup}
	if !query.IncludeDraft {
		filter.Status = domainNotice.StatusPublished
	}

	notices, err := deps.NoticeStore.List(ctx, filter)
	if err != nil {
		return GetNoticeBoardResult{}, err
	}

	info := listutil.NewPageInfo(query.Page.Page, query.Page.PerPage, len(notices))
	start := info.Offset()
	end := start + info.PerPage
	if end > len(notices) {
		end = len(notices)
	}
	return GetNoticeBoardResult{Notices: notices[start:end], Page: info}, nil
}
