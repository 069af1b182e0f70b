package listutil

import (
	"net/url"
	"sort"
	"strconv"
	"time"
)

// PageParams carries pagination parameters parsed from a request.
type PageParams struct {
	Page    int // 1-indexed page number
	PerPage int // rows per page
}

// PageInfo carries pagination metadata for rendering.
type PageInfo struct {
	Page       int // current page (1-indexed)
	PerPage    int // rows per page
	Total      int // total matching rows
	TotalPages int // ceil(Total / PerPage)
}

// DefaultPerPage is the default number of rows per page.
const DefaultPerPage = 20

// PerPageOptions are the allowed rows-per-page values.
var PerPageOptions = []int{10, 20, 50, 100}

// ParsePageParams extracts page and per_page from URL query values.
// PRE: none
// POST: returns valid PageParams with defaults applied
func ParsePageParams(q url.Values) PageParams {
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	if !isValidPerPage(perPage) {
		perPage = DefaultPerPage
	}
	return PageParams{Page: page, PerPage: perPage}
}

// NewPageInfo computes pagination metadata.
// PRE: total >= 0, perPage > 0, page >= 1
// POST: returns PageInfo with TotalPages computed; Page clamped to valid range
func NewPageInfo(page, perPage, total int) PageInfo {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return PageInfo{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// Offset returns the SQL OFFSET for the current page.
// PRE: PageInfo is valid
// POST: Returns (Page-1) * PerPage
func (p PageInfo) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// ShowPagination returns true if pagination controls should be displayed.
func (p PageInfo) ShowPagination() bool {
	return p.Total > p.PerPage
}

// Filter returns the items satisfying every predicate. The fixtures and
// results screens share this instead of re-implementing their own loops.
func Filter[T any](items []T, predicates ...func(T) bool) []T {
	var out []T
	for _, item := range items {
		keep := true
		for _, pred := range predicates {
			if !pred(item) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, item)
		}
	}
	return out
}

// ByMonth builds a predicate matching items whose extracted date falls in
// the given month (1-12). A month of 0 matches everything.
func ByMonth[T any](month int, dateOf func(T) time.Time) func(T) bool {
	return func(item T) bool {
		if month == 0 {
			return true
		}
		return int(dateOf(item).Month()) == month
	}
}

// MonthGroup is one month's worth of items, keyed for display.
type MonthGroup[T any] struct {
	Year  int
	Month time.Month
	Items []T
}

// GroupByMonth buckets items by the calendar month of their extracted date,
// ordered chronologically. Item order within a bucket follows input order.
// PRE: dateOf returns a meaningful date for every item
// POST: every input item appears in exactly one group
func GroupByMonth[T any](items []T, dateOf func(T) time.Time) []MonthGroup[T] {
	type key struct {
		year  int
		month time.Month
	}
	buckets := make(map[key][]T)
	for _, item := range items {
		d := dateOf(item)
		k := key{d.Year(), d.Month()}
		buckets[k] = append(buckets[k], item)
	}

	keys := make([]key, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	groups := make([]MonthGroup[T], 0, len(keys))
	for _, k := range keys {
		groups = append(groups, MonthGroup[T]{Year: k.year, Month: k.month, Items: buckets[k]})
	}
	return groups
}

func isValidPerPage(n int) bool {
	for _, opt := range PerPageOptions {
		if n == opt {
			return true
		}
	}
	return false
}
