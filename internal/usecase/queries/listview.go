package queries

import (
	"context"
	"strings"

	"roomstay-admin/internal/domain/resource"
)

// ListQuery is the view-local query state: keyword, exact-match field
// filters, and the page cursor. Changing the keyword or any filter
// snaps the page back to 1, so the cursor can never point past the end
// of the new result set.
type ListQuery struct {
	SearchTerm string
	Filters    map[string]string
	PageIndex  int
	PageSize   int
}

func NewListQuery(pageSize int) ListQuery {
	return ListQuery{
		Filters:   map[string]string{},
		PageIndex: 1,
		PageSize:  pageSize,
	}
}

func (q *ListQuery) SetSearchTerm(term string) {
	if q.SearchTerm == term {
		return
	}
	q.SearchTerm = term
	q.PageIndex = 1
}

// SetFilter sets or clears (empty value) one field filter.
func (q *ListQuery) SetFilter(field, value string) {
	if q.Filters == nil {
		q.Filters = map[string]string{}
	}
	if q.Filters[field] == value {
		return
	}
	if value == "" {
		delete(q.Filters, field)
	} else {
		q.Filters[field] = value
	}
	q.PageIndex = 1
}

func (q *ListQuery) SetPage(i int) {
	if i < 1 {
		i = 1
	}
	q.PageIndex = i
}

// ApplyFilter keeps the records matching every non-empty field filter
// (exact match, AND-ed) whose search text contains the keyword
// case-insensitively in at least one field.
func ApplyFilter[T resource.Record](records []T, q ListQuery) []T {
	term := strings.ToLower(strings.TrimSpace(q.SearchTerm))
	filtered := make([]T, 0, len(records))

	for _, rec := range records {
		if !matchesFilters(rec, q.Filters) {
			continue
		}
		if term != "" && !matchesTerm(rec, term) {
			continue
		}
		filtered = append(filtered, rec)
	}
	return filtered
}

func matchesFilters(rec resource.Record, filters map[string]string) bool {
	for field, want := range filters {
		if want == "" {
			continue
		}
		got, ok := rec.FilterField(field)
		if !ok || got != want {
			return false
		}
	}
	return true
}

func matchesTerm(rec resource.Record, term string) bool {
	for _, s := range rec.SearchText() {
		if strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}
	return false
}

// Paginate slices out page pageIndex (1-based). totalPages is floored
// at 1 so pagination controls never see page 0.
func Paginate[T any](filtered []T, pageIndex, pageSize int) ([]T, int) {
	if pageSize < 1 {
		pageSize = 1
	}
	totalPages := (len(filtered) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	start := (pageIndex - 1) * pageSize
	if start < 0 || start >= len(filtered) {
		return nil, totalPages
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], totalPages
}

// PageItem is one slot of the pagination control: a page number or an
// ellipsis.
type PageItem struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// PageWindow abbreviates the page list: with 7 or fewer pages all are
// shown; beyond that the window keeps the first page, the last page
// and the current page with its neighbors. A gap of two or more pages
// collapses into a single ellipsis; a gap of exactly one page shows
// that page, since dots would be longer than the number they hide.
func PageWindow(current, total int) []PageItem {
	if total < 1 {
		total = 1
	}
	if current < 1 {
		current = 1
	} else if current > total {
		current = total
	}

	if total <= 7 {
		window := make([]PageItem, 0, total)
		for p := 1; p <= total; p++ {
			window = append(window, PageItem{Page: p})
		}
		return window
	}

	keep := map[int]bool{1: true, total: true}
	for p := current - 1; p <= current+1; p++ {
		if p >= 1 && p <= total {
			keep[p] = true
		}
	}

	window := make([]PageItem, 0, 9)
	last := 0
	for p := 1; p <= total; p++ {
		if !keep[p] {
			continue
		}
		switch {
		case last == 0 || p-last == 1:
		case p-last == 2:
			window = append(window, PageItem{Page: p - 1})
		default:
			window = append(window, PageItem{Ellipsis: true})
		}
		window = append(window, PageItem{Page: p})
		last = p
	}
	return window
}

// List resolves one page of a list view against the cached collection.
func List[T resource.Record](ctx context.Context, col *Collection[T], subKey string, q ListQuery) (*ListPage[T], error) {
	snap, err := col.Get(ctx, subKey)
	if err != nil {
		return nil, err
	}

	filtered := ApplyFilter(snap.Records, q)
	rows, totalPages := Paginate(filtered, q.PageIndex, q.PageSize)

	return &ListPage[T]{
		Rows:       rows,
		PageIndex:  q.PageIndex,
		PageSize:   q.PageSize,
		TotalRow:   len(filtered),
		TotalPages: totalPages,
		Window:     PageWindow(q.PageIndex, totalPages),
		FetchedAt:  snap.FetchedAt,
		Source:     snap.Source,
		LocalIDs:   snap.LocalIDs,
	}, nil
}
