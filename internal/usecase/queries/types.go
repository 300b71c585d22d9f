package queries

import (
	"time"

	"roomstay-admin/internal/domain/resource"
	"roomstay-admin/internal/fallback"
)

// SubKeyAll is the sub-key of the unscoped collection of a resource.
const SubKeyAll = "all"

type Source string

const (
	// SourceUpstream marks a snapshot built purely from upstream rows.
	SourceUpstream Source = "upstream"
	// SourceMerged marks a snapshot that carries fallback overlays.
	SourceMerged Source = "merged"
)

// Snapshot is an immutable, timestamped copy of one collection. It is
// replaced wholesale on refresh, never patched in place.
type Snapshot[T resource.Record] struct {
	Records    []T
	FetchedAt  time.Time
	Source     Source
	TotalCount int
	// LocalIDs maps record id to fallback origin for every row that is
	// locally-originated. UI "local only" badges read this, not id
	// magnitude.
	LocalIDs map[int64]fallback.Origin
}

// ListPage is a fully resolved page of rows for one list view.
type ListPage[T resource.Record] struct {
	Rows       []T
	PageIndex  int
	PageSize   int
	TotalRow   int // rows matching the current search/filters
	TotalPages int
	Window     []PageItem
	FetchedAt  time.Time
	Source     Source
	LocalIDs   map[int64]fallback.Origin
}
