package queries

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"roomstay-admin/internal/domain/resource"
	"roomstay-admin/internal/fallback"
	"roomstay-admin/internal/pkg/clock"
	"roomstay-admin/internal/upstream"

	"golang.org/x/sync/singleflight"
)

// FetchFunc loads one sub-collection from the upstream; the sub-key
// selects the scope ("all", "loc:3", "user:12"...).
type FetchFunc[T resource.Record] func(ctx context.Context, subKey string) (upstream.Page[T], error)

// FallbackReader is the slice of the fallback store the cache needs.
type FallbackReader interface {
	ReadAll(ctx context.Context, kind resource.Kind) ([]fallback.Entry, error)
}

// Collection owns the cached snapshots of one resource kind, keyed by
// sub-key. Reads are coalesced: concurrent Gets for the same key share
// a single upstream fetch. Snapshots are replaced wholesale, and a
// superseded fetch's result is dropped on arrival (last fetch wins per
// key).
type Collection[T resource.Record] struct {
	kind   resource.Kind
	stale  time.Duration
	clk    clock.Clock
	store  FallbackReader
	fetch  FetchFunc[T]
	logger *slog.Logger

	group singleflight.Group

	mu    sync.Mutex
	snaps map[string]*cacheEntry[T]
}

type cacheEntry[T resource.Record] struct {
	snap        *Snapshot[T]
	invalidated bool
	generation  uint64 // bumped when a fetch starts
	completed   uint64 // generation of the newest committed fetch
}

func NewCollection[T resource.Record](
	kind resource.Kind,
	staleTime time.Duration,
	clk clock.Clock,
	store FallbackReader,
	fetch FetchFunc[T],
	logger *slog.Logger,
) *Collection[T] {
	return &Collection[T]{
		kind:   kind,
		stale:  staleTime,
		clk:    clk,
		store:  store,
		fetch:  fetch,
		logger: logger,
		snaps:  map[string]*cacheEntry[T]{},
	}
}

func (c *Collection[T]) Kind() resource.Kind { return c.kind }

// Get returns the cached snapshot when fresh, otherwise refetches.
// The first fetch of a key propagates its error; a staleness-triggered
// refresh that fails keeps serving the last good snapshot instead of
// blanking the view.
func (c *Collection[T]) Get(ctx context.Context, subKey string) (Snapshot[T], error) {
	c.mu.Lock()
	e := c.ensure(subKey)
	last := e.snap
	fresh := last != nil && !e.invalidated && clock.Since(c.clk, last.FetchedAt) < c.stale
	c.mu.Unlock()

	if fresh {
		return *last, nil
	}

	snap, err := c.fetchShared(ctx, subKey)
	if err != nil {
		if last != nil {
			c.logger.Warn("background refresh failed, serving last snapshot",
				slog.String("resource", c.kind.String()),
				slog.String("subKey", subKey),
				slog.String("error", err.Error()))
			return *last, nil
		}
		return Snapshot[T]{}, err
	}
	return snap, nil
}

// Invalidate marks the snapshot stale unconditionally; the next Get
// refetches.
func (c *Collection[T]) Invalidate(subKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensure(subKey).invalidated = true
}

// InvalidateAll marks every sub-collection stale. Mutations use this
// for the derived sub-keys they cannot enumerate.
func (c *Collection[T]) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.snaps {
		e.invalidated = true
	}
}

// RefetchNow forces an immediate refetch regardless of staleness, so
// the view reflects a mutation without waiting out the window.
func (c *Collection[T]) RefetchNow(ctx context.Context, subKey string) (Snapshot[T], error) {
	c.group.Forget(subKey)
	return c.fetchShared(ctx, subKey)
}

func (c *Collection[T]) fetchShared(ctx context.Context, subKey string) (Snapshot[T], error) {
	v, err, _ := c.group.Do(subKey, func() (any, error) {
		gen := c.beginFetch(subKey)

		page, err := c.fetch(ctx, subKey)
		if err != nil {
			return nil, err
		}
		entries, err := c.store.ReadAll(ctx, c.kind)
		if err != nil {
			return nil, err
		}
		entries, err = scopeEntries[T](subKey, entries)
		if err != nil {
			return nil, err
		}

		records, localIDs, err := Merge(page.Records, entries)
		if err != nil {
			return nil, err
		}

		source := SourceUpstream
		total := page.TotalCount
		if len(localIDs) > 0 {
			source = SourceMerged
			total = page.TotalCount + netNew(localIDs, page.Records)
		}

		snap := &Snapshot[T]{
			Records:    records,
			FetchedAt:  c.clk.Now(),
			Source:     source,
			TotalCount: total,
			LocalIDs:   localIDs,
		}
		return c.commit(subKey, gen, snap), nil
	})
	if err != nil {
		return Snapshot[T]{}, err
	}
	return *(v.(*Snapshot[T])), nil
}

func (c *Collection[T]) ensure(subKey string) *cacheEntry[T] {
	e, ok := c.snaps[subKey]
	if !ok {
		e = &cacheEntry[T]{}
		c.snaps[subKey] = e
	}
	return e
}

func (c *Collection[T]) beginFetch(subKey string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.ensure(subKey)
	e.generation++
	return e.generation
}

// commit installs the snapshot unless a newer fetch already completed,
// in which case the newer snapshot stands and this result is dropped.
func (c *Collection[T]) commit(subKey string, gen uint64, snap *Snapshot[T]) *Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.ensure(subKey)
	if gen <= e.completed && e.snap != nil {
		return e.snap
	}
	e.snap = snap
	e.completed = gen
	e.invalidated = false
	return snap
}

func netNew[T resource.Record](localIDs map[int64]fallback.Origin, upstreamRecs []T) int {
	n := len(localIDs)
	for _, rec := range upstreamRecs {
		if _, ok := localIDs[rec.RecordID()]; ok {
			n--
		}
	}
	return n
}
