//go:build unit

package queries_test

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"roomstay-admin/internal/domain/resource"
	"roomstay-admin/internal/domain/user"
	"roomstay-admin/internal/fallback"
	"roomstay-admin/internal/pkg/clock"
	"roomstay-admin/internal/upstream"
	"roomstay-admin/internal/usecase/queries"
	"roomstay-admin/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReader struct {
	mu      sync.Mutex
	entries []fallback.Entry
	err     error
}

func (r *stubReader) ReadAll(_ context.Context, _ resource.Kind) ([]fallback.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries, r.err
}

type fetchStub struct {
	calls atomic.Int64
	mu    sync.Mutex
	page  upstream.Page[user.User]
	err   error
	block chan struct{} // when non-nil, fetch waits for it
}

func (f *fetchStub) fetch(_ context.Context, _ string) (upstream.Page[user.User], error) {
	f.calls.Add(1)
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.page, f.err
}

func (f *fetchStub) set(page upstream.Page[user.User], err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.page = page
	f.err = err
}

func newUserCollection(f *fetchStub, r *stubReader, clk clock.Clock, stale time.Duration) *queries.Collection[user.User] {
	return queries.NewCollection(resource.KindUser, stale, clk, r, f.fetch, slog.Default())
}

func upstreamPage(users ...user.User) upstream.Page[user.User] {
	return upstream.Page[user.User]{Records: users, TotalCount: len(users)}
}

func TestCollectionGet(t *testing.T) {
	ctx := context.Background()
	alice := builder.NewUserBuilder().With(func(b *builder.UserBuilder) { b.ID = 1; b.Name = "Alice" }).Build()

	t.Run("a fresh snapshot is served without refetching", func(t *testing.T) {
		clk := clock.NewMockClock(time.Now())
		f := &fetchStub{}
		f.set(upstreamPage(alice), nil)
		col := newUserCollection(f, &stubReader{}, clk, time.Minute)

		_, err := col.Get(ctx, queries.SubKeyAll)
		require.NoError(t, err)

		clk.Add(30 * time.Second)
		snap, err := col.Get(ctx, queries.SubKeyAll)
		require.NoError(t, err)
		assert.Equal(t, int64(1), f.calls.Load())
		assert.Equal(t, queries.SourceUpstream, snap.Source)
		assert.Equal(t, 1, snap.TotalCount)
	})

	t.Run("a stale snapshot is refetched", func(t *testing.T) {
		clk := clock.NewMockClock(time.Now())
		f := &fetchStub{}
		f.set(upstreamPage(alice), nil)
		col := newUserCollection(f, &stubReader{}, clk, time.Minute)

		_, err := col.Get(ctx, queries.SubKeyAll)
		require.NoError(t, err)

		clk.Add(61 * time.Second)
		_, err = col.Get(ctx, queries.SubKeyAll)
		require.NoError(t, err)
		assert.Equal(t, int64(2), f.calls.Load())
	})

	t.Run("first fetch of a key propagates the error", func(t *testing.T) {
		clk := clock.NewMockClock(time.Now())
		f := &fetchStub{}
		f.set(upstream.Page[user.User]{}, assert.AnError)
		col := newUserCollection(f, &stubReader{}, clk, time.Minute)

		_, err := col.Get(ctx, queries.SubKeyAll)
		assert.Error(t, err)
	})

	t.Run("failed refresh keeps serving the last snapshot", func(t *testing.T) {
		clk := clock.NewMockClock(time.Now())
		f := &fetchStub{}
		f.set(upstreamPage(alice), nil)
		col := newUserCollection(f, &stubReader{}, clk, time.Minute)

		first, err := col.Get(ctx, queries.SubKeyAll)
		require.NoError(t, err)

		f.set(upstream.Page[user.User]{}, assert.AnError)
		clk.Add(2 * time.Minute)

		snap, err := col.Get(ctx, queries.SubKeyAll)
		require.NoError(t, err)
		assert.Equal(t, first.FetchedAt, snap.FetchedAt)
		assert.Equal(t, first.Records, snap.Records)
	})

	t.Run("invalidate forces a refetch before the window closes", func(t *testing.T) {
		clk := clock.NewMockClock(time.Now())
		f := &fetchStub{}
		f.set(upstreamPage(alice), nil)
		col := newUserCollection(f, &stubReader{}, clk, time.Minute)

		_, err := col.Get(ctx, queries.SubKeyAll)
		require.NoError(t, err)

		col.Invalidate(queries.SubKeyAll)
		_, err = col.Get(ctx, queries.SubKeyAll)
		require.NoError(t, err)
		assert.Equal(t, int64(2), f.calls.Load())
	})

	t.Run("sub-keys are cached independently", func(t *testing.T) {
		clk := clock.NewMockClock(time.Now())
		f := &fetchStub{}
		f.set(upstreamPage(alice), nil)
		col := newUserCollection(f, &stubReader{}, clk, time.Minute)

		_, err := col.Get(ctx, queries.SubKeyAll)
		require.NoError(t, err)
		_, err = col.Get(ctx, queries.SubKeyUser(7))
		require.NoError(t, err)
		assert.Equal(t, int64(2), f.calls.Load())

		// both fresh now
		_, _ = col.Get(ctx, queries.SubKeyAll)
		_, _ = col.Get(ctx, queries.SubKeyUser(7))
		assert.Equal(t, int64(2), f.calls.Load())
	})

	t.Run("fallback entries mark the snapshot merged and extend the total", func(t *testing.T) {
		clk := clock.NewMockClock(time.Now())
		f := &fetchStub{}
		f.set(upstreamPage(alice), nil)
		local := builder.NewUserBuilder().With(func(b *builder.UserBuilder) { b.ID = 999001; b.Name = "Local" })
		reader := &stubReader{entries: []fallback.Entry{local.BuildEntry(fallback.OriginLocalCreate, 1)}}
		col := newUserCollection(f, reader, clk, time.Minute)

		snap, err := col.Get(ctx, queries.SubKeyAll)
		require.NoError(t, err)
		assert.Equal(t, queries.SourceMerged, snap.Source)
		assert.Equal(t, 2, snap.TotalCount)
		assert.Equal(t, fallback.OriginLocalCreate, snap.LocalIDs[999001])
	})
}

func TestCollectionCoalescing(t *testing.T) {
	ctx := context.Background()
	alice := builder.NewUserBuilder().With(func(b *builder.UserBuilder) { b.ID = 1 }).Build()

	clk := clock.NewMockClock(time.Now())
	f := &fetchStub{block: make(chan struct{})}
	f.set(upstreamPage(alice), nil)
	col := newUserCollection(f, &stubReader{}, clk, time.Minute)

	const concurrent = 8
	var wg sync.WaitGroup
	errs := make([]error, concurrent)
	for i := 0; i < concurrent; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = col.Get(ctx, queries.SubKeyAll)
		}(i)
	}

	// Let the goroutines pile onto the in-flight fetch, then release it.
	time.Sleep(50 * time.Millisecond)
	close(f.block)
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int64(1), f.calls.Load(), "concurrent gets should share one fetch")
}

func TestCollectionRefetchNow(t *testing.T) {
	ctx := context.Background()
	alice := builder.NewUserBuilder().With(func(b *builder.UserBuilder) { b.ID = 1; b.Name = "Alice" }).Build()

	clk := clock.NewMockClock(time.Now())
	f := &fetchStub{}
	f.set(upstreamPage(alice), nil)
	col := newUserCollection(f, &stubReader{}, clk, time.Minute)

	_, err := col.Get(ctx, queries.SubKeyAll)
	require.NoError(t, err)

	renamed := alice
	renamed.Name = "Alice v2"
	f.set(upstreamPage(renamed), nil)

	snap, err := col.RefetchNow(ctx, queries.SubKeyAll)
	require.NoError(t, err)
	require.Len(t, snap.Records, 1)
	assert.Equal(t, "Alice v2", snap.Records[0].Name)
	assert.Equal(t, int64(2), f.calls.Load())
}
