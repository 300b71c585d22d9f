//go:build unit

package commands_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"roomstay-admin/internal/domain/resource"
	"roomstay-admin/internal/domain/user"
	"roomstay-admin/internal/fallback"
	"roomstay-admin/internal/pkg/errs"
	"roomstay-admin/internal/upstream"
	"roomstay-admin/internal/usecase/commands"
	"roomstay-admin/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory stand-in for the sqlite fallback store.
type memStore struct {
	mu      sync.Mutex
	entries map[int64]fallback.Entry
	nextID  int64
}

func newMemStore() *memStore {
	return &memStore{entries: map[int64]fallback.Entry{}, nextID: 999000}
}

func (s *memStore) Get(_ context.Context, _ resource.Kind, id int64) (*fallback.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (s *memStore) Upsert(_ context.Context, kind resource.Kind, id int64, origin fallback.Origin, payload json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = fallback.Entry{Resource: kind, ID: id, Origin: origin, Payload: payload}
	return nil
}

func (s *memStore) Remove(_ context.Context, _ resource.Kind, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

func (s *memStore) NextLocalID(_ context.Context, _ resource.Kind) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	return s.nextID, nil
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *memStore) seed(t *testing.T, e fallback.Entry) {
	t.Helper()
	require.NoError(t, s.Upsert(context.Background(), e.Resource, e.ID, e.Origin, e.Payload))
}

// stubWriter scripts the upstream's answers.
type stubWriter struct {
	createRec user.User
	createErr error
	updateRec user.User
	updateErr error
	deleteErr error

	calls   atomic.Int64
	block   chan struct{} // when non-nil, calls wait for it
	entered chan struct{} // closed once a call is in flight
	once    sync.Once
}

func (w *stubWriter) enter() {
	w.calls.Add(1)
	if w.entered != nil {
		w.once.Do(func() { close(w.entered) })
	}
	if w.block != nil {
		<-w.block
	}
}

func (w *stubWriter) Create(context.Context, user.User) (user.User, error) {
	w.enter()
	return w.createRec, w.createErr
}

func (w *stubWriter) Update(context.Context, int64, user.User) (user.User, error) {
	w.enter()
	return w.updateRec, w.updateErr
}

func (w *stubWriter) Delete(context.Context, int64) error {
	w.enter()
	return w.deleteErr
}

func forbidden() error {
	return upstream.WrapAPIErr(slog.Default(), upstream.KindForbidden, "you are not the owner", nil)
}

func newTestCoordinator(w *stubWriter, s *memStore, refreshes *atomic.Int64) *commands.Coordinator[user.User] {
	refresh := func(context.Context) error {
		if refreshes != nil {
			refreshes.Add(1)
		}
		return nil
	}
	return commands.NewCoordinator[user.User](resource.KindUser, w, s, refresh, slog.Default())
}

func TestCoordinatorCreate(t *testing.T) {
	ctx := context.Background()
	payload := builder.NewUserBuilder().With(func(b *builder.UserBuilder) { b.ID = 0 }).Build()

	t.Run("upstream success settles and refetches once", func(t *testing.T) {
		created := builder.NewUserBuilder().With(func(b *builder.UserBuilder) { b.ID = 42 }).Build()
		var refreshes atomic.Int64
		co := newTestCoordinator(&stubWriter{createRec: created}, newMemStore(), &refreshes)

		res, err := co.Create(ctx, payload)
		require.NoError(t, err)
		assert.Equal(t, int64(42), res.Record.ID)
		assert.False(t, res.LocalOnly)
		assert.Equal(t, int64(1), refreshes.Load())
	})

	t.Run("forbidden create recovers into the fallback store", func(t *testing.T) {
		store := newMemStore()
		var refreshes atomic.Int64
		co := newTestCoordinator(&stubWriter{createErr: forbidden()}, store, &refreshes)

		res, err := co.Create(ctx, payload)
		require.NoError(t, err)
		assert.True(t, res.LocalOnly)
		assert.Equal(t, int64(999001), res.Record.ID)
		assert.Equal(t, int64(1), refreshes.Load())

		entry, err := store.Get(ctx, resource.KindUser, 999001)
		require.NoError(t, err)
		require.NotNil(t, entry)
		assert.Equal(t, fallback.OriginLocalCreate, entry.Origin)

		var persisted user.User
		require.NoError(t, json.Unmarshal(entry.Payload, &persisted))
		assert.Equal(t, int64(999001), persisted.ID)
	})

	t.Run("local ids are monotonic across recovered creates", func(t *testing.T) {
		co := newTestCoordinator(&stubWriter{createErr: forbidden()}, newMemStore(), nil)

		first, err := co.Create(ctx, payload)
		require.NoError(t, err)
		second, err := co.Create(ctx, payload)
		require.NoError(t, err)
		assert.Equal(t, first.Record.ID+1, second.Record.ID)
	})

	t.Run("validation failure never reaches the upstream", func(t *testing.T) {
		invalid := builder.NewUserBuilder().With(func(b *builder.UserBuilder) { b.Name = "  " }).Build()
		w := &stubWriter{createErr: assert.AnError}
		co := newTestCoordinator(w, newMemStore(), nil)

		_, err := co.Create(ctx, invalid)
		assert.ErrorIs(t, err, errs.ErrDomainValidation)
		assert.Equal(t, int64(0), w.calls.Load())
	})

	t.Run("non-forbidden upstream error is fatal", func(t *testing.T) {
		serverErr := upstream.WrapAPIErr(slog.Default(), upstream.KindServer, "boom", nil)
		store := newMemStore()
		var refreshes atomic.Int64
		co := newTestCoordinator(&stubWriter{createErr: serverErr}, store, &refreshes)

		_, err := co.Create(ctx, payload)
		assert.True(t, upstream.IsKind(err, upstream.KindServer))
		assert.Equal(t, int64(0), refreshes.Load())
		assert.Equal(t, 0, store.count())
	})
}

func TestCoordinatorUpdate(t *testing.T) {
	ctx := context.Background()
	payload := builder.NewUserBuilder().With(func(b *builder.UserBuilder) { b.Name = "Edited" }).Build()

	t.Run("upstream success drops a superseded overlay entry", func(t *testing.T) {
		store := newMemStore()
		stale := builder.NewUserBuilder().With(func(b *builder.UserBuilder) { b.ID = 7 })
		store.seed(t, stale.BuildEntry(fallback.OriginLocalEdit, 1))

		co := newTestCoordinator(&stubWriter{updateRec: payload.WithID(7)}, store, nil)

		res, err := co.Update(ctx, 7, payload)
		require.NoError(t, err)
		assert.False(t, res.LocalOnly)

		left, err := store.Get(ctx, resource.KindUser, 7)
		require.NoError(t, err)
		assert.Nil(t, left)
	})

	t.Run("a locally-created record is edited without an upstream call", func(t *testing.T) {
		store := newMemStore()
		local := builder.NewUserBuilder().With(func(b *builder.UserBuilder) { b.ID = 999001 })
		store.seed(t, local.BuildEntry(fallback.OriginLocalCreate, 1))

		w := &stubWriter{updateErr: assert.AnError}
		co := newTestCoordinator(w, store, nil)

		res, err := co.Update(ctx, 999001, payload)
		require.NoError(t, err)
		assert.True(t, res.LocalOnly)
		assert.Equal(t, "Edited", res.Record.Name)
		assert.Equal(t, int64(0), w.calls.Load())

		after, err := store.Get(ctx, resource.KindUser, 999001)
		require.NoError(t, err)
		require.NotNil(t, after)
		assert.Equal(t, fallback.OriginLocalCreate, after.Origin, "origin tag survives local edits")
	})

	t.Run("forbidden update of an upstream-owned record surfaces", func(t *testing.T) {
		store := newMemStore()
		var refreshes atomic.Int64
		co := newTestCoordinator(&stubWriter{updateErr: forbidden()}, store, &refreshes)

		_, err := co.Update(ctx, 7, payload)
		assert.ErrorIs(t, err, errs.ErrNotOwnedByCaller)
		assert.Equal(t, int64(0), refreshes.Load(), "a fatal failure must not invalidate caches")
		assert.Equal(t, 0, store.count())
	})

	t.Run("forbidden update of an overlaid record lands in the store", func(t *testing.T) {
		store := newMemStore()
		prior := builder.NewUserBuilder().With(func(b *builder.UserBuilder) { b.ID = 7 })
		store.seed(t, prior.BuildEntry(fallback.OriginLocalEdit, 1))

		co := newTestCoordinator(&stubWriter{updateErr: forbidden()}, store, nil)

		res, err := co.Update(ctx, 7, payload)
		require.NoError(t, err)
		assert.True(t, res.LocalOnly)

		after, err := store.Get(ctx, resource.KindUser, 7)
		require.NoError(t, err)
		require.NotNil(t, after)
		assert.Equal(t, fallback.OriginLocalEdit, after.Origin)

		var persisted user.User
		require.NoError(t, json.Unmarshal(after.Payload, &persisted))
		assert.Equal(t, "Edited", persisted.Name)
	})
}

func TestCoordinatorDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("a locally-created record is removed without an upstream call", func(t *testing.T) {
		store := newMemStore()
		local := builder.NewUserBuilder().With(func(b *builder.UserBuilder) { b.ID = 999001 })
		store.seed(t, local.BuildEntry(fallback.OriginLocalCreate, 1))

		w := &stubWriter{deleteErr: assert.AnError}
		co := newTestCoordinator(w, store, nil)

		require.NoError(t, co.Delete(ctx, 999001))
		assert.Equal(t, 0, store.count())
		assert.Equal(t, int64(0), w.calls.Load())
	})

	t.Run("forbidden delete of an upstream-owned record surfaces", func(t *testing.T) {
		co := newTestCoordinator(&stubWriter{deleteErr: forbidden()}, newMemStore(), nil)
		assert.ErrorIs(t, co.Delete(ctx, 7), errs.ErrNotOwnedByCaller)
	})

	t.Run("forbidden delete of an overlaid record drops the overlay", func(t *testing.T) {
		store := newMemStore()
		prior := builder.NewUserBuilder().With(func(b *builder.UserBuilder) { b.ID = 7 })
		store.seed(t, prior.BuildEntry(fallback.OriginLocalEdit, 1))

		co := newTestCoordinator(&stubWriter{deleteErr: forbidden()}, store, nil)

		require.NoError(t, co.Delete(ctx, 7))
		assert.Equal(t, 0, store.count())
	})

	t.Run("successful delete clears any leftover overlay", func(t *testing.T) {
		store := newMemStore()
		prior := builder.NewUserBuilder().With(func(b *builder.UserBuilder) { b.ID = 7 })
		store.seed(t, prior.BuildEntry(fallback.OriginLocalEdit, 1))

		co := newTestCoordinator(&stubWriter{}, store, nil)

		require.NoError(t, co.Delete(ctx, 7))
		assert.Equal(t, 0, store.count())
	})
}

func TestCoordinatorDoubleSubmit(t *testing.T) {
	ctx := context.Background()
	payload := builder.NewUserBuilder().With(func(b *builder.UserBuilder) { b.ID = 0 }).Build()

	w := &stubWriter{
		createRec: payload.WithID(42),
		block:     make(chan struct{}),
		entered:   make(chan struct{}),
	}
	co := newTestCoordinator(w, newMemStore(), nil)

	done := make(chan error, 1)
	go func() {
		_, err := co.Create(ctx, payload)
		done <- err
	}()
	<-w.entered

	_, err := co.Create(ctx, payload)
	assert.ErrorIs(t, err, errs.ErrMutationInFlight)

	close(w.block)
	require.NoError(t, <-done)

	// The intent is available again once the first submit settles.
	w.block = nil
	_, err = co.Create(ctx, payload)
	require.NoError(t, err)
}

func TestCoordinatorAssets(t *testing.T) {
	ctx := context.Background()
	payload := builder.NewUserBuilder().With(func(b *builder.UserBuilder) { b.ID = 0 }).Build()

	newAsset := func() *commands.Asset {
		return &commands.Asset{Filename: "avatar.png", Content: strings.NewReader("png-bytes")}
	}

	t.Run("upload failure surfaces as a warning, never an error", func(t *testing.T) {
		created := payload.WithID(42)
		co := newTestCoordinator(&stubWriter{createRec: created}, newMemStore(), nil)

		failing := func(context.Context, int64, string, io.Reader) (user.User, error) {
			var zero user.User
			return zero, assert.AnError
		}

		res, err := co.CreateWithAsset(ctx, payload, failing, newAsset())
		require.NoError(t, err)
		assert.ErrorIs(t, res.Warning, errs.ErrAssetUploadFailed)
		assert.Equal(t, int64(42), res.Record.ID, "the settled create must stand")
	})

	t.Run("local-only create never attempts the upload", func(t *testing.T) {
		co := newTestCoordinator(&stubWriter{createErr: forbidden()}, newMemStore(), nil)

		called := false
		upload := func(context.Context, int64, string, io.Reader) (user.User, error) {
			called = true
			var zero user.User
			return zero, nil
		}

		res, err := co.CreateWithAsset(ctx, payload, upload, newAsset())
		require.NoError(t, err)
		assert.False(t, called)
		assert.True(t, res.LocalOnly)
		assert.ErrorIs(t, res.Warning, errs.ErrAssetUploadFailed)
	})

	t.Run("successful upload replaces the record", func(t *testing.T) {
		created := payload.WithID(42)
		withAvatar := created
		withAvatar.Avatar = "https://cdn.example.com/a.png"
		co := newTestCoordinator(&stubWriter{createRec: created}, newMemStore(), nil)

		var gotID int64
		upload := func(_ context.Context, id int64, _ string, _ io.Reader) (user.User, error) {
			gotID = id
			return withAvatar, nil
		}

		res, err := co.CreateWithAsset(ctx, payload, upload, newAsset())
		require.NoError(t, err)
		assert.NoError(t, res.Warning)
		assert.Equal(t, int64(42), gotID)
		assert.Equal(t, withAvatar.Avatar, res.Record.Avatar)
	})

	t.Run("update with asset carries a warning on upload failure", func(t *testing.T) {
		updated := payload.WithID(7)
		co := newTestCoordinator(&stubWriter{updateRec: updated}, newMemStore(), nil)

		failing := func(context.Context, int64, string, io.Reader) (user.User, error) {
			var zero user.User
			return zero, assert.AnError
		}

		res, err := co.UpdateWithAsset(ctx, 7, payload, failing, newAsset())
		require.NoError(t, err)
		assert.ErrorIs(t, res.Warning, errs.ErrAssetUploadFailed)
		assert.Equal(t, int64(7), res.Record.ID)
	})

	t.Run("standalone upload failure is marked", func(t *testing.T) {
		co := newTestCoordinator(&stubWriter{}, newMemStore(), nil)

		failing := func(context.Context, int64, string, io.Reader) (user.User, error) {
			var zero user.User
			return zero, assert.AnError
		}

		_, err := co.UploadAsset(ctx, 42, failing, commands.Asset{Filename: "a.png", Content: strings.NewReader("x")})
		assert.ErrorIs(t, err, errs.ErrAssetUploadFailed)
	})
}
