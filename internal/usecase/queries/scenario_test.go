//go:build unit

package queries_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"roomstay-admin/internal/domain/resource"
	"roomstay-admin/internal/domain/room"
	"roomstay-admin/internal/fallback"
	"roomstay-admin/internal/pkg/clock"
	"roomstay-admin/internal/upstream"
	"roomstay-admin/internal/usecase/queries"
	"roomstay-admin/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// One pass through the whole read path: upstream rows, a demo room the
// store owns, merge, search, pagination.
func TestRoomListScenario(t *testing.T) {
	ctx := context.Background()

	demoBuilder := builder.NewRoomBuilder().With(func(b *builder.RoomBuilder) {
		b.ID = 999001
		b.Name = "Demo Room"
	})
	demo := demoBuilder.Build()

	store := &stubReader{entries: []fallback.Entry{
		demoBuilder.BuildEntry(fallback.OriginLocalCreate, 1),
	}}

	fetch := func(_ context.Context, _ string) (upstream.Page[room.Room], error) {
		return upstream.Page[room.Room]{
			Records: []room.Room{
				{ID: 1, Name: "Room A"},
				{ID: 2, Name: "Room B"},
			},
			TotalCount: 2,
		}, nil
	}

	col := queries.NewCollection(resource.KindRoom, time.Minute, clock.NewMockClock(time.Now()), store, fetch, slog.Default())

	t.Run("the merged list keeps upstream order and appends the demo room", func(t *testing.T) {
		page, err := queries.List(ctx, col, queries.SubKeyAll, queries.NewListQuery(10))
		require.NoError(t, err)
		require.Len(t, page.Rows, 3)
		assert.Equal(t, "Room A", page.Rows[0].Name)
		assert.Equal(t, "Room B", page.Rows[1].Name)
		assert.Equal(t, "Demo Room", page.Rows[2].Name)
		assert.Equal(t, queries.SourceMerged, page.Source)
		assert.Contains(t, page.LocalIDs, demo.ID)
	})

	t.Run("a keyword narrows the page to the demo room alone", func(t *testing.T) {
		q := queries.NewListQuery(10)
		q.SetSearchTerm("demo")

		page, err := queries.List(ctx, col, queries.SubKeyAll, q)
		require.NoError(t, err)
		require.Len(t, page.Rows, 1)
		assert.Equal(t, demo.ID, page.Rows[0].ID)
		assert.Equal(t, 1, page.TotalRow)
		assert.Equal(t, 1, page.TotalPages)
		assert.Equal(t, []queries.PageItem{{Page: 1}}, page.Window)
	})
}

// Scoped sub-collections only carry overlay entries that belong to
// their scope; the unscoped list carries them all.
func TestScopedRoomList(t *testing.T) {
	ctx := context.Background()

	inScope := builder.NewRoomBuilder().With(func(b *builder.RoomBuilder) {
		b.ID = 999001
		b.Name = "Local at Three"
		b.LocationID = 3
	})
	outOfScope := builder.NewRoomBuilder().With(func(b *builder.RoomBuilder) {
		b.ID = 999002
		b.Name = "Local at Five"
		b.LocationID = 5
	})

	store := &stubReader{entries: []fallback.Entry{
		inScope.BuildEntry(fallback.OriginLocalCreate, 1),
		outOfScope.BuildEntry(fallback.OriginLocalCreate, 2),
	}}

	fetch := func(_ context.Context, subKey string) (upstream.Page[room.Room], error) {
		if subKey == queries.SubKeyLocation(3) {
			return upstream.Page[room.Room]{
				Records:    []room.Room{{ID: 1, Name: "Room A", LocationID: 3}},
				TotalCount: 1,
			}, nil
		}
		return upstream.Page[room.Room]{
			Records: []room.Room{
				{ID: 1, Name: "Room A", LocationID: 3},
				{ID: 2, Name: "Room B", LocationID: 5},
			},
			TotalCount: 2,
		}, nil
	}

	col := queries.NewCollection(resource.KindRoom, time.Minute, clock.NewMockClock(time.Now()), store, fetch, slog.Default())

	t.Run("the location sub-collection excludes foreign local rooms", func(t *testing.T) {
		snap, err := col.Get(ctx, queries.SubKeyLocation(3))
		require.NoError(t, err)
		require.Len(t, snap.Records, 2)
		assert.Equal(t, "Room A", snap.Records[0].Name)
		assert.Equal(t, "Local at Three", snap.Records[1].Name)
		assert.Contains(t, snap.LocalIDs, int64(999001))
		assert.NotContains(t, snap.LocalIDs, int64(999002))
	})

	t.Run("the unscoped collection carries every local room", func(t *testing.T) {
		snap, err := col.Get(ctx, queries.SubKeyAll)
		require.NoError(t, err)
		require.Len(t, snap.Records, 4)
		assert.Contains(t, snap.LocalIDs, int64(999001))
		assert.Contains(t, snap.LocalIDs, int64(999002))
	})
}
