//go:build unit

package queries_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"roomstay-admin/internal/domain/booking"
	"roomstay-admin/internal/domain/location"
	"roomstay-admin/internal/domain/resource"
	"roomstay-admin/internal/domain/room"
	"roomstay-admin/internal/domain/user"
	"roomstay-admin/internal/fallback"
	"roomstay-admin/internal/pkg/clock"
	"roomstay-admin/internal/upstream"
	"roomstay-admin/internal/usecase/queries"
	"roomstay-admin/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emptyFetch[T resource.Record]() func(context.Context, string) (upstream.Page[T], error) {
	return func(context.Context, string) (upstream.Page[T], error) {
		return upstream.Page[T]{}, nil
	}
}

// Local edits overlay records upstream already owns; only local creates
// count toward the "local only" headline.
func TestDashboardStats(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(time.Now())

	created := builder.NewUserBuilder().With(func(b *builder.UserBuilder) {
		b.ID = 999001
		b.Name = "Local Only"
	})
	edited := builder.NewUserBuilder().With(func(b *builder.UserBuilder) {
		b.ID = 1
		b.Name = "Alice (edited)"
	})

	reader := &stubReader{entries: []fallback.Entry{
		created.BuildEntry(fallback.OriginLocalCreate, 1),
		edited.BuildEntry(fallback.OriginLocalEdit, 2),
	}}

	fetchUsers := func(context.Context, string) (upstream.Page[user.User], error) {
		return upstreamPage(
			builder.NewUserBuilder().With(func(b *builder.UserBuilder) { b.ID = 1; b.Name = "Alice" }).Build(),
			builder.NewUserBuilder().With(func(b *builder.UserBuilder) { b.ID = 2; b.Name = "Bob" }).Build(),
		), nil
	}

	users := queries.NewCollection(resource.KindUser, time.Minute, clk, reader, fetchUsers, slog.Default())
	rooms := queries.NewCollection(resource.KindRoom, time.Minute, clk, &stubReader{}, emptyFetch[room.Room](), slog.Default())
	locations := queries.NewCollection(resource.KindLocation, time.Minute, clk, &stubReader{}, emptyFetch[location.Location](), slog.Default())
	bookings := queries.NewCollection(resource.KindBooking, time.Minute, clk, &stubReader{}, emptyFetch[booking.Booking](), slog.Default())

	dash := queries.NewDashboardQueries(users, rooms, locations, bookings)

	stats, err := dash.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Users, "the overlay edits Alice in place, the create appends")
	assert.Equal(t, 0, stats.Rooms)
	assert.Equal(t, 0, stats.Locations)
	assert.Equal(t, 0, stats.Bookings)
	assert.Equal(t, 1, stats.LocalOnly, "the edited record still lives upstream")
}
