package components

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"roomstay-admin/internal/domain/booking"
	"roomstay-admin/internal/domain/location"
	"roomstay-admin/internal/domain/resource"
	"roomstay-admin/internal/domain/room"
	"roomstay-admin/internal/domain/user"
	"roomstay-admin/internal/fallback"
	"roomstay-admin/internal/pkg/clock"
	"roomstay-admin/internal/pkg/config"
	"roomstay-admin/internal/upstream"
	"roomstay-admin/internal/usecase/commands"
	"roomstay-admin/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		NewUserCollection,
		NewRoomCollection,
		NewLocationCollection,
		NewBookingCollection,
		NewUserQueries,
		NewRoomQueries,
		NewLocationQueries,
		NewBookingQueries,
		queries.NewDashboardQueries,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		NewUserCoordinator,
		NewRoomCoordinator,
		NewLocationCoordinator,
		NewBookingCoordinator,
	),
)

// scopedID extracts the id of a scoped sub-key ("loc:12", "user:7").
func scopedID(subKey, prefix string) (int64, bool) {
	rest, ok := strings.CutPrefix(subKey, prefix)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// refreshFor is the coordinator's post-mutation hook: drop every
// snapshot of the collection and pull the unscoped one back in.
func refreshFor[T resource.Record](col *queries.Collection[T]) commands.RefreshFunc {
	return func(ctx context.Context) error {
		col.InvalidateAll()
		_, err := col.RefetchNow(ctx, queries.SubKeyAll)
		return err
	}
}

func NewUserCollection(cfg config.Config, clk clock.Clock, store *fallback.Store, client *upstream.Users, logger *slog.Logger) *queries.Collection[user.User] {
	fetch := func(ctx context.Context, _ string) (upstream.Page[user.User], error) {
		return client.List(ctx, upstream.ListParams{})
	}
	return queries.NewCollection(resource.KindUser, cfg.Cache.UserStaleTime, clk, store, fetch, logger)
}

func NewRoomCollection(cfg config.Config, clk clock.Clock, store *fallback.Store, client *upstream.Rooms, logger *slog.Logger) *queries.Collection[room.Room] {
	fetch := func(ctx context.Context, subKey string) (upstream.Page[room.Room], error) {
		if locationID, ok := scopedID(subKey, "loc:"); ok {
			return client.ByLocation(ctx, locationID)
		}
		return client.List(ctx, upstream.ListParams{})
	}
	return queries.NewCollection(resource.KindRoom, cfg.Cache.RoomStaleTime, clk, store, fetch, logger)
}

func NewLocationCollection(cfg config.Config, clk clock.Clock, store *fallback.Store, client *upstream.Locations, logger *slog.Logger) *queries.Collection[location.Location] {
	fetch := func(ctx context.Context, _ string) (upstream.Page[location.Location], error) {
		return client.List(ctx, upstream.ListParams{})
	}
	return queries.NewCollection(resource.KindLocation, cfg.Cache.LocationStaleTime, clk, store, fetch, logger)
}

func NewBookingCollection(cfg config.Config, clk clock.Clock, store *fallback.Store, client *upstream.Bookings, logger *slog.Logger) *queries.Collection[booking.Booking] {
	fetch := func(ctx context.Context, subKey string) (upstream.Page[booking.Booking], error) {
		if userID, ok := scopedID(subKey, "user:"); ok {
			return client.ByUser(ctx, userID)
		}
		return client.List(ctx, upstream.ListParams{})
	}
	return queries.NewCollection(resource.KindBooking, cfg.Cache.BookingStaleTime, clk, store, fetch, logger)
}

func NewUserQueries(col *queries.Collection[user.User], store *fallback.Store, client *upstream.Users) queries.UserQueries {
	return queries.NewUserQueries(col, store, client)
}

func NewRoomQueries(col *queries.Collection[room.Room], store *fallback.Store, client *upstream.Rooms) queries.RoomQueries {
	return queries.NewRoomQueries(col, store, client)
}

func NewLocationQueries(col *queries.Collection[location.Location], store *fallback.Store, client *upstream.Locations) queries.LocationQueries {
	return queries.NewLocationQueries(col, store, client)
}

func NewBookingQueries(col *queries.Collection[booking.Booking], store *fallback.Store, client *upstream.Bookings) queries.BookingQueries {
	return queries.NewBookingQueries(col, store, client)
}

func NewUserCoordinator(col *queries.Collection[user.User], store *fallback.Store, client *upstream.Users, logger *slog.Logger) *commands.Coordinator[user.User] {
	return commands.NewCoordinator[user.User](resource.KindUser, client, store, refreshFor(col), logger)
}

func NewRoomCoordinator(col *queries.Collection[room.Room], store *fallback.Store, client *upstream.Rooms, logger *slog.Logger) *commands.Coordinator[room.Room] {
	return commands.NewCoordinator[room.Room](resource.KindRoom, client, store, refreshFor(col), logger)
}

func NewLocationCoordinator(col *queries.Collection[location.Location], store *fallback.Store, client *upstream.Locations, logger *slog.Logger) *commands.Coordinator[location.Location] {
	return commands.NewCoordinator[location.Location](resource.KindLocation, client, store, refreshFor(col), logger)
}

func NewBookingCoordinator(col *queries.Collection[booking.Booking], store *fallback.Store, client *upstream.Bookings, logger *slog.Logger) *commands.Coordinator[booking.Booking] {
	return commands.NewCoordinator[booking.Booking](resource.KindBooking, client, store, refreshFor(col), logger)
}
