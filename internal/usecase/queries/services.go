package queries

import (
	"context"
	"fmt"
	"strings"

	"roomstay-admin/internal/domain/booking"
	"roomstay-admin/internal/domain/location"
	"roomstay-admin/internal/domain/resource"
	"roomstay-admin/internal/domain/room"
	"roomstay-admin/internal/domain/user"
	"roomstay-admin/internal/fallback"
	"roomstay-admin/internal/pkg/errs"
	"roomstay-admin/internal/upstream"
)

func SubKeyLocation(id int64) string { return fmt.Sprintf("loc:%d", id) }
func SubKeyUser(id int64) string     { return fmt.Sprintf("user:%d", id) }

// scopedField maps a scoped sub-key onto the record field that defines
// its scope, so overlay entries outside the scope stay out of the
// merged snapshot.
func scopedField(subKey string) (field, value string, ok bool) {
	if v, ok := strings.CutPrefix(subKey, "loc:"); ok {
		return "locationId", v, true
	}
	if v, ok := strings.CutPrefix(subKey, "user:"); ok {
		return "userId", v, true
	}
	return "", "", false
}

// scopeEntries drops fallback entries that do not belong to a scoped
// sub-collection. The unscoped collection keeps everything.
func scopeEntries[T resource.Record](subKey string, entries []fallback.Entry) ([]fallback.Entry, error) {
	field, want, ok := scopedField(subKey)
	if !ok || len(entries) == 0 {
		return entries, nil
	}

	kept := make([]fallback.Entry, 0, len(entries))
	for _, e := range entries {
		rec, err := fallback.Decode[T](e)
		if err != nil {
			return nil, err
		}
		if v, ok := rec.FilterField(field); ok && v == want {
			kept = append(kept, e)
		}
	}
	return kept, nil
}

// FallbackGetter adds point lookups to the read slice of the store.
type FallbackGetter interface {
	FallbackReader
	Get(ctx context.Context, kind resource.Kind, id int64) (*fallback.Entry, error)
}

type UserQueries interface {
	List(ctx context.Context, q ListQuery) (*ListPage[user.User], error)
	Get(ctx context.Context, id int64) (user.User, bool, error)
}

type RoomQueries interface {
	List(ctx context.Context, q ListQuery) (*ListPage[room.Room], error)
	ListByLocation(ctx context.Context, locationID int64, q ListQuery) (*ListPage[room.Room], error)
	Get(ctx context.Context, id int64) (room.Room, bool, error)
}

type LocationQueries interface {
	List(ctx context.Context, q ListQuery) (*ListPage[location.Location], error)
	Get(ctx context.Context, id int64) (location.Location, bool, error)
}

type BookingQueries interface {
	List(ctx context.Context, q ListQuery) (*ListPage[booking.Booking], error)
	ListByUser(ctx context.Context, userID int64, q ListQuery) (*ListPage[booking.Booking], error)
	Get(ctx context.Context, id int64) (booking.Booking, bool, error)
}

// getRecord resolves a point lookup: a locally-originated record is
// answered from the fallback store (it does not exist upstream), and
// an upstream 404 becomes the domain's not-found. The bool reports
// whether the record came from the store rather than upstream.
func getRecord[T resource.Record](
	ctx context.Context,
	store FallbackGetter,
	kind resource.Kind,
	id int64,
	fetch func(ctx context.Context, id int64) (T, error),
) (T, bool, error) {
	var zero T
	entry, err := store.Get(ctx, kind, id)
	if err != nil {
		return zero, false, err
	}
	if entry != nil {
		rec, err := fallback.Decode[T](*entry)
		if err != nil {
			return zero, false, err
		}
		return rec, true, nil
	}

	rec, err := fetch(ctx, id)
	if err != nil {
		if upstream.IsKind(err, upstream.KindNotFound) {
			return zero, false, errs.Mark(err, errs.ErrRecordNotFound)
		}
		return zero, false, err
	}
	return rec, false, nil
}

type userQueriesImpl struct {
	col    *Collection[user.User]
	store  FallbackGetter
	client *upstream.Users
}

func NewUserQueries(col *Collection[user.User], store FallbackGetter, client *upstream.Users) UserQueries {
	return &userQueriesImpl{col: col, store: store, client: client}
}

func (q *userQueriesImpl) List(ctx context.Context, lq ListQuery) (*ListPage[user.User], error) {
	return List(ctx, q.col, SubKeyAll, lq)
}

func (q *userQueriesImpl) Get(ctx context.Context, id int64) (user.User, bool, error) {
	return getRecord(ctx, q.store, resource.KindUser, id, q.client.Get)
}

type roomQueriesImpl struct {
	col    *Collection[room.Room]
	store  FallbackGetter
	client *upstream.Rooms
}

func NewRoomQueries(col *Collection[room.Room], store FallbackGetter, client *upstream.Rooms) RoomQueries {
	return &roomQueriesImpl{col: col, store: store, client: client}
}

func (q *roomQueriesImpl) List(ctx context.Context, lq ListQuery) (*ListPage[room.Room], error) {
	return List(ctx, q.col, SubKeyAll, lq)
}

func (q *roomQueriesImpl) ListByLocation(ctx context.Context, locationID int64, lq ListQuery) (*ListPage[room.Room], error) {
	return List(ctx, q.col, SubKeyLocation(locationID), lq)
}

func (q *roomQueriesImpl) Get(ctx context.Context, id int64) (room.Room, bool, error) {
	return getRecord(ctx, q.store, resource.KindRoom, id, q.client.Get)
}

type locationQueriesImpl struct {
	col    *Collection[location.Location]
	store  FallbackGetter
	client *upstream.Locations
}

func NewLocationQueries(col *Collection[location.Location], store FallbackGetter, client *upstream.Locations) LocationQueries {
	return &locationQueriesImpl{col: col, store: store, client: client}
}

func (q *locationQueriesImpl) List(ctx context.Context, lq ListQuery) (*ListPage[location.Location], error) {
	return List(ctx, q.col, SubKeyAll, lq)
}

func (q *locationQueriesImpl) Get(ctx context.Context, id int64) (location.Location, bool, error) {
	return getRecord(ctx, q.store, resource.KindLocation, id, q.client.Get)
}

type bookingQueriesImpl struct {
	col    *Collection[booking.Booking]
	store  FallbackGetter
	client *upstream.Bookings
}

func NewBookingQueries(col *Collection[booking.Booking], store FallbackGetter, client *upstream.Bookings) BookingQueries {
	return &bookingQueriesImpl{col: col, store: store, client: client}
}

func (q *bookingQueriesImpl) List(ctx context.Context, lq ListQuery) (*ListPage[booking.Booking], error) {
	return List(ctx, q.col, SubKeyAll, lq)
}

func (q *bookingQueriesImpl) ListByUser(ctx context.Context, userID int64, lq ListQuery) (*ListPage[booking.Booking], error) {
	return List(ctx, q.col, SubKeyUser(userID), lq)
}

func (q *bookingQueriesImpl) Get(ctx context.Context, id int64) (booking.Booking, bool, error) {
	return getRecord(ctx, q.store, resource.KindBooking, id, q.client.Get)
}
