package queries

import (
	"context"

	"roomstay-admin/internal/domain/booking"
	"roomstay-admin/internal/domain/location"
	"roomstay-admin/internal/domain/room"
	"roomstay-admin/internal/domain/user"
	"roomstay-admin/internal/fallback"
)

// StatsView is the admin dashboard headline: collection sizes plus how
// many records exist only locally.
type StatsView struct {
	Users     int `json:"users"`
	Rooms     int `json:"rooms"`
	Locations int `json:"locations"`
	Bookings  int `json:"bookings"`
	LocalOnly int `json:"localOnly"`
}

type DashboardQueries interface {
	Stats(ctx context.Context) (*StatsView, error)
}

type dashboardQueriesImpl struct {
	users     *Collection[user.User]
	rooms     *Collection[room.Room]
	locations *Collection[location.Location]
	bookings  *Collection[booking.Booking]
}

func NewDashboardQueries(
	users *Collection[user.User],
	rooms *Collection[room.Room],
	locations *Collection[location.Location],
	bookings *Collection[booking.Booking],
) DashboardQueries {
	return &dashboardQueriesImpl{users: users, rooms: rooms, locations: locations, bookings: bookings}
}

// Stats rides the same caches the list views use; a dashboard load
// costs no extra upstream calls once the collections are warm.
func (q *dashboardQueriesImpl) Stats(ctx context.Context) (*StatsView, error) {
	stats := &StatsView{}

	us, err := q.users.Get(ctx, SubKeyAll)
	if err != nil {
		return nil, err
	}
	stats.Users = len(us.Records)
	stats.LocalOnly += countLocalCreates(us.LocalIDs)

	rs, err := q.rooms.Get(ctx, SubKeyAll)
	if err != nil {
		return nil, err
	}
	stats.Rooms = len(rs.Records)
	stats.LocalOnly += countLocalCreates(rs.LocalIDs)

	ls, err := q.locations.Get(ctx, SubKeyAll)
	if err != nil {
		return nil, err
	}
	stats.Locations = len(ls.Records)
	stats.LocalOnly += countLocalCreates(ls.LocalIDs)

	bs, err := q.bookings.Get(ctx, SubKeyAll)
	if err != nil {
		return nil, err
	}
	stats.Bookings = len(bs.Records)
	stats.LocalOnly += countLocalCreates(bs.LocalIDs)

	return stats, nil
}

// countLocalCreates counts records that exist only in the local store.
// Local edits overlay upstream-owned records and are not "local only".
func countLocalCreates(ids map[int64]fallback.Origin) int {
	n := 0
	for _, origin := range ids {
		if origin == fallback.OriginLocalCreate {
			n++
		}
	}
	return n
}
