package upstream

import (
	"context"
	"fmt"
	"net/http"

	"roomstay-admin/internal/domain/booking"
)

// Bookings are caller-scoped upstream, so every call is authenticated.
type Bookings struct {
	c *Client
}

func NewBookings(c *Client) *Bookings {
	return &Bookings{c: c}
}

func (b *Bookings) List(ctx context.Context, p ListParams) (Page[booking.Booking], error) {
	return list[booking.Booking](ctx, b.c, []string{"/bookings"}, p, true)
}

func (b *Bookings) ByUser(ctx context.Context, userID int64) (Page[booking.Booking], error) {
	raw, err := b.c.do(ctx, call{method: http.MethodGet, path: fmt.Sprintf("/bookings/by-user/%d", userID), authed: true})
	if err != nil {
		return Page[booking.Booking]{}, err
	}
	return decodePage[booking.Booking](raw)
}

func (b *Bookings) Get(ctx context.Context, id int64) (booking.Booking, error) {
	return getOne[booking.Booking](ctx, b.c, []string{fmt.Sprintf("/bookings/%d", id)}, true)
}

func (b *Bookings) Create(ctx context.Context, payload booking.Booking) (booking.Booking, error) {
	return createOne[booking.Booking](ctx, b.c, []string{"/bookings"}, payload.CreateBody(), true)
}

func (b *Bookings) Update(ctx context.Context, id int64, payload booking.Booking) (booking.Booking, error) {
	return putOne[booking.Booking](ctx, b.c, fmt.Sprintf("/bookings/%d", id), payload.UpdateBody(id), true)
}

func (b *Bookings) Delete(ctx context.Context, id int64) error {
	_, err := b.c.do(ctx, call{method: http.MethodDelete, path: fmt.Sprintf("/bookings/%d", id), authed: true})
	return err
}
