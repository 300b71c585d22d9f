package response

import (
	"time"

	"roomstay-admin/internal/domain/booking"
	"roomstay-admin/internal/domain/location"
	"roomstay-admin/internal/domain/resource"
	"roomstay-admin/internal/domain/room"
	"roomstay-admin/internal/domain/user"
	"roomstay-admin/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

// UserResponse drops Password on the way out; the upstream echoes it
// on some create paths and it must never reach a client of ours.
type UserResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Birthday  string `json:"birthday"`
	Gender    bool   `json:"gender"`
	Role      string `json:"role"`
	Avatar    string `json:"avatar,omitempty"`
	LocalOnly bool   `json:"localOnly"`
}

type RoomResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Guests      int     `json:"guests"`
	Bedrooms    int     `json:"bedrooms"`
	Beds        int     `json:"beds"`
	Bathrooms   int     `json:"bathrooms"`
	Price       float64 `json:"price"`
	Washer      bool    `json:"washer"`
	Iron        bool    `json:"iron"`
	TV          bool    `json:"tv"`
	AirCon      bool    `json:"airCon"`
	WiFi        bool    `json:"wifi"`
	Kitchen     bool    `json:"kitchen"`
	Parking     bool    `json:"parking"`
	Pool        bool    `json:"pool"`
	LocationID  int64   `json:"locationId"`
	Image       string  `json:"image"`
	LocalOnly   bool    `json:"localOnly"`
}

type LocationResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Province  string `json:"province"`
	Country   string `json:"country"`
	Image     string `json:"image"`
	LocalOnly bool   `json:"localOnly"`
}

type BookingResponse struct {
	ID         int64     `json:"id"`
	RoomID     int64     `json:"roomId"`
	UserID     int64     `json:"userId"`
	CheckIn    time.Time `json:"checkIn"`
	CheckOut   time.Time `json:"checkOut"`
	GuestCount int       `json:"guestCount"`
	LocalOnly  bool      `json:"localOnly"`
}

func FromUser(u user.User, localOnly bool) UserResponse {
	var resp UserResponse
	_ = copier.Copy(&resp, &u)
	resp.LocalOnly = localOnly
	return resp
}

func FromRoom(r room.Room, localOnly bool) RoomResponse {
	var resp RoomResponse
	_ = copier.Copy(&resp, &r)
	resp.LocalOnly = localOnly
	return resp
}

func FromLocation(l location.Location, localOnly bool) LocationResponse {
	var resp LocationResponse
	_ = copier.Copy(&resp, &l)
	resp.LocalOnly = localOnly
	return resp
}

func FromBooking(b booking.Booking, localOnly bool) BookingResponse {
	var resp BookingResponse
	_ = copier.Copy(&resp, &b)
	resp.LocalOnly = localOnly
	return resp
}

// ListResponse is the shared list-page envelope: the resolved rows plus
// the pagination window the view renders.
type ListResponse[R any] struct {
	Rows       []R                `json:"rows"`
	PageIndex  int                `json:"pageIndex"`
	PageSize   int                `json:"pageSize"`
	TotalRow   int                `json:"totalRow"`
	TotalPages int                `json:"totalPages"`
	Window     []queries.PageItem `json:"window"`
	FetchedAt  time.Time          `json:"fetchedAt"`
	Source     queries.Source     `json:"source"`
}

// FromListPage converts one resolved page, tagging each row that the
// snapshot knows to be locally-originated.
func FromListPage[T resource.Record, R any](
	p *queries.ListPage[T],
	conv func(T, bool) R,
) ListResponse[R] {
	rows := make([]R, len(p.Rows))
	for i, rec := range p.Rows {
		_, localOnly := p.LocalIDs[rec.RecordID()]
		rows[i] = conv(rec, localOnly)
	}
	return ListResponse[R]{
		Rows:       rows,
		PageIndex:  p.PageIndex,
		PageSize:   p.PageSize,
		TotalRow:   p.TotalRow,
		TotalPages: p.TotalPages,
		Window:     p.Window,
		FetchedAt:  p.FetchedAt,
		Source:     p.Source,
	}
}
