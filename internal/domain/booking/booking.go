package booking

import (
	"strconv"
	"time"

	"roomstay-admin/internal/pkg/errs"
)

var (
	ErrInvalidStay   = errs.New("check-out must be after check-in")
	ErrInvalidGuests = errs.New("guest count must be positive")
)

type Booking struct {
	ID         int64     `json:"id"`
	RoomID     int64     `json:"roomId"`
	UserID     int64     `json:"userId"`
	CheckIn    time.Time `json:"checkIn"`
	CheckOut   time.Time `json:"checkOut"`
	GuestCount int       `json:"guestCount"`
}

func (b Booking) RecordID() int64 { return b.ID }

func (b Booking) SearchText() []string {
	return []string{
		strconv.FormatInt(b.ID, 10),
		strconv.FormatInt(b.RoomID, 10),
		strconv.FormatInt(b.UserID, 10),
	}
}

func (b Booking) FilterField(name string) (string, bool) {
	switch name {
	case "roomId":
		return strconv.FormatInt(b.RoomID, 10), true
	case "userId":
		return strconv.FormatInt(b.UserID, 10), true
	}
	return "", false
}

func (b Booking) WithID(id int64) Booking {
	b.ID = id
	return b
}

func (b Booking) CreateBody() Booking {
	b.ID = 0
	return b
}

func (b Booking) UpdateBody(id int64) Booking {
	b.ID = id
	return b
}

func (b Booking) Validate() error {
	if !b.CheckOut.After(b.CheckIn) {
		return ErrInvalidStay
	}
	if b.GuestCount <= 0 {
		return ErrInvalidGuests
	}
	return nil
}
