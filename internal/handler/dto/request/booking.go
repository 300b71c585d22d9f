package request

import (
	"time"

	"roomstay-admin/internal/domain/booking"
)

type BookingRequest struct {
	RoomID     int64     `json:"roomId" binding:"required"`
	UserID     int64     `json:"userId" binding:"required"`
	CheckIn    time.Time `json:"checkIn" binding:"required"`
	CheckOut   time.Time `json:"checkOut" binding:"required"`
	GuestCount int       `json:"guestCount" binding:"required,min=1"`
}

func (r BookingRequest) ToDomain() booking.Booking {
	return booking.Booking{
		RoomID:     r.RoomID,
		UserID:     r.UserID,
		CheckIn:    r.CheckIn,
		CheckOut:   r.CheckOut,
		GuestCount: r.GuestCount,
	}
}
