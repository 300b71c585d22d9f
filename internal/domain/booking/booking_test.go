//go:build unit

package booking_test

import (
	"testing"
	"time"

	"roomstay-admin/internal/domain/booking"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	checkIn := time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)
	valid := booking.Booking{
		RoomID:     5,
		UserID:     3,
		CheckIn:    checkIn,
		CheckOut:   checkIn.AddDate(0, 0, 2),
		GuestCount: 2,
	}

	t.Run("a sane stay passes", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("check-out before check-in", func(t *testing.T) {
		b := valid
		b.CheckOut = checkIn.AddDate(0, 0, -1)
		assert.ErrorIs(t, b.Validate(), booking.ErrInvalidStay)
	})

	t.Run("zero-length stay", func(t *testing.T) {
		b := valid
		b.CheckOut = b.CheckIn
		assert.ErrorIs(t, b.Validate(), booking.ErrInvalidStay)
	})

	t.Run("no guests", func(t *testing.T) {
		b := valid
		b.GuestCount = 0
		assert.ErrorIs(t, b.Validate(), booking.ErrInvalidGuests)
	})
}

func TestFilterField(t *testing.T) {
	b := booking.Booking{ID: 11, RoomID: 5, UserID: 3}

	room, ok := b.FilterField("roomId")
	assert.True(t, ok)
	assert.Equal(t, "5", room)

	user, ok := b.FilterField("userId")
	assert.True(t, ok)
	assert.Equal(t, "3", user)

	_, ok = b.FilterField("guestCount")
	assert.False(t, ok)
}
