//go:build unit

package builder

import (
	"encoding/json"

	"roomstay-admin/internal/domain/resource"
	"roomstay-admin/internal/domain/room"
	"roomstay-admin/internal/fallback"
)

type RoomBuilder struct {
	ID         int64
	Name       string
	Guests     int
	Price      float64
	WiFi       bool
	LocationID int64
}

func NewRoomBuilder() *RoomBuilder {
	return &RoomBuilder{
		ID:         10,
		Name:       "Seaside Suite",
		Guests:     2,
		Price:      120,
		WiFi:       true,
		LocationID: 1,
	}
}

func (b *RoomBuilder) With(mutate func(*RoomBuilder)) *RoomBuilder {
	mutate(b)
	return b
}

func (b *RoomBuilder) Build() room.Room {
	return room.Room{
		ID:         b.ID,
		Name:       b.Name,
		Guests:     b.Guests,
		Price:      b.Price,
		WiFi:       b.WiFi,
		LocationID: b.LocationID,
	}
}

func (b *RoomBuilder) BuildEntry(origin fallback.Origin, position int64) fallback.Entry {
	raw, _ := json.Marshal(b.Build())
	return fallback.Entry{
		Resource: resource.KindRoom,
		ID:       b.ID,
		Origin:   origin,
		Payload:  raw,
		Position: position,
	}
}
