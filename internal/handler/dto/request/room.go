package request

import (
	"roomstay-admin/internal/domain/room"
)

type RoomRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Guests      int     `json:"guests" binding:"required,min=1"`
	Bedrooms    int     `json:"bedrooms"`
	Beds        int     `json:"beds"`
	Bathrooms   int     `json:"bathrooms"`
	Price       float64 `json:"price" binding:"min=0"`
	Washer      bool    `json:"washer"`
	Iron        bool    `json:"iron"`
	TV          bool    `json:"tv"`
	AirCon      bool    `json:"airCon"`
	WiFi        bool    `json:"wifi"`
	Kitchen     bool    `json:"kitchen"`
	Parking     bool    `json:"parking"`
	Pool        bool    `json:"pool"`
	LocationID  int64   `json:"locationId" binding:"required"`
}

func (r RoomRequest) ToDomain() room.Room {
	return room.Room{
		Name:        r.Name,
		Description: r.Description,
		Guests:      r.Guests,
		Bedrooms:    r.Bedrooms,
		Beds:        r.Beds,
		Bathrooms:   r.Bathrooms,
		Price:       r.Price,
		Washer:      r.Washer,
		Iron:        r.Iron,
		TV:          r.TV,
		AirCon:      r.AirCon,
		WiFi:        r.WiFi,
		Kitchen:     r.Kitchen,
		Parking:     r.Parking,
		Pool:        r.Pool,
		LocationID:  r.LocationID,
	}
}
