package room

import (
	"strconv"
	"strings"

	"roomstay-admin/internal/pkg/errs"
)

var (
	ErrInvalidName     = errs.New("room name is required")
	ErrInvalidCapacity = errs.New("guest capacity must be positive")
	ErrInvalidPrice    = errs.New("price must not be negative")
)

type Room struct {
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
}

func (r Room) RecordID() int64 { return r.ID }

func (r Room) SearchText() []string {
	return []string{r.Name, r.Description, strconv.FormatInt(r.ID, 10)}
}

func (r Room) FilterField(name string) (string, bool) {
	switch name {
	case "locationId":
		return strconv.FormatInt(r.LocationID, 10), true
	case "wifi":
		return strconv.FormatBool(r.WiFi), true
	}
	return "", false
}

func (r Room) WithID(id int64) Room {
	r.ID = id
	return r
}

const placeholderImage = "https://via.placeholder.com/300x200?text=New+Room"

// CreateBody coerces the record into the exact field set the upstream
// validates on create: id 0, every amenity flag present, image never
// empty.
func (r Room) CreateBody() Room {
	r.ID = 0
	if r.Image == "" {
		r.Image = placeholderImage
	}
	return r
}

func (r Room) UpdateBody(id int64) Room {
	r.ID = id
	return r
}

func (r Room) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrInvalidName
	}
	if r.Guests <= 0 {
		return ErrInvalidCapacity
	}
	if r.Price < 0 {
		return ErrInvalidPrice
	}
	return nil
}
