package location

import (
	"strings"

	"roomstay-admin/internal/pkg/errs"
)

var ErrInvalidName = errs.New("location name is required")

type Location struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Province string `json:"province"`
	Country  string `json:"country"`
	Image    string `json:"image"`
}

func (l Location) RecordID() int64 { return l.ID }

func (l Location) SearchText() []string {
	return []string{l.Name, l.Province, l.Country}
}

func (l Location) FilterField(name string) (string, bool) {
	switch name {
	case "country":
		return l.Country, true
	case "province":
		return l.Province, true
	}
	return "", false
}

func (l Location) WithID(id int64) Location {
	l.ID = id
	return l
}

func (l Location) CreateBody() Location {
	l.ID = 0
	return l
}

func (l Location) UpdateBody(id int64) Location {
	l.ID = id
	return l
}

func (l Location) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return ErrInvalidName
	}
	return nil
}
