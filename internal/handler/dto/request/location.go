package request

import (
	"roomstay-admin/internal/domain/location"
)

type LocationRequest struct {
	Name     string `json:"name" binding:"required"`
	Province string `json:"province" binding:"required"`
	Country  string `json:"country" binding:"required"`
	Image    string `json:"image"`
}

func (r LocationRequest) ToDomain() location.Location {
	return location.Location{
		Name:     r.Name,
		Province: r.Province,
		Country:  r.Country,
		Image:    r.Image,
	}
}
