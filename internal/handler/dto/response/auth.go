package response

import (
	"roomstay-admin/internal/pkg/session"
)

type SessionResponse struct {
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func FromIdentity(id session.Identity) SessionResponse {
	return SessionResponse{
		UserID: id.UserID,
		Name:   id.Name,
		Email:  id.Email,
		Role:   id.Role,
	}
}
