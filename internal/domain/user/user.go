package user

import (
	"strconv"
	"strings"

	"roomstay-admin/internal/pkg/errs"
)

var (
	ErrInvalidEmail = errs.New("invalid email")
	ErrInvalidName  = errs.New("name is required")
	ErrInvalidRole  = errs.New("invalid role")
)

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User mirrors the upstream user schema. Password is write-only: it is
// sent on create and never echoed back in responses.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Birthday string `json:"birthday"`
	Gender   bool   `json:"gender"`
	Role     string `json:"role"`
	Password string `json:"password,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

func (u User) RecordID() int64 { return u.ID }

func (u User) SearchText() []string {
	return []string{u.Name, u.Email, u.Phone}
}

func (u User) FilterField(name string) (string, bool) {
	switch name {
	case "role":
		return u.Role, true
	case "gender":
		return strconv.FormatBool(u.Gender), true
	}
	return "", false
}

func (u User) WithID(id int64) User {
	u.ID = id
	return u
}

// CreateBody coerces the record into the exact shape the upstream
// expects for a create: id must be 0 and optional fields present.
func (u User) CreateBody() User {
	u.ID = 0
	if u.Role == "" {
		u.Role = RoleUser
	}
	return u
}

// UpdateBody merges the target id into the payload body; the upstream
// requires the id in both the path and the body.
func (u User) UpdateBody(id int64) User {
	u.ID = id
	u.Password = "" // never resent on update
	return u
}

func (u User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrInvalidName
	}
	if !strings.Contains(u.Email, "@") {
		return ErrInvalidEmail
	}
	if u.Role != "" && u.Role != RoleAdmin && u.Role != RoleUser {
		return ErrInvalidRole
	}
	return nil
}
