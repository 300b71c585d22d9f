//go:build unit

package builder

import (
	"encoding/json"

	"roomstay-admin/internal/domain/resource"
	"roomstay-admin/internal/domain/user"
	"roomstay-admin/internal/fallback"
)

type UserBuilder struct {
	ID       int64
	Name     string
	Email    string
	Phone    string
	Birthday string
	Gender   bool
	Role     string
	Password string
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:       1,
		Name:     "Taro Yamada",
		Email:    "taro@example.com",
		Phone:    "090-0000-0001",
		Birthday: "1990-01-01",
		Gender:   true,
		Role:     user.RoleUser,
	}
}

func (b *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(b)
	return b
}

func (b *UserBuilder) Build() user.User {
	return user.User{
		ID:       b.ID,
		Name:     b.Name,
		Email:    b.Email,
		Phone:    b.Phone,
		Birthday: b.Birthday,
		Gender:   b.Gender,
		Role:     b.Role,
		Password: b.Password,
	}
}

// BuildEntry persists the user shape as a fallback entry, the form the
// merge layer consumes.
func (b *UserBuilder) BuildEntry(origin fallback.Origin, position int64) fallback.Entry {
	raw, _ := json.Marshal(b.Build())
	return fallback.Entry{
		Resource: resource.KindUser,
		ID:       b.ID,
		Origin:   origin,
		Payload:  raw,
		Position: position,
	}
}
