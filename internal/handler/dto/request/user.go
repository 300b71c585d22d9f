package request

import (
	"roomstay-admin/internal/domain/user"
)

type UserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Birthday string `json:"birthday"`
	Gender   bool   `json:"gender"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

func (r UserRequest) ToDomain() user.User {
	return user.User{
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		Birthday: r.Birthday,
		Gender:   r.Gender,
		Role:     r.Role,
		Password: r.Password,
	}
}

type ProfileRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Birthday string `json:"birthday"`
	Gender   bool   `json:"gender"`
}

func (r ProfileRequest) ToDomain(current user.User) user.User {
	current.Name = r.Name
	current.Email = r.Email
	current.Phone = r.Phone
	current.Birthday = r.Birthday
	current.Gender = r.Gender
	return current
}
