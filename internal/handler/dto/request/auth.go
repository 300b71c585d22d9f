package request

import (
	"roomstay-admin/internal/domain/user"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	Birthday string `json:"birthday"`
	Gender   bool   `json:"gender"`
}

func (r RegisterRequest) ToDomain() user.User {
	return user.User{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Phone:    r.Phone,
		Birthday: r.Birthday,
		Gender:   r.Gender,
		Role:     user.RoleUser,
	}
}
