package api

import "github.com/itchan-dev/forum/shared/domain"

type UpdateUserRequest struct {
	Email    *domain.Email    `json:"email"`
	Password *domain.Password `json:"password"`
	Name     *string          `json:"name"`
	Image    *string          `json:"image"`
}

type SetAdminRequest struct {
	UserId *domain.UserId `json:"userId" validate:"required"`
	TurnOn *bool          `json:"turnon" validate:"required"`
}

type UserResponse struct {
	Id    domain.UserId `json:"id"`
	Email domain.Email  `json:"email"`
	Name  string        `json:"name"`
	Image *string       `json:"image"`
	Admin bool          `json:"admin"`
}
