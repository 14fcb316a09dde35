package api

import "github.com/itchan-dev/forum/shared/domain"

type RegisterRequest struct {
	Email    domain.Email    `json:"email" validate:"required"`
	Password domain.Password `json:"password" validate:"required"`
	Name     string          `json:"name" validate:"required"`
}

type LoginRequest struct {
	Email    domain.Email    `json:"email" validate:"required"`
	Password domain.Password `json:"password" validate:"required"`
}

// SessionResponse is returned by both login and register.
type SessionResponse struct {
	Token  string        `json:"token"`
	UserId domain.UserId `json:"userId"`
}
