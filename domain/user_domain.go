package domain

import (
	"errors"
)

var (
	MessageSuccessRegister = "Account creation successful!"
	MessageSuccessLogin    = "Login successful"

	MessageFailedRegister = "failed to create account"
	MessageFailedLogin    = "failed to login"

	ErrUsernameTaken      = errors.New("that username is taken already")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

type (
	RegisterRequest struct {
		Username string `json:"username" form:"username" validate:"required"`
		Password string `json:"password" form:"password" validate:"required"`
	}

	RegisterResponse struct {
		Username   string `json:"username"`
		PlantCount int    `json:"plantCount"`
	}

	LoginRequest struct {
		Username string `json:"username" form:"username" validate:"required"`
		Password string `json:"password" form:"password" validate:"required"`
	}

	LoginResponse struct {
		ID         string `json:"id"`
		Username   string `json:"username"`
		PlantCount int    `json:"plantCount"`
		Token      string `json:"token"`
	}

	MeResponse struct {
		ID         string `json:"id"`
		Username   string `json:"username"`
		PlantCount int    `json:"plantCount"`
	}
)
