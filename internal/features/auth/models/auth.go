package models

import usermodels "cantine-backend/internal/features/user/models"

// RegisterInput creates a new account. Email verification is out of scope:
// accounts start unverified.
type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginInput authenticates an existing account.
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the session token and the account it belongs to.
type AuthResponse struct {
	Token string                   `json:"token"`
	User  *usermodels.UserResponse `json:"user"`
}
