package dto

import "github.com/yigit/checkmygrade/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	UserID   string `json:"userId" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string          `json:"accessToken"`
	TokenType   string          `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64           `json:"expiresIn" example:"3600"`
	UserID      string          `json:"userId" example:"ada@sjsu.edu"`
	Role        models.RoleType `json:"role" example:"student"`
}

// ChangePasswordRequest represents a password change of the logged-in user
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=4,max=64"`
}

// CreateAccountRequest represents a new login account
type CreateAccountRequest struct {
	UserID   string `json:"userId" binding:"required"`
	Password string `json:"password" binding:"required,min=4,max=64"`
	Role     string `json:"role" binding:"required,oneof=student professor"`
}
