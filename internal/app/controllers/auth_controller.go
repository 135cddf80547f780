package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/checkmygrade/internal/app/models"
	"github.com/yigit/checkmygrade/internal/app/models/dto"
	"github.com/yigit/checkmygrade/internal/app/services"
	"github.com/yigit/checkmygrade/internal/middleware"
)

// AuthController handles authentication operations
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Login authenticates a user
// @Summary Log in
// @Description Checks a user id and password against the login table and returns an access token carrying the user's role
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	token, err := c.authService.Login(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(token))
}

// ChangePassword changes the password of the logged-in user
// @Summary Change password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "Old and new password"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Old password does not match"
// @Router /auth/change-password [post]
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	var req dto.ChangePasswordRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.authService.ChangePassword(ctx, middleware.CurrentUserID(ctx), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Password changed"}))
}

// CreateAccount adds a login account
// @Summary Create a login account
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAccountRequest true "Account"
// @Success 201 {object} dto.APIResponse{data=models.Account}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Account already exists"
// @Router /accounts [post]
func (c *AuthController) CreateAccount(ctx *gin.Context) {
	var req dto.CreateAccountRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	role := models.RoleType(req.Role)
	if err := c.authService.AddUser(ctx, req.UserID, req.Password, role); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(models.Account{UserID: req.UserID, Role: role}))
}
