package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/checkmygrade/internal/app/models"
	"github.com/yigit/checkmygrade/internal/app/models/dto"
	"github.com/yigit/checkmygrade/internal/app/repositories"
	"github.com/yigit/checkmygrade/internal/pkg/apperrors"
	"github.com/yigit/checkmygrade/internal/pkg/auth"
)

// AuthService handles authentication operations against the login table
type AuthService struct {
	accountRepo *repositories.AccountRepository
	jwtService  *auth.JWTService
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	accountRepo *repositories.AccountRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// Authenticate checks credentials and returns the matching account
func (s *AuthService) Authenticate(ctx context.Context, userID, password string) (*models.Account, error) {
	account, err := s.accountRepo.GetByUserID(ctx, strings.TrimSpace(userID))
	if err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(account.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return account, nil
}

// Login authenticates a user and issues an access token carrying their role
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	account, err := s.Authenticate(ctx, req.UserID, req.Password)
	if err != nil {
		s.logger.Warn().Str("userID", req.UserID).Msg("Failed login attempt")
		return nil, err
	}

	accessToken, expiresIn, err := s.jwtService.GenerateAccessToken(account)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	s.logger.Info().Str("userID", account.UserID).Str("role", string(account.Role)).Msg("User logged in")
	return &dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(expiresIn),
		UserID:      account.UserID,
		Role:        account.Role,
	}, nil
}

// AddUser creates a login account
func (s *AuthService) AddUser(ctx context.Context, userID, password string, role models.RoleType) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("%w: invalid user id %q", apperrors.ErrValidationFailed, userID)
	}
	if password == "" {
		return fmt.Errorf("%w: password cannot be empty", apperrors.ErrValidationFailed)
	}
	if !role.Valid() {
		return fmt.Errorf("%w: role must be %q or %q", apperrors.ErrValidationFailed, models.RoleStudent, models.RoleProfessor)
	}

	if err := s.accountRepo.CreateAccount(ctx, models.Account{UserID: userID, Password: password, Role: role}); err != nil {
		return err
	}

	s.logger.Info().Str("userID", userID).Str("role", string(role)).Msg("Account created")
	return nil
}

// ChangePassword replaces a user's password after checking the old one
func (s *AuthService) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	if _, err := s.Authenticate(ctx, userID, req.OldPassword); err != nil {
		return err
	}

	if err := s.accountRepo.UpdatePassword(ctx, userID, req.NewPassword); err != nil {
		return err
	}

	s.logger.Info().Str("userID", userID).Msg("Password changed")
	return nil
}
