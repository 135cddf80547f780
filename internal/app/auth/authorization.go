package auth

import (
	"context"
	"fmt"

	"github.com/yigit/checkmygrade/internal/app/models"
	"github.com/yigit/checkmygrade/internal/app/repositories"
	"github.com/yigit/checkmygrade/internal/pkg/apperrors"
	"github.com/yigit/checkmygrade/internal/pkg/logger"
)

// AuthorizationService decides what a logged-in account may read. Roles are
// looked up in the login table on every call, so a role change takes effect
// before the token expires.
type AuthorizationService struct {
	accountRepo *repositories.AccountRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(accountRepo *repositories.AccountRepository) *AuthorizationService {
	return &AuthorizationService{accountRepo: accountRepo}
}

// RoleOf returns the current role of userID
func (s *AuthorizationService) RoleOf(ctx context.Context, userID string) (models.RoleType, error) {
	account, err := s.accountRepo.GetByUserID(ctx, userID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound) {
			return "", apperrors.NewForbiddenError(fmt.Sprintf("account %q no longer exists", userID))
		}
		logger.Error().Err(err).Str("userID", userID).Msg("Error getting account in RoleOf")
		return "", err
	}
	return account.Role, nil
}

// IsProfessor checks if the user is a professor
func (s *AuthorizationService) IsProfessor(ctx context.Context, userID string) (bool, error) {
	role, err := s.RoleOf(ctx, userID)
	if err != nil {
		return false, err
	}
	return role == models.RoleProfessor, nil
}

// ValidateStudentAccess allows professors to read any student and students to
// read only their own records.
func (s *AuthorizationService) ValidateStudentAccess(ctx context.Context, userID, email string) error {
	isProfessor, err := s.IsProfessor(ctx, userID)
	if err != nil {
		return err
	}
	if isProfessor || userID == email {
		return nil
	}
	return apperrors.NewForbiddenError("students may only view their own records")
}
