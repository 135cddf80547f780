package repositories

import (
	"context"
	"fmt"
	"sync"

	"github.com/yigit/checkmygrade/internal/app/models"
	"github.com/yigit/checkmygrade/internal/pkg/apperrors"
	"github.com/yigit/checkmygrade/internal/pkg/logger"
	"github.com/yigit/checkmygrade/internal/pkg/table"
)

// AccountHeader is the header row of the login table.
var AccountHeader = []string{"user_id", "password", "role"}

type accountCodec struct{}

func (accountCodec) Header() []string { return AccountHeader }

func (accountCodec) Decode(row []string) (string, models.Account, error) {
	role := models.RoleType(row[2])
	if !role.Valid() {
		return "", models.Account{}, fmt.Errorf("unknown role %q for %s", row[2], row[0])
	}
	return row[0], models.Account{UserID: row[0], Password: row[1], Role: role}, nil
}

func (accountCodec) Encode(userID string, a models.Account) []string {
	return []string{userID, a.Password, string(a.Role)}
}

// AccountRepository stores login accounts, one row per user id.
type AccountRepository struct {
	mu    sync.RWMutex
	table *table.Table[models.Account]
}

// NewAccountRepository loads the login table at path.
func NewAccountRepository(path string) (*AccountRepository, error) {
	tbl := table.New[models.Account](path, accountCodec{})
	if err := tbl.Load(); err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Error loading login table")
		return nil, err
	}
	return &AccountRepository{table: tbl}, nil
}

// GetByUserID returns the account for userID. When the table holds more than
// one row for a user, the last one wins.
func (r *AccountRepository) GetByUserID(ctx context.Context, userID string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records, ok := r.table.Get(userID)
	if !ok {
		return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("account %q not found", userID))
	}
	account := records[len(records)-1]
	return &account, nil
}

// CreateAccount stores a new account.
func (r *AccountRepository) CreateAccount(ctx context.Context, account models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.table.Has(account.UserID) {
		return apperrors.NewAlreadyExistsError(fmt.Sprintf("account %q already exists", account.UserID))
	}
	if err := r.table.Insert(account.UserID, account); err != nil {
		logger.Error().Err(err).Str("userID", account.UserID).Msg("Error creating account")
		return err
	}
	return nil
}

// UpdatePassword replaces the stored password of userID.
func (r *AccountRepository) UpdatePassword(ctx context.Context, userID, password string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.table.UpdateAll(userID, func(a *models.Account) { a.Password = password })
	if apperrors.Is(err, apperrors.ErrResourceNotFound) {
		return apperrors.NewResourceNotFoundError(fmt.Sprintf("account %q not found", userID))
	}
	if err != nil {
		logger.Error().Err(err).Str("userID", userID).Msg("Error updating password")
		return err
	}
	return nil
}

// Count returns the number of accounts.
func (r *AccountRepository) Count(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.table.Len()
}

// Reload rereads the login table so edits made outside the process apply.
func (r *AccountRepository) Reload(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.table.Load()
}
