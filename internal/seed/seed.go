package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/checkmygrade/internal/app/models"
	appRepos "github.com/yigit/checkmygrade/internal/app/repositories"
	"github.com/yigit/checkmygrade/internal/config"
	"github.com/yigit/checkmygrade/internal/pkg/apperrors"
	"github.com/yigit/checkmygrade/internal/pkg/table"
)

// AccountCreator adds a login account
type AccountCreator interface {
	AddUser(ctx context.Context, userID, password string, role appModels.RoleType) error
}

// CreateTables creates the data directory and writes a header-only table for
// every table file that does not exist yet. Existing files are not touched.
func CreateTables(cfg *config.Config, lgr zerolog.Logger) error {
	if err := os.MkdirAll(cfg.Storage.DataDir, 0o755); err != nil {
		return apperrors.NewStorageError(cfg.Storage.DataDir, err)
	}

	var finalErr error // To collect errors without stopping at the first table

	headers := []struct {
		path   string
		header []string
	}{
		{cfg.StudentPath(), appRepos.StudentHeader},
		{cfg.ProfessorPath(), appRepos.ProfessorHeader},
		{cfg.LoginPath(), appRepos.AccountHeader},
	}
	for _, h := range headers {
		created, err := createIfMissing(h.path, func() error { return writeHeader(h.path, h.header) })
		if err != nil {
			lgr.Error().Err(err).Str("path", h.path).Msg("Error creating table")
			finalErr = errors.Join(finalErr, err)
		} else if created {
			lgr.Info().Str("path", h.path).Msg("Created empty table")
		}
	}

	coursePath := cfg.CoursePath()
	created, err := createIfMissing(coursePath, appRepos.NewCourseRepository(coursePath, cfg.Catalog.AllowDuplicateIDs).Init)
	if err != nil {
		lgr.Error().Err(err).Str("path", coursePath).Msg("Error creating table")
		finalErr = errors.Join(finalErr, err)
	} else if created {
		lgr.Info().Str("path", coursePath).Msg("Created empty table")
	}

	return finalErr
}

func createIfMissing(path string, create func() error) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, apperrors.NewStorageError(path, err)
	}
	if err := create(); err != nil {
		return false, err
	}
	return true, nil
}

func writeHeader(path string, header []string) error {
	err := table.WriteFileAtomic(path, func(w io.Writer) error {
		writer := csv.NewWriter(w)
		if err := writer.Write(header); err != nil {
			return err
		}
		writer.Flush()
		return writer.Error()
	})
	if err != nil {
		return apperrors.NewStorageError(path, err)
	}
	return nil
}

// CreateDefaultAccount adds the configured professor login when the login
// table is empty, so a fresh install has someone able to manage records.
func CreateDefaultAccount(ctx context.Context, accounts AccountCreator, accountRepo *appRepos.AccountRepository, cfg *config.Config, lgr zerolog.Logger) error {
	if cfg.Seed.ProfessorID == "" {
		return nil
	}
	if accountRepo.Count(ctx) > 0 {
		lgr.Info().Msg("Login table is not empty, skipping default account")
		return nil
	}

	lgr.Info().Str("userID", cfg.Seed.ProfessorID).Msg("Creating default professor account...")
	if err := accounts.AddUser(ctx, cfg.Seed.ProfessorID, cfg.Seed.ProfessorPassword, appModels.RoleProfessor); err != nil {
		return fmt.Errorf("failed to create default professor account: %w", err)
	}
	return nil
}
