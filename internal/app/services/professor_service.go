package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/checkmygrade/internal/app/models"
	"github.com/yigit/checkmygrade/internal/app/repositories"
	"github.com/yigit/checkmygrade/internal/pkg/apperrors"
	"github.com/yigit/checkmygrade/internal/pkg/validation"
)

// ProfessorService defines the interface for faculty ledger operations
type ProfessorService interface {
	AddProfessor(ctx context.Context, id, name, rank string, courses []string) error
	ModifyProfessor(ctx context.Context, id string, patch models.ProfessorPatch) error
	DeleteProfessor(ctx context.Context, id string) error
	RecordsFor(ctx context.Context, id string) (*models.Professor, error)
	ListProfessors(ctx context.Context) []models.Professor
}

type professorServiceImpl struct {
	professorRepo *repositories.ProfessorRepository
	logger        zerolog.Logger
}

// NewProfessorService creates a new professor service instance
func NewProfessorService(professorRepo *repositories.ProfessorRepository, logger zerolog.Logger) ProfessorService {
	return &professorServiceImpl{
		professorRepo: professorRepo,
		logger:        logger,
	}
}

// normalizeCourses trims every course id and rejects blank or malformed ones
func normalizeCourses(courses []string) ([]string, error) {
	normalized := make([]string, 0, len(courses))
	for _, c := range courses {
		c = strings.TrimSpace(c)
		if !validation.IsIdentifier(c) {
			return nil, fmt.Errorf("%w: invalid course id %q", apperrors.ErrValidationFailed, c)
		}
		normalized = append(normalized, c)
	}
	return normalized, nil
}

// AddProfessor stores a new professor with one record per course.
// The id is kept verbatim.
func (s *professorServiceImpl) AddProfessor(ctx context.Context, id, name, rank string, courses []string) error {
	if s.professorRepo.HasProfessor(ctx, id) {
		return apperrors.NewAlreadyExistsError(fmt.Sprintf("professor %q already exists", id))
	}
	if id == "" {
		return apperrors.NewFieldValidationError("id", "professor id is required")
	}
	if !validation.IsName(name) || !validation.IsName(rank) {
		return fmt.Errorf("%w: name and rank are required", apperrors.ErrValidationFailed)
	}
	if len(courses) == 0 {
		return fmt.Errorf("%w: at least one course is required", apperrors.ErrValidationFailed)
	}

	normalized, err := normalizeCourses(courses)
	if err != nil {
		return err
	}

	records := make([]models.ProfessorRecord, 0, len(normalized))
	for _, courseID := range normalized {
		records = append(records, models.ProfessorRecord{
			Name:     strings.TrimSpace(name),
			Rank:     strings.TrimSpace(rank),
			CourseID: courseID,
		})
	}

	if err := s.professorRepo.CreateProfessor(ctx, id, records); err != nil {
		return err
	}

	s.logger.Info().Str("professorID", id).Int("courses", len(records)).Msg("Professor added")
	return nil
}

// blankToNil drops an override that carries no text so the stored value stays.
func blankToNil(v *string) *string {
	if v == nil || !validation.IsName(*v) {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	return &trimmed
}

// ModifyProfessor applies optional name, rank and course list overrides.
// Blank name or rank overrides keep the stored value.
func (s *professorServiceImpl) ModifyProfessor(ctx context.Context, id string, patch models.ProfessorPatch) error {
	patch.Name = blankToNil(patch.Name)
	patch.Rank = blankToNil(patch.Rank)

	if len(patch.Courses) > 0 {
		normalized, err := normalizeCourses(patch.Courses)
		if err != nil {
			return err
		}
		patch.Courses = normalized
	}

	if err := s.professorRepo.UpdateProfessor(ctx, id, patch); err != nil {
		return err
	}

	s.logger.Info().Str("professorID", id).Msg("Professor updated")
	return nil
}

// DeleteProfessor removes a professor and every record they own
func (s *professorServiceImpl) DeleteProfessor(ctx context.Context, id string) error {
	if err := s.professorRepo.DeleteProfessor(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("professorID", id).Msg("Professor deleted")
	return nil
}

// RecordsFor returns a professor's records
func (s *professorServiceImpl) RecordsFor(ctx context.Context, id string) (*models.Professor, error) {
	return s.professorRepo.GetProfessor(ctx, id)
}

// ListProfessors returns every professor in ledger order
func (s *professorServiceImpl) ListProfessors(ctx context.Context) []models.Professor {
	return s.professorRepo.GetAllProfessors(ctx)
}
