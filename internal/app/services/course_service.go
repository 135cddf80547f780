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

// CourseService defines the interface for course catalog operations
type CourseService interface {
	AddCourse(ctx context.Context, course models.Course) error
	ModifyCourse(ctx context.Context, id string, patch models.Course) (*models.Course, error)
	RemoveCourse(ctx context.Context, id string) error
	FindCourse(ctx context.Context, id string) (*models.Course, error)
	ListCourses(ctx context.Context) ([]models.Course, error)
}

type courseServiceImpl struct {
	courseRepo *repositories.CourseRepository
	logger     zerolog.Logger
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo *repositories.CourseRepository, logger zerolog.Logger) CourseService {
	return &courseServiceImpl{
		courseRepo: courseRepo,
		logger:     logger,
	}
}

// validateCourse validates course data before it reaches the catalog
func (s *courseServiceImpl) validateCourse(course *models.Course) error {
	course.ID = strings.TrimSpace(course.ID)
	course.Name = strings.TrimSpace(course.Name)
	course.Description = strings.TrimSpace(course.Description)
	course.Credits = strings.TrimSpace(course.Credits)

	if !validation.IsIdentifier(course.ID) {
		return fmt.Errorf("%w: invalid course id %q", apperrors.ErrValidationFailed, course.ID)
	}
	if !validation.IsName(course.Name) {
		return fmt.Errorf("%w: course name is required", apperrors.ErrValidationFailed)
	}
	return nil
}

// AddCourse appends a course to the catalog
func (s *courseServiceImpl) AddCourse(ctx context.Context, course models.Course) error {
	if err := s.validateCourse(&course); err != nil {
		return err
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return err
	}

	s.logger.Info().Str("courseID", course.ID).Msg("Course added")
	return nil
}

// ModifyCourse updates a course; blank fields in patch keep stored values
func (s *courseServiceImpl) ModifyCourse(ctx context.Context, id string, patch models.Course) (*models.Course, error) {
	course, err := s.courseRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("courseID", id).Msg("Course updated")
	return course, nil
}

// RemoveCourse deletes every catalog row with id
func (s *courseServiceImpl) RemoveCourse(ctx context.Context, id string) error {
	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("courseID", id).Msg("Course removed")
	return nil
}

// FindCourse returns the course with id
func (s *courseServiceImpl) FindCourse(ctx context.Context, id string) (*models.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

// ListCourses returns the whole catalog in file order
func (s *courseServiceImpl) ListCourses(ctx context.Context) ([]models.Course, error) {
	return s.courseRepo.GetAll(ctx)
}
