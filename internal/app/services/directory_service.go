package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/yigit/checkmygrade/internal/app/models"
	"github.com/yigit/checkmygrade/internal/app/repositories"
	"github.com/yigit/checkmygrade/internal/pkg/apperrors"
)

// DirectoryService joins the faculty ledger with the course catalog
type DirectoryService interface {
	ProfessorsByCourse(ctx context.Context, courseID string) ([]models.Professor, error)
	CoursesForProfessor(ctx context.Context, professorID string) ([]models.Course, error)
}

type directoryServiceImpl struct {
	courseRepo    *repositories.CourseRepository
	professorRepo *repositories.ProfessorRepository
}

// NewDirectoryService creates a new directory service instance
func NewDirectoryService(courseRepo *repositories.CourseRepository, professorRepo *repositories.ProfessorRepository) DirectoryService {
	return &directoryServiceImpl{
		courseRepo:    courseRepo,
		professorRepo: professorRepo,
	}
}

// ProfessorsByCourse lists the professors teaching a catalog course. The
// course must exist; an existing course nobody teaches yields an empty list.
func (s *directoryServiceImpl) ProfessorsByCourse(ctx context.Context, courseID string) ([]models.Professor, error) {
	exists, err := s.courseRepo.Exists(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("course %q not found", courseID))
	}

	professors := s.professorRepo.FindByCourse(ctx, courseID)
	if professors == nil {
		professors = []models.Professor{}
	}
	return professors, nil
}

// CoursesForProfessor returns the catalog rows of the courses a professor
// teaches, in catalog order. Course ids missing from the catalog are left out.
func (s *directoryServiceImpl) CoursesForProfessor(ctx context.Context, professorID string) ([]models.Course, error) {
	professor, err := s.professorRepo.GetProfessor(ctx, professorID)
	if err != nil {
		return nil, err
	}

	taught := make([]string, 0, len(professor.Records))
	for _, rec := range professor.Records {
		taught = append(taught, rec.CourseID)
	}

	catalog, err := s.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	courses := []models.Course{}
	for _, c := range catalog {
		if slices.Contains(taught, c.ID) {
			courses = append(courses, c)
		}
	}
	return courses, nil
}
