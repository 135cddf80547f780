package services

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/checkmygrade/internal/app/models"
	"github.com/yigit/checkmygrade/internal/app/repositories"
	"github.com/yigit/checkmygrade/internal/pkg/apperrors"
	"github.com/yigit/checkmygrade/internal/pkg/helpers"
	"github.com/yigit/checkmygrade/internal/pkg/spreadsheet"
	"github.com/yigit/checkmygrade/internal/pkg/validation"
)

// Sort keys accepted by ListStudents
const (
	SortByEmail     = "email"
	SortByEmailDesc = "-email"
	SortByMarks     = "marks"
)

// StudentService defines the interface for student ledger operations
type StudentService interface {
	AddStudent(ctx context.Context, email, firstName, lastName string, enrollments []models.Enrollment) error
	UpdateCourseRecord(ctx context.Context, email, courseID, grade, marks string) error
	DeleteStudent(ctx context.Context, email string) error
	RecordsFor(ctx context.Context, email string) (*models.Student, error)
	ListStudents(ctx context.Context, sortBy string, page, size int) ([]models.Student, int, error)
	ImportFromSpreadsheet(ctx context.Context, r io.Reader) (*models.ImportResult, error)
}

type studentServiceImpl struct {
	studentRepo *repositories.StudentRepository
	logger      zerolog.Logger
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo *repositories.StudentRepository, logger zerolog.Logger) StudentService {
	return &studentServiceImpl{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// validateStudent validates student data before it reaches the ledger
func (s *studentServiceImpl) validateStudent(email, firstName, lastName string, enrollments []models.Enrollment) ([]models.StudentRecord, error) {
	if email == "" {
		return nil, apperrors.NewFieldValidationError("email", "email is required")
	}
	if !validation.IsName(firstName) {
		return nil, apperrors.NewFieldValidationError("firstName", "first name is required")
	}
	if !validation.IsName(lastName) {
		return nil, apperrors.NewFieldValidationError("lastName", "last name is required")
	}
	if len(enrollments) == 0 {
		return nil, fmt.Errorf("%w: at least one course is required", apperrors.ErrValidationFailed)
	}

	records := make([]models.StudentRecord, 0, len(enrollments))
	for _, e := range enrollments {
		courseID := strings.TrimSpace(e.CourseID)
		if !validation.IsIdentifier(courseID) {
			return nil, fmt.Errorf("%w: invalid course id %q", apperrors.ErrValidationFailed, e.CourseID)
		}
		marks, err := models.ParseMarks(e.Marks)
		if err != nil {
			return nil, err
		}
		records = append(records, models.StudentRecord{
			FirstName: strings.TrimSpace(firstName),
			LastName:  strings.TrimSpace(lastName),
			CourseID:  courseID,
			Grade:     strings.TrimSpace(e.Grade),
			Marks:     marks,
		})
	}
	return records, nil
}

// AddStudent stores a new student with one record per enrollment.
// The email is an opaque key: it is matched and stored exactly as given.
func (s *studentServiceImpl) AddStudent(ctx context.Context, email, firstName, lastName string, enrollments []models.Enrollment) error {
	if s.studentRepo.HasStudent(ctx, email) {
		return apperrors.NewAlreadyExistsError(fmt.Sprintf("student %q already exists", email))
	}
	records, err := s.validateStudent(email, firstName, lastName, enrollments)
	if err != nil {
		return err
	}

	if err := s.studentRepo.CreateStudent(ctx, email, records); err != nil {
		return err
	}

	s.logger.Info().Str("email", email).Int("courses", len(records)).Msg("Student added")
	return nil
}

// UpdateCourseRecord overwrites grade and marks of one of the student's courses
func (s *studentServiceImpl) UpdateCourseRecord(ctx context.Context, email, courseID, grade, marks string) error {
	parsed, err := models.ParseMarks(marks)
	if err != nil {
		return err
	}

	if err := s.studentRepo.UpdateCourseRecord(ctx, email, courseID, strings.TrimSpace(grade), parsed); err != nil {
		return err
	}

	s.logger.Info().Str("email", email).Str("courseID", courseID).Msg("Student course record updated")
	return nil
}

// DeleteStudent removes a student and every record they own
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, email string) error {
	if err := s.studentRepo.DeleteStudent(ctx, email); err != nil {
		return err
	}

	s.logger.Info().Str("email", email).Msg("Student deleted")
	return nil
}

// RecordsFor returns a student's records
func (s *studentServiceImpl) RecordsFor(ctx context.Context, email string) (*models.Student, error) {
	start := time.Now()
	student, err := s.studentRepo.GetStudent(ctx, email)
	s.logger.Debug().Str("email", email).Dur("elapsed", time.Since(start)).Msg("Student lookup completed")
	return student, err
}

// ListStudents returns one page of students sorted by sortBy, and the total
// number of students. An empty sortBy keeps ledger order.
func (s *studentServiceImpl) ListStudents(ctx context.Context, sortBy string, page, size int) ([]models.Student, int, error) {
	start := time.Now()
	students := s.studentRepo.GetAllStudents(ctx)

	switch sortBy {
	case "":
	case SortByEmail:
		slices.SortStableFunc(students, func(a, b models.Student) int { return strings.Compare(a.Email, b.Email) })
	case SortByEmailDesc:
		slices.SortStableFunc(students, func(a, b models.Student) int { return strings.Compare(b.Email, a.Email) })
	case SortByMarks:
		slices.SortStableFunc(students, func(a, b models.Student) int { return firstMarks(a) - firstMarks(b) })
	default:
		return nil, 0, fmt.Errorf("%w: unknown sort key %q", apperrors.ErrValidationFailed, sortBy)
	}

	s.logger.Debug().Str("sort", sortBy).Int("students", len(students)).Dur("elapsed", time.Since(start)).Msg("Student listing completed")

	from, to := helpers.CalculateSliceIndices(page, size, len(students))
	return students[from:to], len(students), nil
}

func firstMarks(s models.Student) int {
	if len(s.Records) == 0 {
		return 0
	}
	return s.Records[0].Marks
}

// importColumns are the student table columns an import sheet must carry, in order
var importColumns = repositories.StudentHeader

// ImportFromSpreadsheet adds the students found on the first sheet of an xlsx
// workbook laid out like the student table. Rows are grouped by email; a
// group is skipped when the email already exists or any of its rows is
// invalid.
func (s *studentServiceImpl) ImportFromSpreadsheet(ctx context.Context, r io.Reader) (*models.ImportResult, error) {
	rows, err := spreadsheet.ReadFirstSheet(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet is empty", apperrors.ErrValidationFailed)
	}
	if !slices.Equal(trimAll(rows[0]), importColumns) {
		return nil, fmt.Errorf("%w: header must be %s", apperrors.ErrValidationFailed, strings.Join(importColumns, ","))
	}

	type pending struct {
		firstName, lastName string
		enrollments         []models.Enrollment
	}
	var order []string
	groups := make(map[string]*pending)
	result := &models.ImportResult{}

	for i, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		cells := make([]string, len(importColumns))
		copy(cells, trimAll(row))

		email := cells[0]
		if email == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: missing email", i+2))
			continue
		}
		group, ok := groups[email]
		if !ok {
			group = &pending{firstName: cells[1], lastName: cells[2]}
			groups[email] = group
			order = append(order, email)
		}
		group.enrollments = append(group.enrollments, models.Enrollment{CourseID: cells[3], Grade: cells[4], Marks: cells[5]})
	}

	for _, email := range order {
		group := groups[email]
		if err := s.AddStudent(ctx, email, group.firstName, group.lastName, group.enrollments); err != nil {
			if apperrors.Is(err, apperrors.ErrStorage) {
				return result, err
			}
			s.logger.Warn().Err(err).Str("email", email).Msg("Skipping student during import")
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", email, apperrors.Message(err)))
			continue
		}
		result.Imported++
	}

	s.logger.Info().
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Int("ledgerRecords", s.studentRepo.RecordCount(ctx)).
		Msg("Student import finished")
	return result, nil
}

func trimAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}
