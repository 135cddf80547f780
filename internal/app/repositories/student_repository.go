package repositories

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/yigit/checkmygrade/internal/app/models"
	"github.com/yigit/checkmygrade/internal/pkg/apperrors"
	"github.com/yigit/checkmygrade/internal/pkg/logger"
	"github.com/yigit/checkmygrade/internal/pkg/table"
)

// StudentHeader is the header row of the student table.
var StudentHeader = []string{"Email_address", "First_name", "Last_name", "Course.id", "grades", "Marks"}

type studentCodec struct{}

func (studentCodec) Header() []string { return StudentHeader }

func (studentCodec) Decode(row []string) (string, models.StudentRecord, error) {
	marks, err := strconv.Atoi(row[5])
	if err != nil {
		return "", models.StudentRecord{}, fmt.Errorf("invalid marks %q for %s", row[5], row[0])
	}
	return row[0], models.StudentRecord{
		FirstName: row[1],
		LastName:  row[2],
		CourseID:  row[3],
		Grade:     row[4],
		Marks:     marks,
	}, nil
}

func (studentCodec) Encode(email string, r models.StudentRecord) []string {
	return []string{email, r.FirstName, r.LastName, r.CourseID, r.Grade, strconv.Itoa(r.Marks)}
}

// StudentRepository is the student ledger: email → course enrollments.
type StudentRepository struct {
	mu    sync.RWMutex
	table *table.Table[models.StudentRecord]
}

// NewStudentRepository loads the student table at path.
func NewStudentRepository(path string) (*StudentRepository, error) {
	tbl := table.New[models.StudentRecord](path, studentCodec{})
	if err := tbl.Load(); err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Error loading student table")
		return nil, err
	}
	return &StudentRepository{table: tbl}, nil
}

// CreateStudent adds a new student key with its records.
func (r *StudentRepository) CreateStudent(ctx context.Context, email string, records []models.StudentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.table.Has(email) {
		return apperrors.NewAlreadyExistsError(fmt.Sprintf("student %q already exists", email))
	}
	if err := r.table.Insert(email, records...); err != nil {
		logger.Error().Err(err).Str("email", email).Msg("Error creating student")
		return err
	}
	return nil
}

// UpdateCourseRecord overwrites grade and marks of the student's record for courseID.
func (r *StudentRepository) UpdateCourseRecord(ctx context.Context, email, courseID, grade string, marks int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.table.Has(email) {
		return apperrors.NewResourceNotFoundError(fmt.Sprintf("student %q not found", email))
	}

	err := r.table.Update(email,
		func(rec models.StudentRecord) bool { return rec.CourseID == courseID },
		func(rec *models.StudentRecord) {
			rec.Grade = grade
			rec.Marks = marks
		})
	if apperrors.Is(err, apperrors.ErrResourceNotFound) {
		return apperrors.NewResourceNotFoundError(fmt.Sprintf("course %q not found for student %q", courseID, email))
	}
	if err != nil {
		logger.Error().Err(err).Str("email", email).Str("courseID", courseID).Msg("Error updating course record")
		return err
	}
	return nil
}

// DeleteStudent removes a student and all of their records.
func (r *StudentRepository) DeleteStudent(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.table.Has(email) {
		return apperrors.NewResourceNotFoundError(fmt.Sprintf("student %q not found", email))
	}
	if err := r.table.Delete(email); err != nil {
		logger.Error().Err(err).Str("email", email).Msg("Error deleting student")
		return err
	}
	return nil
}

// GetStudent returns a copy of a student's records.
func (r *StudentRepository) GetStudent(ctx context.Context, email string) (*models.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records, ok := r.table.Get(email)
	if !ok {
		return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("student %q not found", email))
	}
	return &models.Student{Email: email, Records: records}, nil
}

// GetAllStudents returns every student in ledger order.
func (r *StudentRepository) GetAllStudents(ctx context.Context) []models.Student {
	snapshot := r.Snapshot(ctx)
	students := make([]models.Student, 0, len(snapshot))
	for _, entry := range snapshot {
		students = append(students, models.Student{Email: entry.Key, Records: entry.Records})
	}
	return students
}

// HasStudent reports whether email is an exact key in the ledger.
func (r *StudentRepository) HasStudent(ctx context.Context, email string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.table.Has(email)
}

// Count returns the number of students.
func (r *StudentRepository) Count(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.table.Len()
}

// RecordCount returns the number of course records across all students.
func (r *StudentRepository) RecordCount(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.table.RecordCount()
}

// Snapshot returns a deep copy of the ledger for read-only computations.
func (r *StudentRepository) Snapshot(ctx context.Context) []table.Entry[models.StudentRecord] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.table.Snapshot()
}

// Reload rereads the table file, discarding in-memory state.
func (r *StudentRepository) Reload(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.table.Load()
}

// Persist rewrites the table file from memory.
func (r *StudentRepository) Persist(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.table.Persist()
}
