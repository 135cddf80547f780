package repositories

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/gocarina/gocsv"
	"github.com/yigit/checkmygrade/internal/app/models"
	"github.com/yigit/checkmygrade/internal/pkg/apperrors"
	"github.com/yigit/checkmygrade/internal/pkg/logger"
	"github.com/yigit/checkmygrade/internal/pkg/table"
)

// CourseHeader is the header row written for new course tables.
var CourseHeader = []string{"Course_id", "Course_name", "Description", "Credits"}

// CourseRepository is the course catalog. Rows are read by header name, so
// column order in an existing file does not matter. Every call reads the
// file; nothing is cached between calls.
type CourseRepository struct {
	mu                sync.Mutex
	path              string
	allowDuplicateIDs bool
}

// NewCourseRepository creates a catalog over the course table at path. When
// allowDuplicateIDs is set, Create accepts an id that is already present.
func NewCourseRepository(path string, allowDuplicateIDs bool) *CourseRepository {
	return &CourseRepository{path: path, allowDuplicateIDs: allowDuplicateIDs}
}

// Path returns the backing file path.
func (r *CourseRepository) Path() string {
	return r.path
}

type catalogFile struct {
	courses         []models.Course
	header          []string
	endsWithNewline bool
}

func (r *CourseRepository) load() (*catalogFile, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, apperrors.NewStorageError(r.path, err)
	}
	data = table.TrimBOM(data)

	header, err := csv.NewReader(bytes.NewReader(data)).Read()
	if err != nil {
		if err == io.EOF {
			err = fmt.Errorf("missing header row")
		}
		return nil, apperrors.NewStorageError(r.path, err)
	}

	var courses []models.Course
	if err := gocsv.UnmarshalBytes(data, &courses); err != nil {
		return nil, apperrors.NewStorageError(r.path, err)
	}

	return &catalogFile{
		courses:         courses,
		header:          header,
		endsWithNewline: len(data) > 0 && data[len(data)-1] == '\n',
	}, nil
}

func (r *CourseRepository) rewrite(courses []models.Course) error {
	err := table.WriteFileAtomic(r.path, func(w io.Writer) error {
		return gocsv.Marshal(courses, w)
	})
	if err != nil {
		return apperrors.NewStorageError(r.path, err)
	}
	return nil
}

// Create appends a course row. The row is appended in place when the file
// uses the canonical column order and rewritten otherwise.
func (r *CourseRepository) Create(ctx context.Context, course models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	catalog, err := r.load()
	if err != nil {
		logger.Error().Err(err).Str("path", r.path).Msg("Error loading course table")
		return err
	}
	if !r.allowDuplicateIDs && slices.ContainsFunc(catalog.courses, func(c models.Course) bool { return c.ID == course.ID }) {
		return apperrors.NewAlreadyExistsError(fmt.Sprintf("course %q already exists", course.ID))
	}

	if !slices.Equal(catalog.header, CourseHeader) {
		return r.rewrite(append(catalog.courses, course))
	}

	if err := r.appendRow(course, !catalog.endsWithNewline); err != nil {
		logger.Error().Err(err).Str("courseID", course.ID).Msg("Error appending course")
		return err
	}
	return nil
}

func (r *CourseRepository) appendRow(course models.Course, leadingNewline bool) error {
	file, err := os.OpenFile(r.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return apperrors.NewStorageError(r.path, err)
	}

	var buf bytes.Buffer
	if leadingNewline {
		buf.WriteByte('\n')
	}
	if err := gocsv.MarshalWithoutHeaders([]models.Course{course}, &buf); err != nil {
		file.Close()
		return apperrors.NewStorageError(r.path, err)
	}
	if _, err := file.Write(buf.Bytes()); err != nil {
		file.Close()
		return apperrors.NewStorageError(r.path, err)
	}
	if err := file.Close(); err != nil {
		return apperrors.NewStorageError(r.path, err)
	}
	return nil
}

// Update modifies the first course with id. Blank fields in patch keep the
// stored values; others are stored trimmed.
func (r *CourseRepository) Update(ctx context.Context, id string, patch models.Course) (*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	catalog, err := r.load()
	if err != nil {
		return nil, err
	}

	idx := slices.IndexFunc(catalog.courses, func(c models.Course) bool { return c.ID == id })
	if idx < 0 {
		return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("course %q not found", id))
	}

	course := &catalog.courses[idx]
	course.Name = keepIfBlank(patch.Name, course.Name)
	course.Description = keepIfBlank(patch.Description, course.Description)
	course.Credits = keepIfBlank(patch.Credits, course.Credits)

	if err := r.rewrite(catalog.courses); err != nil {
		logger.Error().Err(err).Str("courseID", id).Msg("Error updating course")
		return nil, err
	}
	updated := *course
	return &updated, nil
}

func keepIfBlank(value, current string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return current
}

// Delete removes every course row with id.
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	catalog, err := r.load()
	if err != nil {
		return err
	}

	remaining := slices.DeleteFunc(slices.Clone(catalog.courses), func(c models.Course) bool { return c.ID == id })
	if len(remaining) == len(catalog.courses) {
		return apperrors.NewResourceNotFoundError(fmt.Sprintf("course %q not found", id))
	}

	if err := r.rewrite(remaining); err != nil {
		logger.Error().Err(err).Str("courseID", id).Msg("Error deleting course")
		return err
	}
	return nil
}

// GetByID returns the first course with id.
func (r *CourseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	courses, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range courses {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("course %q not found", id))
}

// GetAll returns all courses in file order.
func (r *CourseRepository) GetAll(ctx context.Context) ([]models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	catalog, err := r.load()
	if err != nil {
		return nil, err
	}
	return catalog.courses, nil
}

// Exists reports whether a course with id is in the catalog.
func (r *CourseRepository) Exists(ctx context.Context, id string) (bool, error) {
	_, err := r.GetByID(ctx, id)
	if apperrors.Is(err, apperrors.ErrResourceNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Init writes an empty course table with the header row.
func (r *CourseRepository) Init() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rewrite([]models.Course{})
}
