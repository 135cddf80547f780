package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/checkmygrade/internal/app/models"
	"github.com/yigit/checkmygrade/internal/pkg/apperrors"
	"github.com/yigit/checkmygrade/internal/pkg/spreadsheet"
)

const studentRows = "ada@sjsu.edu,Ada,Lovelace,DATA200,A,91\n" +
	"alan@sjsu.edu,Alan,Turing,DATA200,B,80\n" +
	"ada@sjsu.edu,Ada,Lovelace,DATA220,B,75\n" +
	"grace@sjsu.edu,Grace,Hopper,DATA220,A,99\n"

func newStudentService(t *testing.T) StudentService {
	t.Helper()
	return NewStudentService(newTestStudentRepository(t, studentRows), testLogger)
}

func TestAddStudent(t *testing.T) {
	svc := newStudentService(t)
	ctx := context.Background()

	err := svc.AddStudent(ctx, "linus@sjsu.edu", "Linus", "Torvalds", []models.Enrollment{
		{CourseID: " DATA200 ", Grade: "A", Marks: "88"},
		{CourseID: "DATA300", Grade: "B", Marks: " 70 "},
	})
	require.NoError(t, err)

	student, err := svc.RecordsFor(ctx, "linus@sjsu.edu")
	require.NoError(t, err)
	assert.Equal(t, []models.StudentRecord{
		{FirstName: "Linus", LastName: "Torvalds", CourseID: "DATA200", Grade: "A", Marks: 88},
		{FirstName: "Linus", LastName: "Torvalds", CourseID: "DATA300", Grade: "B", Marks: 70},
	}, student.Records)
}

func TestAddStudentValidation(t *testing.T) {
	svc := newStudentService(t)
	ctx := context.Background()
	valid := []models.Enrollment{{CourseID: "DATA200", Grade: "A", Marks: "88"}}

	tests := []struct {
		name        string
		email       string
		first, last string
		enrollments []models.Enrollment
		want        error
	}{
		{"blank email", "", "A", "B", valid, apperrors.ErrValidationFailed},
		{"blank name", "x@sjsu.edu", " ", "B", valid, apperrors.ErrValidationFailed},
		{"no courses", "x@sjsu.edu", "A", "B", nil, apperrors.ErrValidationFailed},
		{"blank course", "x@sjsu.edu", "A", "B", []models.Enrollment{{CourseID: " ", Marks: "1"}}, apperrors.ErrValidationFailed},
		{"non-numeric marks", "x@sjsu.edu", "A", "B", []models.Enrollment{{CourseID: "C1", Marks: "ninety"}}, apperrors.ErrValidationFailed},
		{"duplicate", "ada@sjsu.edu", "Ada", "Lovelace", valid, apperrors.ErrResourceAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.AddStudent(ctx, tt.email, tt.first, tt.last, tt.enrollments)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	students, total, err := svc.ListStudents(ctx, "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, students, 3)
}

func TestAddStudentKeysAreOpaque(t *testing.T) {
	repo := newTestStudentRepository(t, studentRows+"S1001,Legacy,Row,DATA200,C,40\n")
	svc := NewStudentService(repo, testLogger)
	ctx := context.Background()
	valid := []models.Enrollment{{CourseID: "DATA200", Grade: "A", Marks: "88"}}

	// An existing key is a duplicate even when it is not shaped like an email
	err := svc.AddStudent(ctx, "S1001", "New", "Row", valid)
	assert.ErrorIs(t, err, apperrors.ErrResourceAlreadyExists)

	require.NoError(t, svc.AddStudent(ctx, " new@sjsu.edu ", "New", "Student", valid))
	student, err := svc.RecordsFor(ctx, " new@sjsu.edu ")
	require.NoError(t, err)
	assert.Equal(t, " new@sjsu.edu ", student.Email)

	_, err = svc.RecordsFor(ctx, "new@sjsu.edu")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	err = svc.AddStudent(ctx, " new@sjsu.edu ", "New", "Student", valid)
	assert.ErrorIs(t, err, apperrors.ErrResourceAlreadyExists)
}

func TestUpdateCourseRecord(t *testing.T) {
	svc := newStudentService(t)
	ctx := context.Background()

	require.NoError(t, svc.UpdateCourseRecord(ctx, "ada@sjsu.edu", "DATA220", "A", "95"))
	student, err := svc.RecordsFor(ctx, "ada@sjsu.edu")
	require.NoError(t, err)
	assert.Equal(t, 95, student.Records[1].Marks)

	assert.ErrorIs(t, svc.UpdateCourseRecord(ctx, "ada@sjsu.edu", "DATA220", "A", "high"), apperrors.ErrValidationFailed)
	assert.ErrorIs(t, svc.UpdateCourseRecord(ctx, "ada@sjsu.edu", "DATA999", "A", "50"), apperrors.ErrResourceNotFound)
	assert.ErrorIs(t, svc.UpdateCourseRecord(ctx, "nobody@sjsu.edu", "DATA200", "A", "50"), apperrors.ErrResourceNotFound)
}

func TestDeleteStudent(t *testing.T) {
	svc := newStudentService(t)
	ctx := context.Background()

	require.NoError(t, svc.DeleteStudent(ctx, "ada@sjsu.edu"))
	_, err := svc.RecordsFor(ctx, "ada@sjsu.edu")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	assert.ErrorIs(t, svc.DeleteStudent(ctx, "ada@sjsu.edu"), apperrors.ErrResourceNotFound)
}

func TestListStudents(t *testing.T) {
	svc := newStudentService(t)
	ctx := context.Background()

	emails := func(students []models.Student) []string {
		var out []string
		for _, s := range students {
			out = append(out, s.Email)
		}
		return out
	}

	students, total, err := svc.ListStudents(ctx, "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, []string{"ada@sjsu.edu", "alan@sjsu.edu", "grace@sjsu.edu"}, emails(students))

	students, _, err = svc.ListStudents(ctx, SortByEmailDesc, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"grace@sjsu.edu", "alan@sjsu.edu", "ada@sjsu.edu"}, emails(students))

	students, _, err = svc.ListStudents(ctx, SortByMarks, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"alan@sjsu.edu", "ada@sjsu.edu", "grace@sjsu.edu"}, emails(students))

	students, total, err = svc.ListStudents(ctx, SortByEmail, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, []string{"grace@sjsu.edu"}, emails(students))

	students, _, err = svc.ListStudents(ctx, SortByEmail, 5, 2)
	require.NoError(t, err)
	assert.Empty(t, students)

	_, _, err = svc.ListStudents(ctx, "age", 1, 10)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestImportFromSpreadsheet(t *testing.T) {
	svc := newStudentService(t)
	ctx := context.Background()

	var buf bytes.Buffer
	require.NoError(t, spreadsheet.Write(&buf, spreadsheet.Sheet{
		Name:   "Students",
		Header: []string{"Email_address", "First_name", "Last_name", "Course.id", "grades", "Marks"},
		Rows: [][]interface{}{
			{"linus@sjsu.edu", "Linus", "Torvalds", "DATA200", "A", 88},
			{"ada@sjsu.edu", "Ada", "Lovelace", "DATA300", "A", 90},
			{"linus@sjsu.edu", "Linus", "Torvalds", "DATA220", "B", 70},
			{"ken@sjsu.edu", "Ken", "Thompson", "DATA200", "A", "lots"},
		},
	}))

	result, err := svc.ImportFromSpreadsheet(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 2, result.Skipped)
	assert.Len(t, result.Errors, 2)

	linus, err := svc.RecordsFor(ctx, "linus@sjsu.edu")
	require.NoError(t, err)
	assert.Len(t, linus.Records, 2)

	ada, err := svc.RecordsFor(ctx, "ada@sjsu.edu")
	require.NoError(t, err)
	assert.Len(t, ada.Records, 2)
}

func TestImportFromSpreadsheetRejectsWrongHeader(t *testing.T) {
	svc := newStudentService(t)

	var buf bytes.Buffer
	require.NoError(t, spreadsheet.Write(&buf, spreadsheet.Sheet{
		Name:   "Students",
		Header: []string{"Email", "Name"},
		Rows:   [][]interface{}{{"x@sjsu.edu", "X"}},
	}))

	_, err := svc.ImportFromSpreadsheet(context.Background(), &buf)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
