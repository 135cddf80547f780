package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/checkmygrade/internal/app/models"
	"github.com/yigit/checkmygrade/internal/pkg/apperrors"
)

const studentFixture = "Email_address,First_name,Last_name,Course.id,grades,Marks\n" +
	"ada@sjsu.edu,Ada,Lovelace,DATA200,A,91\n" +
	"alan@sjsu.edu,Alan,Turing,DATA200,B,80\n" +
	"ada@sjsu.edu,Ada,Lovelace,DATA220,B,75\n"

func newStudentRepo(t *testing.T) *StudentRepository {
	t.Helper()
	repo, err := NewStudentRepository(writeTable(t, "student.csv", studentFixture))
	require.NoError(t, err)
	return repo
}

func TestStudentRepositoryLoad(t *testing.T) {
	repo := newStudentRepo(t)
	ctx := context.Background()

	student, err := repo.GetStudent(ctx, "ada@sjsu.edu")
	require.NoError(t, err)
	assert.Equal(t, []models.StudentRecord{
		{FirstName: "Ada", LastName: "Lovelace", CourseID: "DATA200", Grade: "A", Marks: 91},
		{FirstName: "Ada", LastName: "Lovelace", CourseID: "DATA220", Grade: "B", Marks: 75},
	}, student.Records)

	students := repo.GetAllStudents(ctx)
	require.Len(t, students, 2)
	assert.Equal(t, "ada@sjsu.edu", students[0].Email)
	assert.Equal(t, "alan@sjsu.edu", students[1].Email)
}

func TestStudentRepositoryRejectsNonNumericMarks(t *testing.T) {
	path := writeTable(t, "student.csv",
		"Email_address,First_name,Last_name,Course.id,grades,Marks\nada@sjsu.edu,Ada,Lovelace,DATA200,A,high\n")

	_, err := NewStudentRepository(path)
	assert.ErrorIs(t, err, apperrors.ErrStorage)
}

func TestStudentRepositoryRoundTrip(t *testing.T) {
	repo := newStudentRepo(t)
	ctx := context.Background()
	before := repo.Snapshot(ctx)

	require.NoError(t, repo.Persist(ctx))
	require.NoError(t, repo.Reload(ctx))

	assert.Equal(t, before, repo.Snapshot(ctx))
}

func TestStudentRepositoryCounts(t *testing.T) {
	repo := newStudentRepo(t)
	ctx := context.Background()

	assert.Equal(t, 2, repo.Count(ctx))
	assert.Equal(t, 3, repo.RecordCount(ctx))
	assert.True(t, repo.HasStudent(ctx, "ada@sjsu.edu"))
	assert.False(t, repo.HasStudent(ctx, "ADA@sjsu.edu"))
	assert.False(t, repo.HasStudent(ctx, " ada@sjsu.edu"))
}

func TestStudentRepositoryCreateDuplicate(t *testing.T) {
	repo := newStudentRepo(t)
	ctx := context.Background()
	before := repo.Snapshot(ctx)

	err := repo.CreateStudent(ctx, "ada@sjsu.edu", []models.StudentRecord{{FirstName: "Ada", LastName: "L", CourseID: "X", Marks: 1}})

	assert.ErrorIs(t, err, apperrors.ErrResourceAlreadyExists)
	assert.Equal(t, before, repo.Snapshot(ctx))
	assert.Equal(t, studentFixture, readTable(t, repo.table.Path()))
}

func TestStudentRepositoryCreate(t *testing.T) {
	repo := newStudentRepo(t)
	ctx := context.Background()

	records := []models.StudentRecord{
		{FirstName: "Grace", LastName: "Hopper", CourseID: "DATA200", Grade: "A", Marks: 99},
	}
	require.NoError(t, repo.CreateStudent(ctx, "grace@sjsu.edu", records))

	assert.Contains(t, readTable(t, repo.table.Path()), "grace@sjsu.edu,Grace,Hopper,DATA200,A,99\n")
}

func TestStudentRepositoryUpdateCourseRecord(t *testing.T) {
	repo := newStudentRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.UpdateCourseRecord(ctx, "ada@sjsu.edu", "DATA220", "A", 95))

	student, err := repo.GetStudent(ctx, "ada@sjsu.edu")
	require.NoError(t, err)
	assert.Equal(t, "A", student.Records[1].Grade)
	assert.Equal(t, 95, student.Records[1].Marks)
	assert.Equal(t, 91, student.Records[0].Marks)
}

func TestStudentRepositoryUpdateCourseRecordNotFound(t *testing.T) {
	repo := newStudentRepo(t)
	ctx := context.Background()

	err := repo.UpdateCourseRecord(ctx, "ada@sjsu.edu", "DATA999", "A", 95)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	assert.Contains(t, err.Error(), "DATA999")

	err = repo.UpdateCourseRecord(ctx, "nobody@sjsu.edu", "DATA200", "A", 95)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	assert.Equal(t, studentFixture, readTable(t, repo.table.Path()))
}

func TestStudentRepositoryDelete(t *testing.T) {
	repo := newStudentRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.DeleteStudent(ctx, "ada@sjsu.edu"))

	_, err := repo.GetStudent(ctx, "ada@sjsu.edu")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	assert.NotContains(t, readTable(t, repo.table.Path()), "ada@sjsu.edu")

	assert.ErrorIs(t, repo.DeleteStudent(ctx, "ada@sjsu.edu"), apperrors.ErrResourceNotFound)
}
