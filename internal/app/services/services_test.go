package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/yigit/checkmygrade/internal/app/repositories"
)

var testLogger = zerolog.Nop()

func writeTestTable(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestStudentRepository(t *testing.T, rows string) *repositories.StudentRepository {
	t.Helper()
	repo, err := repositories.NewStudentRepository(writeTestTable(t, "student.csv",
		"Email_address,First_name,Last_name,Course.id,grades,Marks\n"+rows))
	require.NoError(t, err)
	return repo
}

func newTestProfessorRepository(t *testing.T, rows string) *repositories.ProfessorRepository {
	t.Helper()
	repo, err := repositories.NewProfessorRepository(writeTestTable(t, "professor.csv",
		"Professor_id,professor_Name,Rank,course_id\n"+rows))
	require.NoError(t, err)
	return repo
}

func newTestCourseRepository(t *testing.T, rows string) *repositories.CourseRepository {
	t.Helper()
	return repositories.NewCourseRepository(writeTestTable(t, "course.csv",
		"Course_id,Course_name,Description,Credits\n"+rows), false)
}

func newTestAccountRepository(t *testing.T, rows string) *repositories.AccountRepository {
	t.Helper()
	repo, err := repositories.NewAccountRepository(writeTestTable(t, "login.csv", "user_id,password,role\n"+rows))
	require.NoError(t, err)
	return repo
}
