package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/checkmygrade/internal/app/models"
	"github.com/yigit/checkmygrade/internal/pkg/apperrors"
)

const professorFixture = "Professor_id,professor_Name,Rank,course_id\n" +
	"hopper@sjsu.edu,Grace Hopper,Senior Professor,DATA200\n" +
	"hopper@sjsu.edu,Grace Hopper,Senior Professor,DATA220\n" +
	"knuth@sjsu.edu,Donald Knuth,Professor,DATA220\n"

func newProfessorRepo(t *testing.T) *ProfessorRepository {
	t.Helper()
	repo, err := NewProfessorRepository(writeTable(t, "professor.csv", professorFixture))
	require.NoError(t, err)
	return repo
}

func strPtr(s string) *string { return &s }

func TestProfessorRepositoryCreateDuplicate(t *testing.T) {
	repo := newProfessorRepo(t)
	ctx := context.Background()

	err := repo.CreateProfessor(ctx, "knuth@sjsu.edu", []models.ProfessorRecord{{Name: "D", Rank: "R", CourseID: "X"}})
	assert.ErrorIs(t, err, apperrors.ErrResourceAlreadyExists)
	assert.Equal(t, professorFixture, readTable(t, repo.table.Path()))
}

func TestProfessorRepositoryUpdateNameOnly(t *testing.T) {
	repo := newProfessorRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.UpdateProfessor(ctx, "hopper@sjsu.edu", models.ProfessorPatch{Name: strPtr("Rear Admiral Hopper")}))

	professor, err := repo.GetProfessor(ctx, "hopper@sjsu.edu")
	require.NoError(t, err)
	assert.Equal(t, []models.ProfessorRecord{
		{Name: "Rear Admiral Hopper", Rank: "Senior Professor", CourseID: "DATA200"},
		{Name: "Rear Admiral Hopper", Rank: "Senior Professor", CourseID: "DATA220"},
	}, professor.Records)
}

func TestProfessorRepositoryUpdateReplacesCourses(t *testing.T) {
	repo := newProfessorRepo(t)
	ctx := context.Background()

	patch := models.ProfessorPatch{Rank: strPtr("Emerita"), Courses: []string{"DATA300"}}
	require.NoError(t, repo.UpdateProfessor(ctx, "hopper@sjsu.edu", patch))

	professor, err := repo.GetProfessor(ctx, "hopper@sjsu.edu")
	require.NoError(t, err)
	assert.Equal(t, []models.ProfessorRecord{
		{Name: "Grace Hopper", Rank: "Emerita", CourseID: "DATA300"},
	}, professor.Records)

	// Position in the ledger is kept.
	all := repo.GetAllProfessors(ctx)
	assert.Equal(t, "hopper@sjsu.edu", all[0].ID)
	assert.Equal(t, "Professor_id,professor_Name,Rank,course_id\n"+
		"hopper@sjsu.edu,Grace Hopper,Emerita,DATA300\n"+
		"knuth@sjsu.edu,Donald Knuth,Professor,DATA220\n", readTable(t, repo.table.Path()))
}

func TestProfessorRepositoryUpdateNotFound(t *testing.T) {
	repo := newProfessorRepo(t)

	err := repo.UpdateProfessor(context.Background(), "nobody", models.ProfessorPatch{Name: strPtr("x")})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestProfessorRepositoryFindByCourse(t *testing.T) {
	repo := newProfessorRepo(t)

	professors := repo.FindByCourse(context.Background(), "DATA220")
	require.Len(t, professors, 2)
	assert.Equal(t, "hopper@sjsu.edu", professors[0].ID)
	assert.Len(t, professors[0].Records, 1)
	assert.Equal(t, "knuth@sjsu.edu", professors[1].ID)

	assert.Empty(t, repo.FindByCourse(context.Background(), "DATA999"))
}

func TestProfessorRepositoryDelete(t *testing.T) {
	repo := newProfessorRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.DeleteProfessor(ctx, "hopper@sjsu.edu"))
	assert.NotContains(t, readTable(t, repo.table.Path()), "hopper@sjsu.edu")

	_, err := repo.GetProfessor(ctx, "hopper@sjsu.edu")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestProfessorRepositoryReload(t *testing.T) {
	repo := newProfessorRepo(t)
	ctx := context.Background()
	assert.True(t, repo.HasProfessor(ctx, "knuth@sjsu.edu"))

	writeFile(t, repo.table.Path(), "Professor_id,professor_Name,Rank,course_id\nkay@sjsu.edu,Alan Kay,Professor,DATA300\n")
	require.NoError(t, repo.Reload(ctx))

	assert.False(t, repo.HasProfessor(ctx, "knuth@sjsu.edu"))
	assert.True(t, repo.HasProfessor(ctx, "kay@sjsu.edu"))
}
