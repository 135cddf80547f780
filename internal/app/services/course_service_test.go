package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/checkmygrade/internal/app/models"
	"github.com/yigit/checkmygrade/internal/pkg/apperrors"
)

func TestCourseService(t *testing.T) {
	svc := NewCourseService(newTestCourseRepository(t, "CS1,Intro,d,3\n"), testLogger)
	ctx := context.Background()

	require.NoError(t, svc.AddCourse(ctx, models.Course{ID: " DATA200 ", Name: " Data Analytics ", Credits: "3"}))
	course, err := svc.FindCourse(ctx, "DATA200")
	require.NoError(t, err)
	assert.Equal(t, "Data Analytics", course.Name)

	assert.ErrorIs(t, svc.AddCourse(ctx, models.Course{ID: "CS1", Name: "Dup"}), apperrors.ErrResourceAlreadyExists)
	assert.ErrorIs(t, svc.AddCourse(ctx, models.Course{ID: "CS 2", Name: "Bad id"}), apperrors.ErrValidationFailed)
	assert.ErrorIs(t, svc.AddCourse(ctx, models.Course{ID: "CS2"}), apperrors.ErrValidationFailed)

	updated, err := svc.ModifyCourse(ctx, "CS1", models.Course{Credits: "4"})
	require.NoError(t, err)
	assert.Equal(t, models.Course{ID: "CS1", Name: "Intro", Description: "d", Credits: "4"}, *updated)

	require.NoError(t, svc.RemoveCourse(ctx, "CS1"))
	assert.ErrorIs(t, svc.RemoveCourse(ctx, "CS1"), apperrors.ErrResourceNotFound)

	courses, err := svc.ListCourses(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Course{{ID: "DATA200", Name: "Data Analytics", Credits: "3"}}, courses)
}
