package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/checkmygrade/internal/app/models/dto"
	"github.com/yigit/checkmygrade/internal/app/services"
	"github.com/yigit/checkmygrade/internal/middleware"
)

// CourseController handles course catalog operations
type CourseController struct {
	courseService     services.CourseService
	directoryService  services.DirectoryService
	statisticsService services.StatisticsService
}

// NewCourseController creates a new CourseController
func NewCourseController(
	courseService services.CourseService,
	directoryService services.DirectoryService,
	statisticsService services.StatisticsService,
) *CourseController {
	return &CourseController{
		courseService:     courseService,
		directoryService:  directoryService,
		statisticsService: statisticsService,
	}
}

// GetAllCourses lists the catalog in file order
// @Summary List courses
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Course}
// @Failure 500 {object} dto.ErrorResponse "Catalog unreadable"
// @Router /courses [get]
func (c *CourseController) GetAllCourses(ctx *gin.Context) {
	courses, err := c.courseService.ListCourses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(courses))
}

// GetCourseByID returns the first catalog row with the given id
// @Summary Get a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course id"
// @Success 200 {object} dto.APIResponse{data=models.Course}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourseByID(ctx *gin.Context) {
	course, err := c.courseService.FindCourse(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course))
}

// GetCourseProfessors lists the professors teaching a course
// @Summary Professors teaching a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course id"
// @Success 200 {object} dto.APIResponse{data=[]models.Professor}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id}/professors [get]
func (c *CourseController) GetCourseProfessors(ctx *gin.Context) {
	professors, err := c.directoryService.ProfessorsByCourse(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(professors))
}

// GetCourseStats returns marks, mean and median per course
// @Summary Per-course statistics
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.CourseStat}
// @Router /courses/stats [get]
func (c *CourseController) GetCourseStats(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.statisticsService.CourseStats(ctx)))
}

// CreateCourse appends a course to the catalog
// @Summary Add a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course"
// @Success 201 {object} dto.APIResponse{data=models.Course}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Course id already in the catalog"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course := req.ToModel()
	if err := c.courseService.AddCourse(ctx, course); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(course))
}

// UpdateCourse modifies a course. Blank fields keep their stored values.
// @Summary Modify a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course id"
// @Param request body dto.UpdateCourseRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Course}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [patch]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	var req dto.UpdateCourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.courseService.ModifyCourse(ctx, ctx.Param("id"), req.ToPatch())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course))
}

// DeleteCourse removes every catalog row with the given id
// @Summary Delete a course
// @Tags courses
// @Security BearerAuth
// @Param id path string true "Course id"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	if err := c.courseService.RemoveCourse(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
