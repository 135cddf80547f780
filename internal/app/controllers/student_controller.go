package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/checkmygrade/internal/app/auth"
	"github.com/yigit/checkmygrade/internal/app/models/dto"
	"github.com/yigit/checkmygrade/internal/app/services"
	"github.com/yigit/checkmygrade/internal/middleware"
	"github.com/yigit/checkmygrade/internal/pkg/apperrors"
	"github.com/yigit/checkmygrade/internal/pkg/helpers"
)

// importFormField is the multipart field carrying an import workbook
const importFormField = "file"

// StudentController handles student ledger operations and student reports
type StudentController struct {
	studentService    services.StudentService
	statisticsService services.StatisticsService
	authzService      *auth.AuthorizationService
}

// NewStudentController creates a new StudentController
func NewStudentController(
	studentService services.StudentService,
	statisticsService services.StatisticsService,
	authzService *auth.AuthorizationService,
) *StudentController {
	return &StudentController{
		studentService:    studentService,
		statisticsService: statisticsService,
		authzService:      authzService,
	}
}

// authorizeStudent aborts with an error response unless the caller may read
// the student named in the path.
func (c *StudentController) authorizeStudent(ctx *gin.Context) (string, bool) {
	email := ctx.Param("email")
	if err := c.authzService.ValidateStudentAccess(ctx, middleware.CurrentUserID(ctx), email); err != nil {
		middleware.HandleAPIError(ctx, err)
		return "", false
	}
	return email, true
}

// GetStudent returns a student's records
// @Summary Get student records
// @Description Students may only read their own records; professors may read any
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param email path string true "Student email"
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Failure 403 {object} dto.ErrorResponse "Not the caller's records"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{email} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	email, ok := c.authorizeStudent(ctx)
	if !ok {
		return
	}

	student, err := c.studentService.RecordsFor(ctx, email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student))
}

// GetMarks returns a student's marks with each course's mean and median
// @Summary Get marks report
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param email path string true "Student email"
// @Success 200 {object} dto.APIResponse{data=models.MarksReport}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{email}/marks [get]
func (c *StudentController) GetMarks(ctx *gin.Context) {
	email, ok := c.authorizeStudent(ctx)
	if !ok {
		return
	}

	report, err := c.statisticsService.MarksReport(ctx, email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(report))
}

// GetGrades returns a student's relative grades
// @Summary Get grade report
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param email path string true "Student email"
// @Success 200 {object} dto.APIResponse{data=models.GradeReport}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{email}/grades [get]
func (c *StudentController) GetGrades(ctx *gin.Context) {
	email, ok := c.authorizeStudent(ctx)
	if !ok {
		return
	}

	report, err := c.statisticsService.GradeReport(ctx, email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(report))
}

// ListStudents returns one page of students
// @Summary List students
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param sort query string false "email, -email or marks"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.StudentListResponse}
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	students, total, err := c.studentService.ListStudents(ctx, ctx.Query("sort"), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.StudentListResponse{
		Students:   students,
		Pagination: helpers.NewPaginationInfo(int64(total), page, size),
	}))
}

// CreateStudent adds a student with their courses
// @Summary Add a student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student"
// @Success 201 {object} dto.APIResponse{data=models.Student}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Student already exists"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.studentService.AddStudent(ctx, req.Email, req.FirstName, req.LastName, req.Enrollments()); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	student, err := c.studentService.RecordsFor(ctx, req.Email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(student))
}

// UpdateCourseRecord overwrites grade and marks of one course of a student
// @Summary Update a course record
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param email path string true "Student email"
// @Param courseId path string true "Course id"
// @Param request body dto.UpdateCourseRecordRequest true "Grade and marks"
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Failure 400 {object} dto.ErrorResponse "Marks are not an integer"
// @Failure 404 {object} dto.ErrorResponse "Student or course record not found"
// @Router /students/{email}/courses/{courseId} [put]
func (c *StudentController) UpdateCourseRecord(ctx *gin.Context) {
	var req dto.UpdateCourseRecordRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	email := ctx.Param("email")
	if err := c.studentService.UpdateCourseRecord(ctx, email, ctx.Param("courseId"), req.Grade, req.Marks.String()); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	student, err := c.studentService.RecordsFor(ctx, email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student))
}

// DeleteStudent removes a student and all their records
// @Summary Delete a student
// @Tags students
// @Security BearerAuth
// @Param email path string true "Student email"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{email} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	if err := c.studentService.DeleteStudent(ctx, ctx.Param("email")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ImportStudents adds students from an uploaded xlsx workbook
// @Summary Import students from a workbook
// @Tags students
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "xlsx workbook laid out like the student table"
// @Success 200 {object} dto.APIResponse{data=models.ImportResult}
// @Failure 400 {object} dto.ErrorResponse "Missing or unreadable workbook"
// @Router /students/import [post]
func (c *StudentController) ImportStudents(ctx *gin.Context) {
	header, err := ctx.FormFile(importFormField)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewCustomError(apperrors.ErrBadRequest, "a workbook must be uploaded in the \"file\" field"))
		return
	}

	file, err := header.Open()
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewCustomError(apperrors.ErrBadRequest, "uploaded workbook cannot be read"))
		return
	}
	defer file.Close()

	result, err := c.studentService.ImportFromSpreadsheet(ctx, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}
