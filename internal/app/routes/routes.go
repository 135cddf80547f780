package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/checkmygrade/internal/app/controllers"
	"github.com/yigit/checkmygrade/internal/app/models"
	"github.com/yigit/checkmygrade/internal/middleware"
)

// Handlers groups the controllers mounted by SetupRouter
type Handlers struct {
	Auth       *controllers.AuthController
	Students   *controllers.StudentController
	Courses    *controllers.CourseController
	Professors *controllers.ProfessorController
	Reports    *controllers.ReportController
	Health     *controllers.HealthController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	router.GET("/health", h.Health.Health)
	router.GET("/ping", h.Health.Ping)

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	v1.POST("/auth/login", h.Auth.Login)

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	// Routes below additionally require the professor role
	professorOnly := authMiddleware.RoleRequired(models.RoleProfessor)

	authenticated.POST("/auth/change-password", h.Auth.ChangePassword)

	students := authenticated.Group("/students")
	{
		// Students may read their own records; the controller checks ownership
		students.GET("/:email", h.Students.GetStudent)
		students.GET("/:email/marks", h.Students.GetMarks)
		students.GET("/:email/grades", h.Students.GetGrades)

		studentsProtected := students.Group("")
		studentsProtected.Use(professorOnly)
		{
			studentsProtected.GET("", h.Students.ListStudents)
			studentsProtected.POST("", h.Students.CreateStudent)
			studentsProtected.POST("/import", h.Students.ImportStudents)
			studentsProtected.PUT("/:email/courses/:courseId", h.Students.UpdateCourseRecord)
			studentsProtected.DELETE("/:email", h.Students.DeleteStudent)
		}
	}

	courses := authenticated.Group("/courses")
	{
		courses.GET("", h.Courses.GetAllCourses)
		courses.GET("/stats", h.Courses.GetCourseStats)
		courses.GET("/:id", h.Courses.GetCourseByID)
		courses.GET("/:id/professors", h.Courses.GetCourseProfessors)

		coursesProtected := courses.Group("")
		coursesProtected.Use(professorOnly)
		{
			coursesProtected.POST("", h.Courses.CreateCourse)
			coursesProtected.PATCH("/:id", h.Courses.UpdateCourse)
			coursesProtected.DELETE("/:id", h.Courses.DeleteCourse)
		}
	}

	professors := authenticated.Group("/professors")
	professors.Use(professorOnly)
	{
		professors.GET("", h.Professors.GetAllProfessors)
		professors.POST("", h.Professors.CreateProfessor)
		professors.GET("/:id", h.Professors.GetProfessor)
		professors.PATCH("/:id", h.Professors.UpdateProfessor)
		professors.DELETE("/:id", h.Professors.DeleteProfessor)
		professors.GET("/:id/courses", h.Professors.GetProfessorCourses)
	}

	accounts := authenticated.Group("/accounts")
	accounts.Use(professorOnly)
	{
		accounts.POST("", h.Auth.CreateAccount)
	}

	reports := authenticated.Group("/reports")
	reports.Use(professorOnly)
	{
		reports.GET("/export.xlsx", h.Reports.ExportWorkbook)
	}
}
