package dto

import (
	"encoding/json"

	"github.com/yigit/checkmygrade/internal/app/models"
)

// EnrollmentRequest is one course of a new student
type EnrollmentRequest struct {
	CourseID string      `json:"courseId" binding:"required" example:"DATA200"`
	Grade    string      `json:"grade" example:"A"`
	Marks    json.Number `json:"marks" binding:"required" swaggertype:"integer" example:"91"`
}

// CreateStudentRequest represents a new student with their courses
type CreateStudentRequest struct {
	Email     string              `json:"email" binding:"required"`
	FirstName string              `json:"firstName" binding:"required"`
	LastName  string              `json:"lastName" binding:"required"`
	Courses   []EnrollmentRequest `json:"courses" binding:"required,min=1,dive"`
}

// Enrollments converts the request courses to ledger input
func (r *CreateStudentRequest) Enrollments() []models.Enrollment {
	enrollments := make([]models.Enrollment, 0, len(r.Courses))
	for _, c := range r.Courses {
		enrollments = append(enrollments, models.Enrollment{CourseID: c.CourseID, Grade: c.Grade, Marks: c.Marks.String()})
	}
	return enrollments
}

// UpdateCourseRecordRequest overwrites grade and marks of one course
type UpdateCourseRecordRequest struct {
	Grade string      `json:"grade" example:"B"`
	Marks json.Number `json:"marks" binding:"required" swaggertype:"integer" example:"78"`
}

// StudentListResponse is one page of students
type StudentListResponse struct {
	Students   []models.Student `json:"students"`
	Pagination PaginationInfo   `json:"pagination"`
}
