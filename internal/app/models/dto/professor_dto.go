package dto

import "github.com/yigit/checkmygrade/internal/app/models"

// CreateProfessorRequest represents a new professor with their courses
type CreateProfessorRequest struct {
	ID      string   `json:"id" binding:"required" example:"hopper@sjsu.edu"`
	Name    string   `json:"name" binding:"required" example:"Grace Hopper"`
	Rank    string   `json:"rank" binding:"required" example:"Senior Professor"`
	Courses []string `json:"courses" binding:"required,min=1,dive,required"`
}

// UpdateProfessorRequest holds optional overrides. A non-empty course list
// replaces the professor's courses.
type UpdateProfessorRequest struct {
	Name    *string  `json:"name,omitempty"`
	Rank    *string  `json:"rank,omitempty"`
	Courses []string `json:"courses,omitempty" binding:"omitempty,dive,required"`
}

// ToPatch converts the request to a ledger patch
func (r *UpdateProfessorRequest) ToPatch() models.ProfessorPatch {
	return models.ProfessorPatch{Name: r.Name, Rank: r.Rank, Courses: r.Courses}
}
