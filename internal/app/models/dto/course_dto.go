package dto

import "github.com/yigit/checkmygrade/internal/app/models"

// CreateCourseRequest represents a new catalog course
type CreateCourseRequest struct {
	ID          string `json:"id" binding:"required" example:"DATA200"`
	Name        string `json:"name" binding:"required" example:"Data Analytics"`
	Description string `json:"description" example:"Intro to data analytics"`
	Credits     string `json:"credits" example:"3"`
}

// ToModel converts the request to a catalog row
func (r *CreateCourseRequest) ToModel() models.Course {
	return models.Course{ID: r.ID, Name: r.Name, Description: r.Description, Credits: r.Credits}
}

// UpdateCourseRequest modifies a course; blank fields keep stored values
type UpdateCourseRequest struct {
	Name        string `json:"name" example:"Data Analytics"`
	Description string `json:"description"`
	Credits     string `json:"credits" example:"4"`
}

// ToPatch converts the request to a catalog patch
func (r *UpdateCourseRequest) ToPatch() models.Course {
	return models.Course{Name: r.Name, Description: r.Description, Credits: r.Credits}
}
