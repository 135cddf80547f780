package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/checkmygrade/internal/app/models/dto"
	"github.com/yigit/checkmygrade/internal/app/services"
	"github.com/yigit/checkmygrade/internal/middleware"
)

// ProfessorController handles faculty ledger operations
type ProfessorController struct {
	professorService services.ProfessorService
	directoryService services.DirectoryService
}

// NewProfessorController creates a new ProfessorController
func NewProfessorController(professorService services.ProfessorService, directoryService services.DirectoryService) *ProfessorController {
	return &ProfessorController{
		professorService: professorService,
		directoryService: directoryService,
	}
}

// GetAllProfessors lists every professor with their courses
// @Summary List professors
// @Tags professors
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Professor}
// @Router /professors [get]
func (c *ProfessorController) GetAllProfessors(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.professorService.ListProfessors(ctx)))
}

// GetProfessor returns one professor's records
// @Summary Get a professor
// @Tags professors
// @Produce json
// @Security BearerAuth
// @Param id path string true "Professor id"
// @Success 200 {object} dto.APIResponse{data=models.Professor}
// @Failure 404 {object} dto.ErrorResponse "Professor not found"
// @Router /professors/{id} [get]
func (c *ProfessorController) GetProfessor(ctx *gin.Context) {
	professor, err := c.professorService.RecordsFor(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(professor))
}

// GetProfessorCourses returns the catalog rows of a professor's courses
// @Summary Courses taught by a professor
// @Tags professors
// @Produce json
// @Security BearerAuth
// @Param id path string true "Professor id"
// @Success 200 {object} dto.APIResponse{data=[]models.Course}
// @Failure 404 {object} dto.ErrorResponse "Professor not found"
// @Router /professors/{id}/courses [get]
func (c *ProfessorController) GetProfessorCourses(ctx *gin.Context) {
	courses, err := c.directoryService.CoursesForProfessor(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(courses))
}

// CreateProfessor adds a professor teaching one or more courses
// @Summary Add a professor
// @Tags professors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProfessorRequest true "Professor"
// @Success 201 {object} dto.APIResponse{data=models.Professor}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Professor already exists"
// @Router /professors [post]
func (c *ProfessorController) CreateProfessor(ctx *gin.Context) {
	var req dto.CreateProfessorRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.professorService.AddProfessor(ctx, req.ID, req.Name, req.Rank, req.Courses); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	professor, err := c.professorService.RecordsFor(ctx, req.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(professor))
}

// UpdateProfessor applies name, rank or course overrides
// @Summary Modify a professor
// @Tags professors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Professor id"
// @Param request body dto.UpdateProfessorRequest true "Overrides"
// @Success 200 {object} dto.APIResponse{data=models.Professor}
// @Failure 404 {object} dto.ErrorResponse "Professor not found"
// @Router /professors/{id} [patch]
func (c *ProfessorController) UpdateProfessor(ctx *gin.Context) {
	var req dto.UpdateProfessorRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	id := ctx.Param("id")
	if err := c.professorService.ModifyProfessor(ctx, id, req.ToPatch()); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	professor, err := c.professorService.RecordsFor(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(professor))
}

// DeleteProfessor removes a professor and all their records
// @Summary Delete a professor
// @Tags professors
// @Security BearerAuth
// @Param id path string true "Professor id"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse "Professor not found"
// @Router /professors/{id} [delete]
func (c *ProfessorController) DeleteProfessor(ctx *gin.Context) {
	if err := c.professorService.DeleteProfessor(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
