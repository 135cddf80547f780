package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/checkmygrade/internal/app/models/dto"
)

// BindJSON binds the request body into obj and validates its binding tags.
// On failure it writes a 400 response listing the offending fields and
// returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(HandleValidationError(err)))
		return false
	}
	return true
}

// HandleValidationError converts a binding error into an error detail
func HandleValidationError(err error) *dto.ErrorDetail {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeBadRequest, "Invalid request format")
		return errorDetail.WithDetails(err.Error())
	}

	validationErrors := dto.NewValidationErrors()
	for _, fe := range fieldErrors {
		validationErrors.AddError(fe.Field(), formatValidationError(fe))
	}

	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")
	if len(fieldErrors) == 1 {
		errorDetail = errorDetail.WithField(fieldErrors[0].Field())
	}
	return errorDetail.WithDetails(validationErrors.Errors)
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
