package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yigit/checkmygrade/internal/pkg/apperrors"
)

// RoleType defines the account role type
type RoleType string

const (
	RoleStudent   RoleType = "student"
	RoleProfessor RoleType = "professor"
)

// Valid reports whether r is a known role.
func (r RoleType) Valid() bool {
	return r == RoleStudent || r == RoleProfessor
}

// Relative grades assigned against a course mean
const (
	GradeAboveMean = "A"
	GradeAtMean    = "B"
	GradeBelowMean = "C"
)

// ParseMarks parses a decimal integer mark as stored in the student table.
func ParseMarks(value string) (int, error) {
	marks, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, apperrors.NewFieldValidationError("marks", fmt.Sprintf("marks must be an integer, got %q", value))
	}
	return marks, nil
}
