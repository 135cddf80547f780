package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/checkmygrade/internal/app/models"
	"github.com/yigit/checkmygrade/internal/app/models/dto"
	"github.com/yigit/checkmygrade/internal/pkg/apperrors"
	"github.com/yigit/checkmygrade/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestErrorDetailMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   dto.ErrorCode
	}{
		{"not found", apperrors.NewResourceNotFoundError("student \"a\" not found"), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"duplicate", apperrors.NewAlreadyExistsError("exists"), http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"validation", apperrors.NewValidationError("bad marks"), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"bad request", apperrors.NewCustomError(apperrors.ErrBadRequest, "no file"), http.StatusBadRequest, dto.ErrorCodeBadRequest},
		{"credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{"forbidden", apperrors.NewForbiddenError("not yours"), http.StatusForbidden, dto.ErrorCodeForbidden},
		{"storage", apperrors.NewStorageError("data/student.csv", errors.New("disk full")), http.StatusInternalServerError, dto.ErrorCodeStorageError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, detail := errorDetail(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, detail.Code)
		})
	}
}

func TestErrorDetailKeepsMessage(t *testing.T) {
	_, detail := errorDetail(apperrors.NewResourceNotFoundError("student \"a@x.edu\" not found"))
	assert.Equal(t, "student \"a@x.edu\" not found", detail.Message)

	// Storage paths stay out of responses
	_, detail = errorDetail(apperrors.NewStorageError("/srv/data/student.csv", errors.New("disk full")))
	assert.NotContains(t, detail.Message, "/srv/data")
}

func TestErrorDetailFieldAndSeverity(t *testing.T) {
	_, detail := errorDetail(apperrors.NewFieldValidationError("marks", "marks must be an integer, got \"high\""))
	assert.Equal(t, "marks", detail.Field)
	assert.Equal(t, dto.ErrorSeverityError, detail.Severity)

	_, detail = errorDetail(apperrors.NewValidationError("no field"))
	assert.Empty(t, detail.Field)

	_, detail = errorDetail(apperrors.NewStorageError("/srv/data/student.csv", errors.New("disk full")))
	assert.Equal(t, dto.ErrorSeverityCritical, detail.Severity)
	assert.Equal(t, "storage failure", detail.Message)

	_, detail = errorDetail(errors.New("boom"))
	assert.Equal(t, dto.ErrorSeverityCritical, detail.Severity)
}

func TestRequestIDReusesCallerHeader(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Body.String(), 36)
}

// fakeRoles serves roles from a map; unknown users are denied.
type fakeRoles map[string]models.RoleType

func (f fakeRoles) RoleOf(_ context.Context, userID string) (models.RoleType, error) {
	role, ok := f[userID]
	if !ok {
		return "", apperrors.NewForbiddenError("account no longer exists")
	}
	return role, nil
}

func newAuthRouter(t *testing.T, roles fakeRoles) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "checkmygrade.test",
	})
	m := NewAuthMiddleware(jwtService, roles)

	router := gin.New()
	protected := router.Group("", m.JWTAuth())
	protected.GET("/me", func(c *gin.Context) { c.String(http.StatusOK, CurrentUserID(c)) })
	protected.GET("/admin", m.RoleRequired(models.RoleProfessor), func(c *gin.Context) { c.Status(http.StatusOK) })
	return router, jwtService
}

func TestJWTAuthAndRoleRequired(t *testing.T) {
	roles := fakeRoles{"ada@sjsu.edu": models.RoleStudent, "hopper@sjsu.edu": models.RoleProfessor}
	router, jwtService := newAuthRouter(t, roles)

	studentToken, _, err := jwtService.GenerateAccessToken(&models.Account{UserID: "ada@sjsu.edu", Role: models.RoleStudent})
	require.NoError(t, err)
	professorToken, _, err := jwtService.GenerateAccessToken(&models.Account{UserID: "hopper@sjsu.edu", Role: models.RoleProfessor})
	require.NoError(t, err)

	get := func(path, header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := get("/me", "Bearer "+studentToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ada@sjsu.edu", w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, get("/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, get("/me", "Token "+studentToken).Code)
	assert.Equal(t, http.StatusForbidden, get("/admin", "Bearer "+studentToken).Code)
	assert.Equal(t, http.StatusOK, get("/admin", "Bearer "+professorToken).Code)

	// The stored role wins over the role claim in a still-valid token
	roles["hopper@sjsu.edu"] = models.RoleStudent
	assert.Equal(t, http.StatusForbidden, get("/admin", "Bearer "+professorToken).Code)
	roles["ada@sjsu.edu"] = models.RoleProfessor
	assert.Equal(t, http.StatusOK, get("/admin", "Bearer "+studentToken).Code)

	delete(roles, "ada@sjsu.edu")
	w = get("/admin", "Bearer "+studentToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, http.StatusOK, get("/me", "Bearer "+studentToken).Code)
}

func TestBindJSONReportsFields(t *testing.T) {
	router := gin.New()
	router.POST("/", func(c *gin.Context) {
		var req dto.CreateAccountRequest
		if !BindJSON(c, &req) {
			return
		}
		c.Status(http.StatusOK)
	})

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := post(`{"userId":"x","password":"pw","role":"dean"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VAL_001")
	assert.Contains(t, w.Body.String(), "Password must be at least 4")
	assert.Contains(t, w.Body.String(), "Role must be one of: student professor")

	w = post(`{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VAL_002")

	w = post(`{"userId":"x","password":"pass","role":"dean"}`)
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Role", resp.Error.Field)

	w = post(`{"userId":"x","password":"pass","role":"student"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}
