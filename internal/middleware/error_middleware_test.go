package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alquds/archivesystem/internal/app/models/dto"
	"github.com/alquds/archivesystem/internal/pkg/apperrors"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"invalid path", apperrors.NewInvalidPathError("bad"), http.StatusBadRequest, dto.ErrorCodeInvalidPath},
		{"invalid folder name", apperrors.NewInvalidFolderNameError("bad"), http.StatusBadRequest, dto.ErrorCodeInvalidFolderName},
		{"folder exists", apperrors.ErrFolderAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"folder missing", apperrors.ErrFolderNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"file missing", apperrors.ErrFileNotFound, http.StatusNotFound, dto.ErrorCodeFileNotFound},
		{"file empty", apperrors.ErrFileEmpty, http.StatusBadRequest, dto.ErrorCodeFileEmpty},
		{"file too large", apperrors.ErrFileTooLarge, http.StatusRequestEntityTooLarge, dto.ErrorCodeFileTooLarge},
		{"file type denied", apperrors.ErrFileTypeDenied, http.StatusBadRequest, dto.ErrorCodeFileTypeDenied},
		{"storage failure", apperrors.ErrFileStorage, http.StatusInternalServerError, dto.ErrorCodeFileStorage},
		{"professor missing", apperrors.NewEntityNotFoundError(apperrors.ErrProfessorNotFound, "x"), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"forbidden", apperrors.NewForbiddenError("no"), http.StatusForbidden, dto.ErrorCodeForbidden},
		{"bad credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{"expired token", apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{"email exists", apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"conflict", apperrors.NewConflictError("dup"), http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"bad request", apperrors.NewBadRequestError("bad"), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, detail := classify(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, detail.Code)
		})
	}
}

func TestHandleAPIErrorCarriesServiceMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest("GET", "/api/v1/file-explorer/list", nil)

	HandleAPIError(c, apperrors.NewForbiddenError("you do not have permission to view 2024-2025/first/prof_9"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.True(t, c.IsAborted())

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrorCodeForbidden, resp.Error.Code)
	assert.Equal(t, "you do not have permission to view 2024-2025/first/prof_9", resp.Error.Message)
}

func TestHandleAPIErrorHidesInternalDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest("GET", "/api/v1/file-explorer/list", nil)

	HandleAPIError(c, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Internal server error", resp.Error.Message)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}
