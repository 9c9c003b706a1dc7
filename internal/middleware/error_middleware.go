package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/alquds/archivesystem/internal/app/models/dto"
	"github.com/alquds/archivesystem/internal/pkg/apperrors"
	"github.com/alquds/archivesystem/internal/pkg/logger"
)

// HandleAPIError maps service-layer errors to HTTP responses. Controllers call
// it from every error branch so the status and error-code mapping stays in one
// place.
func HandleAPIError(c *gin.Context, err error) {
	status, detail := classify(err)

	// Attach the service message when the error carries one; sentinel text
	// stays server-side.
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Message != "" {
		detail.Message = customErr.Message
		if len(customErr.Details) > 0 {
			detail = detail.WithDetails(customErr.Details)
		}
	}

	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")
	}

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

func classify(err error) (int, *dto.ErrorDetail) {
	switch {
	// Path and folder errors
	case errors.Is(err, apperrors.ErrInvalidPath):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeInvalidPath, "Invalid path")
	case errors.Is(err, apperrors.ErrInvalidFolderName):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeInvalidFolderName, "Invalid folder name")
	case errors.Is(err, apperrors.ErrFolderAlreadyExists):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Folder already exists")
	case errors.Is(err, apperrors.ErrFolderNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Folder not found")

	// File errors
	case errors.Is(err, apperrors.ErrFileNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeFileNotFound, "File not found")
	case errors.Is(err, apperrors.ErrFileEmpty):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeFileEmpty, "Uploaded file is empty")
	case errors.Is(err, apperrors.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, dto.NewErrorDetail(dto.ErrorCodeFileTooLarge, "File exceeds the maximum allowed size")
	case errors.Is(err, apperrors.ErrFileTypeDenied):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeFileTypeDenied, "File type is not allowed")
	case errors.Is(err, apperrors.ErrFileStorage):
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeFileStorage, "File storage operation failed")

	// Entity lookups
	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrProfessorNotFound,
		apperrors.ErrDepartmentNotFound,
		apperrors.ErrAcademicYearNotFound,
		apperrors.ErrSemesterNotFound,
		apperrors.ErrCourseNotFound,
		apperrors.ErrCourseAssignmentNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found")

	// Authentication and authorization
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrAccountDisabled):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Account is disabled")
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
	case apperrors.Is(err, apperrors.ErrTokenInvalid, apperrors.ErrTokenRevoked, apperrors.ErrInvalidFormat):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrTokenNotFound):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeTokenNotFound, "Token not found")

	// Conflicts and validation
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case apperrors.Is(err, apperrors.ErrConflict, apperrors.ErrResourceAlreadyExists):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Resource already exists")
	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")

	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}
