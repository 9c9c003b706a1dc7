package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrEmailAlreadyExists = errors.New("email already in use")
	ErrTokenRevoked       = errors.New("token has been revoked")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Path and folder errors
var (
	ErrInvalidPath         = errors.New("invalid path")
	ErrInvalidFolderName   = errors.New("invalid folder name")
	ErrFolderAlreadyExists = errors.New("folder already exists")
	ErrFolderNotFound      = errors.New("folder not found")
)

// File errors
var (
	ErrFileNotFound   = errors.New("file not found")
	ErrFileEmpty      = errors.New("uploaded file is empty")
	ErrFileTooLarge   = errors.New("uploaded file exceeds the maximum allowed size")
	ErrFileTypeDenied = errors.New("file type is not allowed")
	ErrFileStorage    = errors.New("file storage operation failed")
)

// Entity lookup errors
var (
	ErrUserNotFound             = errors.New("user not found")
	ErrProfessorNotFound        = errors.New("professor not found")
	ErrDepartmentNotFound       = errors.New("department not found")
	ErrAcademicYearNotFound     = errors.New("academic year not found")
	ErrSemesterNotFound         = errors.New("semester not found")
	ErrCourseNotFound           = errors.New("course not found")
	ErrCourseAssignmentNotFound = errors.New("course assignment not found")
)

// Content errors
var (
	ErrInvalidFormat = errors.New("invalid token format")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewInvalidPathError creates a new custom error for a malformed or traversal path
func NewInvalidPathError(message string) error {
	return &CustomError{
		Err:     ErrInvalidPath,
		Message: message,
	}
}

// NewInvalidFolderNameError creates a custom error carrying the exact naming rule
// that was violated, so the client can echo it to the user
func NewInvalidFolderNameError(message string) error {
	return &CustomError{
		Err:     ErrInvalidFolderName,
		Message: message,
	}
}

// NewEntityNotFoundError wraps one of the entity sentinels with the identifier that failed
func NewEntityNotFoundError(sentinel error, message string) error {
	return &CustomError{
		Err:     sentinel,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err       error
	Message   string
	StatusMsg string
	Code      string
	Details   map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// WithStatusMsg adds a user-friendly status message
func (e *CustomError) WithStatusMsg(msg string) *CustomError {
	e.StatusMsg = msg
	return e
}
