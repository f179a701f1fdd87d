package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidAction      = errors.New("action must be approve or reject")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrAuditNotDurable    = errors.New("audit entry could not be persisted")
)

// Machine-readable error codes surfaced in JSON bodies
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeNotFound      = "NOT_FOUND"
	CodeForbidden     = "FORBIDDEN"
	CodeConflict      = "CONFLICT"
	CodeStorage       = "STORAGE_UNAVAILABLE"
	CodeInternalError = "INTERNAL_ERROR"
)

// AppError represents an application error with HTTP status and code
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors

func Validation(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeValidation, message, ErrInvalidInput)
}

func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

// Forbidden covers both missing/invalid credentials and an insufficient
// admin claim: a presented-but-invalid credential is treated as forbidden
// rather than unauthenticated.
func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrForbidden)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message, ErrAlreadyExists)
}

// StorageUnavailable hides driver detail from the client; callers log the
// underlying error server-side.
func StorageUnavailable(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeStorage, "storage temporarily unavailable", err)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", err)
}

// FromError maps a sentinel error onto its HTTP shape. Unknown errors
// become an opaque 500.
func FromError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return NotFound("resource not found")
	case errors.Is(err, ErrAlreadyExists):
		return Conflict("resource already exists")
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidAction):
		return Validation(err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		return Forbidden("invalid credentials")
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrForbidden):
		return Forbidden("access denied")
	case errors.Is(err, ErrStorageUnavailable):
		return StorageUnavailable(err)
	default:
		return InternalError(err)
	}
}
