package helper

import (
	"errors"
	"net/http"
)

const (
	MsgInternalServerError = "Internal Server Error"
	MsgBadRequest          = "Bad Request"
	MsgNotFound            = "Not Found"
	MsgMethodNotAllowed    = "Method Not Allowed"
	MsgTooManyRequests     = "Too Many Requests"
	MsgServiceUnavailable  = "Service Unavailable"
	MsgValidationFailed    = "Validation failed"
	MsgInvalidID           = "Invalid report ID"
	MsgPersistenceFailed   = "Failed to access report storage"
	MsgUploadFailed        = "Failed to upload file, please retry"
)

type ErrorKind string

const (
	KindGeneric     ErrorKind = "generic"
	KindValidation  ErrorKind = "validation"
	KindInvalidID   ErrorKind = "invalid_id"
	KindNotFound    ErrorKind = "not_found"
	KindPersistence ErrorKind = "persistence"
	KindUpload      ErrorKind = "upload"
)

// AppError is the single error type crossing the service boundary. Err holds
// the underlying cause and is never rendered to clients.
type AppError struct {
	Code    int
	Kind    ErrorKind
	Message string
	Details []string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    KindGeneric,
		Message: message,
	}
}

func NewBadRequestError(message string) *AppError {
	if message == "" {
		message = MsgBadRequest
	}
	return NewAppError(http.StatusBadRequest, message)
}

func NewInternalServerError(message string) *AppError {
	if message == "" {
		message = MsgInternalServerError
	}
	return NewAppError(http.StatusInternalServerError, message)
}

func NewNotFoundError(message string) *AppError {
	if message == "" {
		message = MsgNotFound
	}
	err := NewAppError(http.StatusNotFound, message)
	err.Kind = KindNotFound
	return err
}

func NewMethodNotAllowedError(message string) *AppError {
	if message == "" {
		message = MsgMethodNotAllowed
	}
	return NewAppError(http.StatusMethodNotAllowed, message)
}

func NewTooManyRequestsError(message string) *AppError {
	if message == "" {
		message = MsgTooManyRequests
	}
	return NewAppError(http.StatusTooManyRequests, message)
}

func NewServiceUnavailableError(message string) *AppError {
	if message == "" {
		message = MsgServiceUnavailable
	}
	return NewAppError(http.StatusServiceUnavailable, message)
}

func NewValidationError(details []string) *AppError {
	err := NewAppError(http.StatusBadRequest, MsgValidationFailed)
	err.Kind = KindValidation
	err.Details = details
	return err
}

func NewInvalidIDError() *AppError {
	err := NewAppError(http.StatusBadRequest, MsgInvalidID)
	err.Kind = KindInvalidID
	return err
}

func NewPersistenceError(cause error) *AppError {
	err := NewAppError(http.StatusInternalServerError, MsgPersistenceFailed)
	err.Kind = KindPersistence
	err.Err = cause
	return err
}

func NewUploadError(cause error) *AppError {
	err := NewAppError(http.StatusInternalServerError, MsgUploadFailed)
	err.Kind = KindUpload
	err.Err = cause
	return err
}

func IsKind(err error, kind ErrorKind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}
