package errors

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

var (
	// ErrUserNotFound is returned when a user lookup fails.
	ErrUserNotFound = errors.New("user not found")
	// ErrJobNotFound is returned when the referenced job does not exist.
	ErrJobNotFound = errors.New("job not found")
	// ErrApplicationNotFound is returned when an application lookup fails.
	ErrApplicationNotFound = errors.New("application not found")
	// ErrNotAuthorized is returned when the actor does not own the record.
	ErrNotAuthorized = errors.New("not authorized")
	// ErrJobSeekerOnly is returned when an operation requires the Job Seeker role.
	ErrJobSeekerOnly = errors.New("only job seekers can perform this action")
	// ErrEmployerOnly is returned when an operation requires the Employer role.
	ErrEmployerOnly = errors.New("only employers can perform this action")
)

// Response is the envelope every endpoint speaks.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Fail builds a failure envelope with the given message.
func Fail(message string) Response {
	return Response{Success: false, Message: message}
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message}
}

// BadRequest builds a 400 error with the given message.
func BadRequest(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message)
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	switch {
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrJobNotFound),
		errors.Is(err, ErrApplicationNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrNotAuthorized),
		errors.Is(err, ErrJobSeekerOnly),
		errors.Is(err, ErrEmployerOnly):
		return NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NewHTTPError(http.StatusNotFound, "resource not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return NewHTTPError(http.StatusBadRequest, "duplicate field entered")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
