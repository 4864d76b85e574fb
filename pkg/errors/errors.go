package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Common error constructors

// BadRequest creates a 400 error
func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    "BAD_REQUEST",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

// Forbidden creates a 403 error
func Forbidden(message string, err error) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: message,
		Status:  http.StatusForbidden,
		Err:     err,
	}
}

// NotFound creates a 404 error
func NotFound(message string, err error) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: message,
		Status:  http.StatusNotFound,
		Err:     err,
	}
}

// Conflict creates a 409 error
func Conflict(message string, err error) *AppError {
	return &AppError{
		Code:    "CONFLICT",
		Message: message,
		Status:  http.StatusConflict,
		Err:     err,
	}
}

// Internal creates a 500 error
func Internal(message string, err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// Domain-specific errors

var (
	ErrUserNotFound      = NotFound("User not found", nil)
	ErrPassengerNotFound = NotFound("Passenger not found", nil)
	ErrDriverNotFound    = NotFound("Driver not found", nil)
	ErrRideNotFound      = NotFound("Ride not found", nil)
	ErrLocationNotFound  = NotFound("User location not recorded", nil)

	ErrUsernameTaken = Conflict("Username already exists", nil)
	ErrEmailTaken    = Conflict("Email already exists", nil)
	ErrRideNotOpen   = Conflict("Ride is not available to accept", nil)

	ErrInvalidUserType = BadRequest("user_type must be \"passenger\" or \"driver\"", nil)
	ErrInvalidStatus   = BadRequest("Invalid ride status", nil)
	ErrMissingRoute    = BadRequest("Ride is missing origin or destination coordinates", nil)
	ErrNoReceiver      = BadRequest("Receiver not assigned yet (ride not accepted)", nil)

	ErrNotRideMember = Forbidden("User is not part of this ride", nil)

	ErrRouteUnavailable     = Internal("Route service unavailable", nil)
	ErrGeocodingUnavailable = Internal("Geocoding service unavailable", nil)
)

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError attempts to convert an error to AppError
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	// Return generic internal error if not an AppError
	return Internal("An unexpected error occurred", err)
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
