package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// Error codes used across the application error taxonomy.
const (
	CodeNotFound               = "NOT_FOUND"
	CodeValidationError        = "VALIDATION_ERROR"
	CodePermissionDenied       = "PERMISSION_DENIED"
	CodeAuthenticationRequired = "AUTHENTICATION_REQUIRED"
	CodeInternalError          = "INTERNAL_ERROR"
)

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError reports that the identified resource does not exist.
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %v not found", resource, id),
	}
}

// NewValidationError reports invalid or missing input.
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidationError,
		Message: message,
	}
}

// NewPermissionDeniedError reports an action the actor is not allowed to take.
func NewPermissionDeniedError(message string) *AppError {
	return &AppError{
		Code:    CodePermissionDenied,
		Message: message,
	}
}

// NewAuthenticationRequiredError reports an identity-required operation
// attempted by an anonymous caller.
func NewAuthenticationRequiredError(message string) *AppError {
	return &AppError{
		Code:    CodeAuthenticationRequired,
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternalError,
		Message: "Internal server error",
		Err:     err,
	}
}

func hasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsNotFound reports whether err carries the NOT_FOUND code.
func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

// IsValidationError reports whether err carries the VALIDATION_ERROR code.
func IsValidationError(err error) bool { return hasCode(err, CodeValidationError) }

// IsPermissionDenied reports whether err carries the PERMISSION_DENIED code.
func IsPermissionDenied(err error) bool { return hasCode(err, CodePermissionDenied) }

// IsAuthenticationRequired reports whether err carries the AUTHENTICATION_REQUIRED code.
func IsAuthenticationRequired(err error) bool { return hasCode(err, CodeAuthenticationRequired) }

// RespondWithError writes a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	var appErr *AppError
	if errors.As(err, &appErr) {
		response = ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}
