package api

import (
	"errors"
	"net/http"

	"github.com/Noorain464/GoogleDrive/internal/service"
	"github.com/Noorain464/GoogleDrive/internal/store"
)

// APIError represents a structured error response to be sent to the client.
// It implements the standard `error` interface. Code is a stable machine
// readable identifier; Message is for humans.
type APIError struct {
	// Status is the HTTP status code that corresponds to this error.
	Status int `json:"status"`
	// Code is the stable error code clients can branch on.
	Code string `json:"code"`
	// Message is the user-friendly error message.
	Message string `json:"message"`
	// Reason carries the reason code of a rejected move, when applicable.
	Reason string `json:"reason,omitempty"`
}

// Error implements the error interface, allowing APIError to be used as a
// standard error.
func (e *APIError) Error() string {
	return e.Message
}

// --- Error Constructors ---

// NewBadRequestError creates an error representing a 400 Bad Request.
// Useful for validation failures or malformed requests.
func NewBadRequestError(message string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    "validation_error",
		Message: message,
	}
}

// NewUnauthorizedError creates an error representing a 401 Unauthorized.
// Useful when authentication is required and has failed or has not yet been provided.
func NewUnauthorizedError(message string) *APIError {
	return &APIError{
		Status:  http.StatusUnauthorized,
		Code:    "unauthorized",
		Message: message,
	}
}

// NewNotFoundError creates an error representing a 404 Not Found.
func NewNotFoundError(message string) *APIError {
	return &APIError{
		Status:  http.StatusNotFound,
		Code:    "not_found",
		Message: message,
	}
}

// NewConflictError creates an error representing a 409 Conflict.
func NewConflictError(code, message string) *APIError {
	return &APIError{
		Status:  http.StatusConflict,
		Code:    code,
		Message: message,
	}
}

// NewInternalServerError creates an error representing a 500 Internal Server Error.
// This should be used for unexpected server-side issues.
func NewInternalServerError() *APIError {
	return &APIError{
		Status:  http.StatusInternalServerError,
		Code:    "store_error",
		Message: "An unexpected error occurred. Please try again later.",
	}
}

// --- Error Translation ---

// FromServiceError translates errors from the service/store layer into
// specific APIError values. This keeps the HTTP handlers decoupled from the
// underlying implementations, and guarantees that untranslatable errors leak
// no detail to the client.
func FromServiceError(err error) *APIError {
	var moveErr *service.InvalidMoveError
	if errors.As(err, &moveErr) {
		return &APIError{
			Status:  http.StatusBadRequest,
			Code:    "invalid_move",
			Message: "The item cannot be moved to that destination",
			Reason:  string(moveErr.Reason),
		}
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		return NewNotFoundError("The requested resource could not be found")
	case errors.Is(err, store.ErrConflict):
		return NewConflictError("conflict", "A conflict occurred with the current state of the resource")
	case errors.Is(err, service.ErrValidation):
		return NewBadRequestError(err.Error())
	case errors.Is(err, service.ErrParentStillTrashed):
		return NewConflictError("parent_still_trashed", "The item's parent folder is still in the trash")
	case errors.Is(err, service.ErrNotInTrash):
		return NewConflictError("not_in_trash", "The item must be in the trash first")
	case errors.Is(err, service.ErrGranteeNotFound):
		return &APIError{Status: http.StatusNotFound, Code: "grantee_not_found", Message: "No user exists with that email"}
	case errors.Is(err, service.ErrGrantNotFound):
		return &APIError{Status: http.StatusNotFound, Code: "grant_not_found", Message: "The item is not shared with that user"}
	case errors.Is(err, service.ErrInvalidCredentials):
		return NewUnauthorizedError("Invalid email or password")
	}

	// For any other untranslatable error, return a generic internal server
	// error to avoid leaking implementation details to the client.
	return NewInternalServerError()
}
