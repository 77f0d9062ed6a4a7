// Package errors provides standardized error handling for the recruitment API.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodePositionNotFound           ErrorCode = "POSITION_NOT_FOUND"
	ErrCodePositionAlreadyExists      ErrorCode = "POSITION_ALREADY_EXISTS"
	ErrCodePositionAlreadyDeactivated ErrorCode = "POSITION_ALREADY_DEACTIVATED"
	ErrCodeDeactivationNotAllowed     ErrorCode = "DEACTIVATION_NOT_ALLOWED"

	ErrCodeCandidateNotFound  ErrorCode = "CANDIDATE_NOT_FOUND"
	ErrCodeDuplicateCandidate ErrorCode = "DUPLICATE_CANDIDATE"

	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error. Domain errors are
// terminal for the request that raised them; none is fatal to the process.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewPositionNotFoundError creates a not-found error for a position id.
func NewPositionNotFoundError(id string) *StandardError {
	return &StandardError{
		Code:      ErrCodePositionNotFound,
		Message:   fmt.Sprintf("Position with id %s not found", id),
		Timestamp: time.Now().UTC(),
	}
}

// NewPositionAlreadyExistsError creates a name-collision error: some position
// with the same name is still open.
func NewPositionAlreadyExistsError(name string) *StandardError {
	return &StandardError{
		Code:      ErrCodePositionAlreadyExists,
		Message:   fmt.Sprintf("Position with name %s already exists and is not closed", name),
		Timestamp: time.Now().UTC(),
	}
}

// NewPositionAlreadyDeactivatedError creates an error for cancel/fill against
// an already closed position.
func NewPositionAlreadyDeactivatedError(id string) *StandardError {
	return &StandardError{
		Code:      ErrCodePositionAlreadyDeactivated,
		Message:   fmt.Sprintf("Position with id %s is already closed", id),
		Timestamp: time.Now().UTC(),
	}
}

// NewDeactivationNotAllowedError creates an error for cancelling a position
// that still has candidates linked to it.
func NewDeactivationNotAllowedError(id string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDeactivationNotAllowed,
		Message:   fmt.Sprintf("Cannot cancel position %s since there are candidates linked to it", id),
		Timestamp: time.Now().UTC(),
	}
}

// NewCandidateNotFoundError creates a not-found error for a candidate id.
func NewCandidateNotFoundError(id string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCandidateNotFound,
		Message:   fmt.Sprintf("Candidate with id %s not found", id),
		Timestamp: time.Now().UTC(),
	}
}

// NewNoCandidatesAssignedError creates a not-found error for an empty
// assigned-to query result.
func NewNoCandidatesAssignedError(assignedTo string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCandidateNotFound,
		Message:   fmt.Sprintf("No candidates found assigned to %s", assignedTo),
		Timestamp: time.Now().UTC(),
	}
}

// NewDuplicateCandidateError creates a uniqueness-violation error; field is
// the colliding attribute ("phone number" or "email").
func NewDuplicateCandidateError(field string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDuplicateCandidate,
		Message:   fmt.Sprintf("Candidate with this %s already exists", field),
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationError creates a request-shape validation error carrying the
// first failing field's message.
func NewValidationError(message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected failure.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected internal error",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
}

// HTTPStatus maps an error code to the status the API surfaces it with.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodePositionNotFound, ErrCodeCandidateNotFound:
		return http.StatusNotFound
	case ErrCodePositionAlreadyExists:
		return http.StatusConflict
	case ErrCodePositionAlreadyDeactivated,
		ErrCodeDeactivationNotAllowed,
		ErrCodeDuplicateCandidate,
		ErrCodeValidationFailed:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf extracts the error code from an error, or ErrCodeInternal when the
// error is not a StandardError.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ErrCodeInternal
}

// IsCode reports whether err is a StandardError with the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
