package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation does not apply to the resource's current state.
var ErrConflict = errors.New("conflict with current state")

// ErrUnauthorized indicates that no valid session backs the request.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the identity is authenticated but lacks the required role.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidCredentials is returned by login when the email/password pair is unknown.
var ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrUnauthorized)

// ErrAlreadyDecided is returned when a decision is replayed on a terminal access request.
var ErrAlreadyDecided = fmt.Errorf("%w: access request already decided", ErrConflict)

// ErrAlreadyDisabled is returned when offboarding an employee that is already disabled.
var ErrAlreadyDisabled = fmt.Errorf("%w: employee already disabled", ErrConflict)

// ErrEmployeeDisabled is returned when granting access to an offboarded employee.
var ErrEmployeeDisabled = fmt.Errorf("%w: employee is disabled", ErrConflict)

// ErrSuperseded is returned when a newer search from the same session replaced this one.
var ErrSuperseded = errors.New("superseded by a newer request")

// AppError carries an HTTP-ish status code alongside an infrastructure failure.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps err with a status code and a short message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
