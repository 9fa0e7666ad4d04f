package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInvalidAmount indicates that a submitted monetary amount did not parse
// to a positive number. It is a validation error, so callers matching
// ErrValidation will also match this.
var ErrInvalidAmount = fmt.Errorf("%w: amount must be a positive number", ErrValidation)

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that no authenticated user is present.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates that the authenticated user may not act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrRemote indicates that a query against the backing store failed
// (transport or query error). Operations reporting it are never retried
// automatically; the caller decides whether to re-issue the action.
var ErrRemote = errors.New("remote store error")

// ErrCreation indicates that an insert was accepted but returned no
// generated identifier, leaving the outcome ambiguous. The user must retry.
var ErrCreation = errors.New("creation returned no identifier")

// ErrNothingToExport indicates that an export was requested while the
// displayed entry list is empty.
var ErrNothingToExport = errors.New("nothing to export")

// ErrRefreshTokenExpired indicates that the presented refresh token is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// AppError carries an HTTP-ish status code and a user-presentable message
// alongside the underlying error.
type AppError struct {
	Code    int
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

// NewAppError creates an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError for a missing resource.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewBadRequestError creates an AppError for invalid input.
func NewBadRequestError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}

// NewUnauthorizedError creates an AppError for a failed authentication check.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: 401, Message: message, Err: ErrUnauthorized}
}

// NewInternalServerError creates an AppError for an unexpected server-side failure.
func NewInternalServerError(message string) *AppError {
	return &AppError{Code: 500, Message: message}
}

// NewGatewayTimeoutError creates an AppError for an upstream service that did not respond.
func NewGatewayTimeoutError(message string) *AppError {
	return &AppError{Code: 504, Message: message, Err: ErrRemote}
}
