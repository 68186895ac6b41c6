package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeValidation         ErrorCode = "VALIDATION"
	ErrCodeConflict           ErrorCode = "CONFLICT"
	ErrCodeDuplicateRequest   ErrorCode = "DUPLICATE_REQUEST"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeAccountDisabled    ErrorCode = "ACCOUNT_DISABLED"
	ErrCodeUnauthenticated    ErrorCode = "UNAUTHENTICATED"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid       ErrorCode = "TOKEN_INVALID"
	ErrCodeTokenIncomplete    ErrorCode = "TOKEN_INCOMPLETE"
	ErrCodeForbidden          ErrorCode = "FORBIDDEN"
	ErrCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrCodeRateLimited        ErrorCode = "RATE_LIMITED"
	ErrCodeStoreBusy          ErrorCode = "STORE_BUSY"
	ErrCodeInternal           ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors. InvalidCredentials is shared by the unknown-RUT and
// wrong-password paths so responses do not reveal whether an account exists.
var (
	ErrInvalidCredentials = NewError(ErrCodeInvalidCredentials, "invalid credentials")
	ErrAccountDisabled    = NewError(ErrCodeAccountDisabled, "user account is disabled")
	ErrRUTTaken           = NewError(ErrCodeConflict, "rut is already registered")
	ErrEmailTaken         = NewError(ErrCodeConflict, "email is already registered")
	ErrDuplicateRequest   = NewError(ErrCodeDuplicateRequest, "a pending membership request already exists")
	ErrRequestNotFound    = NewError(ErrCodeNotFound, "membership request not found")
	ErrUserNotFound       = NewError(ErrCodeNotFound, "user not found")
	ErrUnauthenticated    = NewError(ErrCodeUnauthenticated, "authentication required")
	ErrForbidden          = NewError(ErrCodeForbidden, "insufficient role for this action")
	ErrTooManyAttempts    = NewError(ErrCodeRateLimited, "too many failed login attempts, try again later")
	ErrStoreBusy          = NewError(ErrCodeStoreBusy, "storage is busy, try again later")
	ErrInvalidPayload     = NewError(ErrCodeValidation, "invalid payload")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

// CodeOf extracts the semantic code from err, defaulting to internal.
func CodeOf(err error) ErrorCode {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code
	}
	return ErrCodeInternal
}
