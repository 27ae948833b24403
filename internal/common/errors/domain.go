package commonerrors

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCategory string

const (
	CategoryValidation   ErrorCategory = "VALIDATION"
	CategoryUnauthorized ErrorCategory = "UNAUTHORIZED"
	CategoryNotFound     ErrorCategory = "NOT_FOUND"
	CategoryConflict     ErrorCategory = "CONFLICT"
	CategoryInternal     ErrorCategory = "INTERNAL"
	CategoryExternal     ErrorCategory = "EXTERNAL"
)

// DomainError carries the machine-readable code and HTTP status a failure maps
// to at the transport boundary. Message is what the caller sees; the cause
// stays in logs.
type DomainError interface {
	error
	Code() string
	Category() ErrorCategory
	HTTPStatus() int
	Message() string
	Unwrap() error
	WithCause(cause error) DomainError
}

type domainError struct {
	code     string
	category ErrorCategory
	status   int
	message  string
	cause    error
}

func (e *domainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *domainError) Code() string {
	return e.code
}

func (e *domainError) Category() ErrorCategory {
	return e.category
}

func (e *domainError) HTTPStatus() int {
	return e.status
}

func (e *domainError) Message() string {
	return e.message
}

func (e *domainError) Unwrap() error {
	return e.cause
}

func (e *domainError) WithCause(cause error) DomainError {
	return &domainError{
		code:     e.code,
		category: e.category,
		status:   e.status,
		message:  e.message,
		cause:    cause,
	}
}

// Is lets errors.Is match a wrapped copy (same code) against the sentinel.
func (e *domainError) Is(target error) bool {
	var de *domainError
	if errors.As(target, &de) {
		return e.code == de.code
	}
	return false
}

func NewDomainError(code string, category ErrorCategory, status int, message string) DomainError {
	return &domainError{
		code:     code,
		category: category,
		status:   status,
		message:  message,
	}
}

func IsDomainError(err error) bool {
	var de DomainError
	return errors.As(err, &de)
}

func AsDomainError(err error) (DomainError, bool) {
	var de DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

var (
	ErrValidationFailed = NewDomainError(
		"VALIDATION_ERROR",
		CategoryValidation,
		http.StatusBadRequest,
		"validation failed",
	)

	ErrMissingCredential = NewDomainError(
		"MISSING_AUTH_HEADER",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"authorization header missing or invalid",
	)

	// ErrInvalidToken covers expired, forged and malformed tokens alike so the
	// caller cannot probe which one it was.
	ErrInvalidToken = NewDomainError(
		"INVALID_TOKEN",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"invalid or expired token",
	)

	ErrDuplicateIdentity = NewDomainError(
		"USER_EXISTS",
		CategoryConflict,
		http.StatusConflict,
		"user with this email already exists",
	)

	// ErrInvalidCredentials is returned for unknown email and wrong password
	// alike to prevent account enumeration.
	ErrInvalidCredentials = NewDomainError(
		"INVALID_CREDENTIALS",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"invalid credentials",
	)

	// ErrTodoNotFound covers both a missing todo and a todo owned by someone
	// else; the two must be indistinguishable to the caller.
	ErrTodoNotFound = NewDomainError(
		"TODO_NOT_FOUND",
		CategoryNotFound,
		http.StatusNotFound,
		"todo not found or access denied",
	)

	ErrAuthInfrastructure = NewDomainError(
		"AUTH_ERROR",
		CategoryInternal,
		http.StatusInternalServerError,
		"authentication error",
	)

	ErrStoreUnavailable = NewDomainError(
		"STORE_UNAVAILABLE",
		CategoryExternal,
		http.StatusServiceUnavailable,
		"store temporarily unavailable",
	)

	ErrInternal = NewDomainError(
		"INTERNAL_ERROR",
		CategoryInternal,
		http.StatusInternalServerError,
		"internal server error",
	)
)
