// Package apperr defines the error kinds surfaced to the HTTP boundary.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// User-visible messages.
const (
	MsgUnauthorized       = "Authentication required"
	MsgInvalidCredentials = "Invalid credentials"
	MsgInvalidToken       = "Unauthorized: invalid or expired token"
	MsgAccessDenied       = "Access denied"
	MsgSuperAdminExists   = "Super Admin already exists"
	MsgAdminExists        = "Admin with this email already exists"
	MsgUserExists         = "User with this email already exists"
	MsgAdminNotFound      = "Admin not found"
	MsgUserNotFound       = "User not found"
	MsgTenantNotSpecified = "Tenant database not specified"
	MsgInvalidTenant      = "Invalid tenant"
	MsgWrongPassword      = "Current password is incorrect"
	MsgPasswordTooLong    = "Password must be at most 72 bytes long"
	MsgValidationFailed   = "Validation failed"
	MsgOperationFailed    = "Database operation failed"
)

// Error carries a kind and a message that is safe to show to the caller.
// Err holds the underlying cause, which is never shown.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same kind, so callers can write
// errors.Is(err, apperr.ErrConflict).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// Kind-only targets for errors.Is.
var (
	ErrBadRequest   = &Error{Kind: KindBadRequest}
	ErrUnauthorized = &Error{Kind: KindUnauthorized}
	ErrForbidden    = &Error{Kind: KindForbidden}
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrConflict     = &Error{Kind: KindConflict}
	ErrInternal     = &Error{Kind: KindInternal}
)

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func BadRequest(message string) *Error   { return New(KindBadRequest, message) }
func Unauthorized(message string) *Error { return New(KindUnauthorized, message) }
func Forbidden(message string) *Error    { return New(KindForbidden, message) }
func NotFound(message string) *Error     { return New(KindNotFound, message) }
func Conflict(message string) *Error     { return New(KindConflict, message) }

// Validation builds a BadRequest carrying per-field messages.
func Validation(fields map[string]string) *Error {
	return &Error{Kind: KindBadRequest, Message: MsgValidationFailed, Fields: fields}
}

// Internal wraps an unexpected failure. The message stays generic.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: MsgOperationFailed, Err: err}
}

// Wrap attaches a cause to a domain error without changing what the caller sees.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf reports the kind of err. Anything that is not an *Error is internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
