// Package apperr defines the closed failure taxonomy shared by every service
// in this repository. Each failure carries a Kind tag; the HTTP mapping is
// derived from the tag alone, never from message content.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind labels one failure class of the taxonomy.
type Kind string

const (
	KindValidation     Kind = "validation_failed"
	KindEmailExists    Kind = "email_exists"
	KindBadCredentials Kind = "bad_credentials"
	KindTokenMissing   Kind = "token_missing"
	KindTokenMalformed Kind = "token_malformed"
	KindBadSignature   Kind = "token_bad_signature"
	KindTokenExpired   Kind = "token_expired"
	KindForbidden      Kind = "forbidden"
	KindNotFound       Kind = "not_found"
	KindInternal       Kind = "internal"
)

// Status maps a kind to its HTTP status code. Unknown kinds are treated as
// internal failures.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindEmailExists:
		return http.StatusConflict
	case KindBadCredentials, KindTokenMissing, KindTokenMalformed, KindBadSignature, KindTokenExpired:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is an application-layer failure that can be rendered as an HTTP
// response. Fields is set only for validation failures (field -> reason).
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return string(e.Kind) + ": " + e.Message
	}
	return string(e.Kind)
}

// Classify resolves any error to its taxonomy entry. Tagged errors pass
// through unchanged; everything else collapses to the generic internal
// failure so no incidental message text reaches a client.
func Classify(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) && ae != nil {
		return ae
	}
	return Internal()
}

// Validation reports malformed input fields.
func Validation(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "Validation failed", Fields: fields}
}

// EmailExists reports a registration attempt for an address that is already taken.
func EmailExists() *Error {
	return &Error{Kind: KindEmailExists, Message: "Email already exists"}
}

// BadCredentials reports a login mismatch. The message deliberately does not
// say whether the email or the password was wrong.
func BadCredentials() *Error {
	return &Error{Kind: KindBadCredentials, Message: "Invalid email or password"}
}

// TokenMissing reports a protected operation attempted without a bearer token.
func TokenMissing() *Error {
	return &Error{Kind: KindTokenMissing, Message: "No authentication token found"}
}

// TokenMalformed reports a bearer token that could not be parsed.
func TokenMalformed() *Error {
	return &Error{Kind: KindTokenMalformed, Message: "Invalid token format"}
}

// BadSignature reports a bearer token whose signature did not verify.
func BadSignature() *Error {
	return &Error{Kind: KindBadSignature, Message: "Invalid token signature"}
}

// TokenExpired reports a bearer token past its validity window.
func TokenExpired() *Error {
	return &Error{Kind: KindTokenExpired, Message: "Token has expired"}
}

// Forbidden reports an ownership check denial.
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NotFoundf reports an absent resource; the message names it.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Internal is the generic unclassified failure. The message reveals nothing
// about the cause; details belong in server logs only.
func Internal() *Error {
	return &Error{Kind: KindInternal, Message: "An unexpected error occurred"}
}
