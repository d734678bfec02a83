// Package errdefs declares the canonical error taxonomy shared by every
// boundary operation. Codes form a closed, hierarchical set: a general family
// (UNAUTHORIZED, CONFLICT, ...) optionally narrowed by a subtype separated
// with "/" (UNAUTHORIZED/TOKEN_EXPIRED). Each code is backed by an errdef
// definition carrying its HTTP status, so classification survives wrapping
// and can be recovered anywhere in the call graph with errors.Is or the
// field extractors.
package errdefs

import (
	"errors"
	"net/http"
	"strings"

	"github.com/shiwano/errdef"
)

// Canonical error codes. Family-level codes first, then subtypes.
const (
	CodeBadRequest         = "BAD_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeGatewayTimeout     = "GATEWAY_TIMEOUT"
	CodeInternal           = "INTERNAL_SERVER_ERROR"
	CodeNotImplemented     = "METHOD_NOT_IMPLEMENTED"

	CodeInvalidToken        = "UNAUTHORIZED/INVALID_TOKEN"
	CodeTokenExpired        = "UNAUTHORIZED/TOKEN_EXPIRED"
	CodeEmailAlreadyExists  = "CONFLICT/EMAIL_ALREADY_EXISTS"
	CodeForeignKeyViolation = "CONFLICT/FOREIGN_KEY_VIOLATION"
)

// ServerMessage carries the verbatim message reported by the remote API, when
// one was present in the failure body. It is kept separate from the Go error
// message so the humanizer can tell backend-supplied detail apart from
// transport-level wrapping.
var ServerMessage, ServerMessageFrom = errdef.DefineField[string]("server_message")

// Definitions, one per canonical code. Every subtype definition carries the
// same HTTP status as its family unless the protocol says otherwise.
var (
	ErrBadRequest         = errdef.Define(CodeBadRequest, errdef.HTTPStatus(http.StatusBadRequest), errdef.Public())
	ErrUnauthorized       = errdef.Define(CodeUnauthorized, errdef.HTTPStatus(http.StatusUnauthorized), errdef.Public())
	ErrForbidden          = errdef.Define(CodeForbidden, errdef.HTTPStatus(http.StatusForbidden), errdef.Public())
	ErrNotFound           = errdef.Define(CodeNotFound, errdef.HTTPStatus(http.StatusNotFound), errdef.Public())
	ErrConflict           = errdef.Define(CodeConflict, errdef.HTTPStatus(http.StatusConflict), errdef.Public())
	ErrServiceUnavailable = errdef.Define(CodeServiceUnavailable, errdef.HTTPStatus(http.StatusServiceUnavailable), errdef.Public(), errdef.Retryable())
	ErrGatewayTimeout     = errdef.Define(CodeGatewayTimeout, errdef.HTTPStatus(http.StatusGatewayTimeout), errdef.Public(), errdef.Retryable())
	ErrInternal           = errdef.Define(CodeInternal, errdef.HTTPStatus(http.StatusInternalServerError))
	ErrNotImplemented     = errdef.Define(CodeNotImplemented, errdef.HTTPStatus(http.StatusNotImplemented), errdef.Public())

	ErrInvalidToken        = errdef.Define(CodeInvalidToken, errdef.HTTPStatus(http.StatusUnauthorized), errdef.Public())
	ErrTokenExpired        = errdef.Define(CodeTokenExpired, errdef.HTTPStatus(http.StatusUnauthorized), errdef.Public())
	ErrEmailAlreadyExists  = errdef.Define(CodeEmailAlreadyExists, errdef.HTTPStatus(http.StatusConflict), errdef.Public())
	ErrForeignKeyViolation = errdef.Define(CodeForeignKeyViolation, errdef.HTTPStatus(http.StatusConflict), errdef.Public())
)

// Family returns the general family component of a canonical code. A code
// without a subtype is its own family.
func Family(code string) string {
	if i := strings.IndexByte(code, '/'); i >= 0 {
		return code[:i]
	}
	return code
}

// NewByCode builds a classified error for a backend-reported code. Unrecognized
// subtypes degrade to their family definition; unrecognized families degrade
// to the internal-error definition. It never fails on unseen input.
func NewByCode(code, serverMessage string) error {
	msg := serverMessage
	if msg == "" {
		msg = code
	}
	if def, ok := definitionMessage(code, serverMessage); ok {
		return def(msg)
	}
	if def, ok := definitionMessage(Family(code), serverMessage); ok {
		return def(msg)
	}
	return ErrInternal.WithOptions(withServerMessage(serverMessage)...).New(msg)
}

// definitionMessage maps one exact canonical code to an error constructor.
func definitionMessage(code, serverMessage string) (func(msg string) error, bool) {
	opts := withServerMessage(serverMessage)
	switch code {
	case CodeBadRequest:
		return ErrBadRequest.WithOptions(opts...).New, true
	case CodeUnauthorized:
		return ErrUnauthorized.WithOptions(opts...).New, true
	case CodeForbidden:
		return ErrForbidden.WithOptions(opts...).New, true
	case CodeNotFound:
		return ErrNotFound.WithOptions(opts...).New, true
	case CodeConflict:
		return ErrConflict.WithOptions(opts...).New, true
	case CodeServiceUnavailable:
		return ErrServiceUnavailable.WithOptions(opts...).New, true
	case CodeGatewayTimeout:
		return ErrGatewayTimeout.WithOptions(opts...).New, true
	case CodeInternal:
		return ErrInternal.WithOptions(opts...).New, true
	case CodeNotImplemented:
		return ErrNotImplemented.WithOptions(opts...).New, true
	case CodeInvalidToken:
		return ErrInvalidToken.WithOptions(opts...).New, true
	case CodeTokenExpired:
		return ErrTokenExpired.WithOptions(opts...).New, true
	case CodeEmailAlreadyExists:
		return ErrEmailAlreadyExists.WithOptions(opts...).New, true
	case CodeForeignKeyViolation:
		return ErrForeignKeyViolation.WithOptions(opts...).New, true
	}
	return nil, false
}

func withServerMessage(serverMessage string) []errdef.Option {
	if serverMessage == "" {
		return nil
	}
	return []errdef.Option{ServerMessage(serverMessage)}
}

// CodeForStatus maps an HTTP status code to the canonical family used when a
// failure body carried no usable code of its own.
func CodeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return CodeBadRequest
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeConflict
	case http.StatusServiceUnavailable, http.StatusBadGateway:
		return CodeServiceUnavailable
	case http.StatusGatewayTimeout:
		return CodeGatewayTimeout
	case http.StatusMethodNotAllowed, http.StatusNotImplemented:
		return CodeNotImplemented
	default:
		return CodeInternal
	}
}

// CodeOf extracts the canonical code from a classified error, or "" when the
// error never passed through this taxonomy.
func CodeOf(err error) string {
	var de errdef.Error
	if errors.As(err, &de) {
		return string(de.Kind())
	}
	return ""
}

// StatusOf extracts the HTTP status attached to a classified error, or 0.
func StatusOf(err error) int {
	status, ok := errdef.HTTPStatusFrom(err)
	if !ok {
		return 0
	}
	return status
}

// IsAuthCode reports whether a canonical code belongs to the
// authentication-failure families.
func IsAuthCode(code string) bool {
	switch Family(code) {
	case CodeUnauthorized, CodeForbidden:
		return true
	}
	return false
}

// IsAuthError reports whether a classified error signals an authentication
// failure, either by definition identity or by attached HTTP status.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrTokenExpired) {
		return true
	}
	switch StatusOf(err) {
	case http.StatusUnauthorized, http.StatusForbidden:
		return true
	}
	return IsAuthCode(CodeOf(err))
}
