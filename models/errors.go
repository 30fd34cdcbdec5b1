package models

import (
	"fmt"
)

// Wire-visible error codes, surfaced to GraphQL clients via extensions.code so
// they can branch on the failure kind instead of parsing message strings.
const (
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeForbidden          = "FORBIDDEN"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeBadUserInput       = "BAD_USER_INPUT"
)

// AuthError covers authentication and authorization failures.
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// Extensions implements graphql-go's gqlerrors.ExtendedError.
func (e *AuthError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Code}
}

var (
	ErrUnauthenticated    = &AuthError{Code: CodeUnauthenticated, Message: "authentication required"}
	ErrForbidden          = &AuthError{Code: CodeForbidden, Message: "permission denied"}
	ErrInvalidCredentials = &AuthError{Code: CodeInvalidCredentials, Message: "invalid email or password"}
)

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": CodeNotFound, "resource": e.Resource}
}

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func (e *ConflictError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": CodeConflict}
}

// ValidationError carries per-field messages produced by input validation.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return "invalid input"
}

func (e *ValidationError) Extensions() map[string]interface{} {
	fields := make(map[string]interface{}, len(e.Fields))
	for field, messages := range e.Fields {
		fields[field] = messages
	}
	return map[string]interface{}{"code": CodeBadUserInput, "fields": fields}
}

// TokenError kinds. These never cross the API boundary: every verification
// failure is recovered into an anonymous identity by the auth middleware.
type TokenErrorKind string

const (
	TokenMalformed        TokenErrorKind = "malformed"
	TokenExpired          TokenErrorKind = "expired"
	TokenSignatureInvalid TokenErrorKind = "signature_invalid"
)

type TokenError struct {
	Kind TokenErrorKind
	Err  error
}

func (e *TokenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("token %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("token %s", e.Kind)
}

func (e *TokenError) Unwrap() error {
	return e.Err
}
