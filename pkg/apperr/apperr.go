package apperr

import (
	"fmt"
	"net/http"
)

// Code classifies an application error so handlers can map it to a status
// without inspecting message text.
type Code string

const (
	CodeValidation Code = "ValidationError"
	CodeNotFound   Code = "NotFoundError"
	CodeConflict   Code = "ConflictError"
	CodeAuth       Code = "AuthError"
	CodeProvider   Code = "ProviderError"
	CodeWebhook    Code = "WebhookVerificationError"
	CodeInternal   Code = "InternalError"
)

type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the status code this error surfaces as.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeValidation, CodeConflict, CodeProvider, CodeWebhook:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func Validation(format string, args ...interface{}) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *Error {
	return &Error{Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}

func Auth(message string) *Error {
	return &Error{Code: CodeAuth, Message: message}
}

func Provider(err error) *Error {
	return &Error{Code: CodeProvider, Message: err.Error(), Err: err}
}

func Webhook(message string) *Error {
	return &Error{Code: CodeWebhook, Message: message}
}

func Internal(err error) *Error {
	return &Error{Code: CodeInternal, Message: "Internal Server Error", Err: err}
}
