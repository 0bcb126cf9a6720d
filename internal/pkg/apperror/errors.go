package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeBadRequest      ErrorCode = "BAD_REQUEST"
	ErrCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrCodeForbidden       ErrorCode = "FORBIDDEN"
	ErrCodeTimeout         ErrorCode = "TIMEOUT"
	ErrCodeUpstream        ErrorCode = "UPSTREAM_ERROR"
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
	ErrCodeTooManyRequests ErrorCode = "TOO_MANY_REQUESTS"
)

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Detail возвращает текст причины для ответа вне production.
func (e *AppError) Detail() string {
	if e.Cause == nil {
		return ""
	}
	return e.Cause.Error()
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeBadRequest:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeTimeout:
		return http.StatusRequestTimeout
	case ErrCodeTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// As достаёт AppError из цепочки ошибок.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf возвращает код ошибки; неизвестные ошибки считаются внутренними.
func CodeOf(err error) ErrorCode {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return ErrCodeInternal
}

func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}

func IsForbidden(err error) bool {
	return CodeOf(err) == ErrCodeForbidden
}

func IsTimeout(err error) bool {
	return CodeOf(err) == ErrCodeTimeout
}

func IsBadRequest(err error) bool {
	return CodeOf(err) == ErrCodeBadRequest
}

// Сообщения для клиента.
const (
	MsgURLRequired     = "URL parameter is required"
	MsgInvalidURL      = "Invalid Pinterest URL. Please use pinterest.com/pin/... or pin.it/... format"
	MsgPinUnavailable  = "Pinterest pin not found or unable to process"
	MsgPinNotFound     = "Pinterest pin not found. Make sure the URL is correct and the pin is public."
	MsgPinForbidden    = "Access to this Pinterest pin is denied. Make sure the pin is public."
	MsgTimeout         = "Request timeout. Please try again."
	MsgUpstreamFailure = "Failed to process Pinterest pin. Please try again later."
	MsgInternal        = "Internal server error"
	MsgTooManyRequests = "Too many requests, please try again later."
)

var (
	ErrURLRequired = New(ErrCodeBadRequest, MsgURLRequired)
	ErrInvalidURL  = New(ErrCodeBadRequest, MsgInvalidURL)
)
