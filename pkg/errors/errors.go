package errors

import (
	"errors"
	"fmt"
)

type AppError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

// Constructors
func New(code Code, message string) error {
	return &AppError{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) error {
	return &AppError{Code: code, Message: message, Cause: cause}
}

func InvalidArg(msg string) error {
	return New(CodeInvalidArgument, msg)
}

func NotFound(msg string) error {
	return New(CodeNotFound, msg)
}

func Unauthorized(msg string) error {
	return New(CodeUnauthenticated, msg)
}

func Forbidden(msg string) error {
	return New(CodePermissionDenied, msg)
}

func Unavailable(msg string, cause error) error {
	return Wrap(CodeUnavailable, msg, cause)
}

// CodeOf extracts the Code from an error, walking the wrap chain.
func CodeOf(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}
