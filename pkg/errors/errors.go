// Package errors provides the coded error type shared by the arena packages.
//
// Every failure surfaced to a user carries one of the codes in codes.go.
// Metadata such as the offending input label or the raw model reply travels
// in Meta so presentation layers can show it next to the message.
package errors

import (
	"errors"
	"fmt"
)

// Error is a structured error with a code, message and metadata.
type Error struct {
	Code    Code                   `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Meta    map[string]interface{} `json:"meta,omitempty"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// WithMeta adds metadata to the error
func (e *Error) WithMeta(key string, value interface{}) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]interface{})
	}
	e.Meta[key] = value
	return e
}

// WithKind sets the "kind" metadata.
func (e *Error) WithKind(kind string) *Error {
	return e.WithMeta("kind", kind)
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new error with a formatted message
func Newf(code Code, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps err, keeping its code when it is already an *Error.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var existingErr *Error
	if errors.As(err, &existingErr) {
		return &Error{
			Code:    existingErr.Code,
			Message: message,
			Cause:   err,
			Meta:    existingErr.Meta,
		}
	}

	return &Error{
		Code:    CodeInternal,
		Message: message,
		Cause:   err,
	}
}

// WrapWithCode wraps an error with a specific code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

func InputValidation(message string) *Error {
	return New(CodeInputValidation, message)
}

func InputValidationf(format string, args ...interface{}) *Error {
	return Newf(CodeInputValidation, format, args...)
}

func MissingCredential(message string) *Error {
	return New(CodeMissingCredential, message)
}

// ExternalService wraps a failure reported by the completion service.
func ExternalService(err error) *Error {
	return WrapWithCode(err, CodeExternalService, "completion service error")
}

func ResponseFormat(message string) *Error {
	return New(CodeResponseFormat, message)
}

func ResponseFormatf(format string, args ...interface{}) *Error {
	return Newf(CodeResponseFormat, format, args...)
}

func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

func NotFoundf(format string, args ...interface{}) *Error {
	return Newf(CodeNotFound, format, args...)
}

func FailedPrecondition(message string) *Error {
	return New(CodeFailedPrecondition, message)
}

func Internal(message string) *Error {
	return New(CodeInternal, message)
}

// GetCode returns the code of err, or CodeInternal when err is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// GetMessage returns the message of the outermost *Error, or err.Error().
func GetMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// GetMeta returns the metadata of err, if any.
func GetMeta(err error) map[string]interface{} {
	var e *Error
	if errors.As(err, &e) {
		return e.Meta
	}
	return nil
}

// Kind returns the "kind" metadata of err, or "".
func Kind(err error) string {
	kind, _ := GetMeta(err)["kind"].(string)
	return kind
}

func IsInputValidation(err error) bool {
	return GetCode(err) == CodeInputValidation
}

func IsMissingCredential(err error) bool {
	return GetCode(err) == CodeMissingCredential
}

func IsExternalService(err error) bool {
	return GetCode(err) == CodeExternalService
}

func IsResponseFormat(err error) bool {
	return GetCode(err) == CodeResponseFormat
}

func IsNotFound(err error) bool {
	return GetCode(err) == CodeNotFound
}
