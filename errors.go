package stylist

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoImageData is the cause of the user input error returned when a request carries no image.
var ErrNoImageData = errors.New("no image data")

// ErrorCategory classifies errors by how they are reported to the caller.
type ErrorCategory string

const (
	// ErrorUserInput indicates the caller sent an unusable request.
	ErrorUserInput ErrorCategory = "user_input"

	// ErrorConfig indicates the service is missing configuration, such as an API key.
	ErrorConfig ErrorCategory = "config"

	// ErrorUpstream indicates the model API answered with a non-success status.
	ErrorUpstream ErrorCategory = "upstream"

	// ErrorResponse indicates the model answered but its reply could not be used.
	ErrorResponse ErrorCategory = "response"
)

// CategorizedError is an error that knows how it should be surfaced.
type CategorizedError interface {
	error
	Category() ErrorCategory
	StatusCode() int // HTTP status code if applicable, 0 otherwise
}

// Error is a categorized error with metadata for error reporting.
type Error struct {
	Msg   string
	Cat   ErrorCategory
	Code  int   // HTTP status code, 0 if not applicable
	Cause error // underlying error
}

// Error returns the error message. The cause is not appended: Msg is what
// callers of the HTTP endpoint get to see.
func (e *Error) Error() string {
	return e.Msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Category returns the error category.
func (e *Error) Category() ErrorCategory {
	return e.Cat
}

// StatusCode returns the HTTP status code, or 0 if not applicable.
func (e *Error) StatusCode() int {
	return e.Code
}

// NewUserInputError creates an error indicating invalid caller input.
func NewUserInputError(msg string, cause error) *Error {
	return &Error{
		Msg:   msg,
		Cat:   ErrorUserInput,
		Code:  http.StatusBadRequest,
		Cause: cause,
	}
}

// NewConfigError creates an error indicating missing or invalid configuration.
func NewConfigError(msg string, cause error) *Error {
	return &Error{
		Msg:   msg,
		Cat:   ErrorConfig,
		Code:  http.StatusInternalServerError,
		Cause: cause,
	}
}

// NewUpstreamError creates an error for a non-success reply from a model API.
// The message embeds the status code and response body for diagnostics.
func NewUpstreamError(label string, statusCode int, body string, cause error) *Error {
	return &Error{
		Msg:   fmt.Sprintf("%s API error: %d - %s", label, statusCode, body),
		Cat:   ErrorUpstream,
		Code:  statusCode,
		Cause: cause,
	}
}

// NewResponseError creates an error for a model reply that could not be parsed.
func NewResponseError(msg string, cause error) *Error {
	return &Error{
		Msg:   msg,
		Cat:   ErrorResponse,
		Code:  http.StatusInternalServerError,
		Cause: cause,
	}
}

// IsUserInput returns true if the error is categorized as a user input error.
func IsUserInput(err error) bool {
	return categoryOf(err) == ErrorUserInput
}

// IsConfig returns true if the error is categorized as a configuration error.
func IsConfig(err error) bool {
	return categoryOf(err) == ErrorConfig
}

// IsUpstream returns true if the error is categorized as an upstream API error.
func IsUpstream(err error) bool {
	return categoryOf(err) == ErrorUpstream
}

// IsResponse returns true if the error is categorized as an unusable model reply.
func IsResponse(err error) bool {
	return categoryOf(err) == ErrorResponse
}

func categoryOf(err error) ErrorCategory {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.Category()
	}
	return ""
}

// StatusCodeOf returns the HTTP status code from a categorized error, or 0.
func StatusCodeOf(err error) int {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.StatusCode()
	}
	return 0
}

// HTTPStatus maps an error to the status code reported to the caller.
// Uncategorized errors and categorized errors without a usable code map to 500.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if code := StatusCodeOf(err); code >= 400 && code < 600 {
		return code
	}
	return http.StatusInternalServerError
}
