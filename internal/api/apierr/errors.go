package apierr

import (
	"errors"
	"net/http"

	"github.com/mcoot/classquiz/internal/api/response"
	"github.com/mcoot/classquiz/internal/identity"
	"github.com/mcoot/classquiz/internal/model"
	"github.com/mcoot/classquiz/internal/services/roster"
)

// APIError represents an API error response
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeStudentNotFound  = "STUDENT_NOT_FOUND"
	CodePlayerNotFound   = "PLAYER_NOT_FOUND"
	CodeNotFound         = "NOT_FOUND"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeInternalError    = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	response.JSON(w, he.status, ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Validation
	case errors.Is(err, roster.ErrMissingFields):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidRequest, Message: "first_name, last_name and classroom are required"}}
	case errors.Is(err, roster.ErrInvalidProgressKind):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidRequest, Message: "kind must be question or level"}}

	// Lookups
	case errors.Is(err, identity.ErrNoMatch):
		return &httpError{http.StatusNotFound, APIError{Code: CodeStudentNotFound, Message: "Student not found in this classroom"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{Code: CodePlayerNotFound, Message: "Player not found"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidRequest, Message: message}}
}

// NewNotFoundError creates an error for unknown routes
func NewNotFoundError() error {
	return &httpError{http.StatusNotFound, APIError{Code: CodeNotFound, Message: "Not found"}}
}

// NewMethodNotAllowedError creates an error for a known route hit with the wrong method
func NewMethodNotAllowedError() error {
	return &httpError{http.StatusMethodNotAllowed, APIError{Code: CodeMethodNotAllowed, Message: "Method not allowed"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
}

// NewPanicError is the internal error returned after a recovered panic.
// The request id lets an operator find the stack trace in the logs.
func NewPanicError(requestID string) error {
	return &httpError{http.StatusInternalServerError, APIError{
		Code:      CodeInternalError,
		Message:   "Internal server error",
		RequestID: requestID,
	}}
}
