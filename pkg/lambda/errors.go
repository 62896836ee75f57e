package lambda

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Messages returned by the adapter itself
const (
	MsgRouteNotFound    = "route not found"
	MsgUnauthenticated  = "user not authenticated"
	MsgInvalidArguments = "invalid request"
)

// HTTPError is a route failure that carries its own status code
type HTTPError struct {
	Status  int
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// NewHTTPError creates an HTTPError
func NewHTTPError(status int, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Message: message, Err: err}
}

// BadRequest reports a validation failure
func BadRequest(message string) *HTTPError {
	return &HTTPError{Status: http.StatusBadRequest, Message: message}
}

// Unauthorized reports a failed credential or identity check
func Unauthorized(message string) *HTTPError {
	return &HTTPError{Status: http.StatusUnauthorized, Message: message}
}

// NotFound reports a missing resource
func NotFound(message string) *HTTPError {
	return &HTTPError{Status: http.StatusNotFound, Message: message}
}

// StatusFor maps an error to the status code of its envelope
func StatusFor(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// messageFor renders the error text placed in the envelope. Internal errors
// get the handler prefix so callers can tell which function failed.
func messageFor(err error, prefix string) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Error()
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return fmt.Sprintf("%s: %s", MsgInvalidArguments, FormatValidationErrors(validationErrs))
	}
	if prefix == "" {
		return err.Error()
	}
	return fmt.Sprintf("%s: %v", prefix, err)
}

// FormatValidationErrors turns validator output into a readable sentence list
func FormatValidationErrors(validationErrors validator.ValidationErrors) string {
	messages := make([]string, 0, len(validationErrors))
	for _, err := range validationErrors {
		field := err.Field()
		var message string
		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "gt":
			message = fmt.Sprintf("%s must be greater than %s", field, err.Param())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", field, err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", field, err.Param())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", field, err.Param())
		case "datetime":
			message = fmt.Sprintf("%s must match the layout %s", field, err.Param())
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}
		messages = append(messages, message)
	}
	return strings.Join(messages, ", ")
}
