package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is an error that knows the HTTP status it is reported with.
type ErrorResponse interface {
	error
	Code() int
}

type APIError struct {
	status  int
	Kind    string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *APIError) Code() int {
	return e.status
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(names, ", "))
}

const (
	KindValidation = "validation"
	KindNotFound   = "not_found"
	KindStore      = "store"
	KindConflict   = "conflict"
	KindBadRequest = "bad_request"
)

var (
	InternalServerError = &APIError{status: http.StatusInternalServerError, Kind: KindStore, Message: "The record store could not complete the request, please retry"}
	NotFoundError       = &APIError{status: http.StatusNotFound, Kind: KindNotFound, Message: "Record not found"}
	MalformedBodyError  = &APIError{status: http.StatusBadRequest, Kind: KindBadRequest, Message: "Malformed request body"}
)

func NewSimple(status int, message string) *APIError {
	return &APIError{status: status, Kind: KindBadRequest, Message: message}
}

// NewNotFound names the missing entity, e.g. "Appointment not found".
func NewNotFound(entity string) *APIError {
	return &APIError{status: http.StatusNotFound, Kind: KindNotFound, Message: entity + " not found"}
}

func NewMissingParamError(param string) *APIError {
	return NewSimple(http.StatusBadRequest, fmt.Sprintf("Missing required parameter '%s'", param))
}

func NewInvalidParamTypeError(param, typ string) *APIError {
	return NewSimple(http.StatusBadRequest, fmt.Sprintf("Parameter '%s' must be of type %s", param, typ))
}

func NewInvalidTransitionError(from, to string) *APIError {
	return &APIError{
		status:  http.StatusConflict,
		Kind:    KindConflict,
		Message: fmt.Sprintf("Cannot move appointment from %q to %q", from, to),
	}
}

// NewValidationError reports field-level problems; fields maps a field name
// to a user-facing message.
func NewValidationError(fields map[string]string) *APIError {
	return &APIError{
		status:  http.StatusBadRequest,
		Kind:    KindValidation,
		Message: "Please correct the errors in the form",
		Fields:  fields,
	}
}

// FromValidationError converts validator failures into a ValidationError.
// Any other error is reported as a malformed body.
func FromValidationError(err error) *APIError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return MalformedBodyError
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; !seen {
			fields[fe.Field()] = message(fe)
		}
	}
	return NewValidationError(fields)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Please enter a valid email address"
	case "phone":
		return "Please enter a valid phone number"
	case "isodate":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD form", fe.Field())
	case "clock":
		return fmt.Sprintf("%s must be a time in HH:MM form", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
