package apierror

import (
	"errors"
	"net/http"
	"testing"

	"medicore/cmd/internal/utils/validators"

	"github.com/stretchr/testify/assert"
)

type request struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Kind  string `json:"kind" validate:"oneof=a b"`
}

func TestFromValidationError(t *testing.T) {
	v := validators.New()
	err := v.Struct(&request{Email: "nope", Kind: "c"})

	apiErr := FromValidationError(err)

	assert.Equal(t, http.StatusBadRequest, apiErr.Code())
	assert.Equal(t, KindValidation, apiErr.Kind)
	assert.Equal(t, map[string]string{
		"name":  "name is required",
		"email": "Please enter a valid email address",
		"kind":  "kind must be one of: a b",
	}, apiErr.Fields)
	assert.Equal(t, "Please correct the errors in the form: email, kind, name", apiErr.Error())
}

func TestFromValidationError_OtherErrors(t *testing.T) {
	assert.Same(t, MalformedBodyError, FromValidationError(errors.New("boom")))
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NewNotFound("Patient").Code())
	assert.Equal(t, "Patient not found", NewNotFound("Patient").Error())
	assert.Equal(t, http.StatusConflict, NewInvalidTransitionError("completed", "in-progress").Code())
	assert.Equal(t, http.StatusBadRequest, NewMissingParamError("id").Code())
	assert.Equal(t, "Parameter 'id' must be of type int", NewInvalidParamTypeError("id", "int").Error())
}

