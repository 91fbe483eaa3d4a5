package validators

import (
	"medicore/cmd/internal/utils"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-()]+$`)
	clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// New returns a validator with the custom tags registered and JSON field
// names used in error reports.
func New() *validator.Validate {
	validate := validator.New()
	Register(validate)
	return validate
}

func Register(validate *validator.Validate) {
	validate.RegisterTagNameFunc(JSONName)
	_ = validate.RegisterValidation("isodate", IsIsoDate)
	_ = validate.RegisterValidation("clock", IsClock)
	_ = validate.RegisterValidation("phone", IsPhone)
	_ = validate.RegisterValidation("notblank", NotBlank)
}

func JSONName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return field.Name
	}
	return name
}

// IsIsoDate accepts a YYYY-MM-DD calendar date.
func IsIsoDate(fl validator.FieldLevel) bool {
	_, err := utils.ParseDate(fl.Field().String())
	return err == nil
}

// IsClock accepts a zero-padded 24h HH:MM time, which sorts as a string.
func IsClock(fl validator.FieldLevel) bool {
	return clockPattern.MatchString(fl.Field().String())
}

func IsPhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

// NotBlank fails on strings made only of whitespace.
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
