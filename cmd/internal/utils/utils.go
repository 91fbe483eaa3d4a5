package utils

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// DateLayout is the calendar-date form used for appointment and birth dates.
const DateLayout = "2006-01-02"

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// Sanitize trims every string, *string and []string field of the struct
// pointed to by o.
func Sanitize(o any) {
	v := reflect.ValueOf(o)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		panic("sanitize: expected pointer to struct")
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		panic("sanitize: expected struct")
	}

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}
		switch field.Kind() {
		case reflect.String:
			field.SetString(sanitizeString(field.String()))

		case reflect.Ptr:
			if !field.IsNil() && field.Elem().Kind() == reflect.String {
				field.Elem().SetString(sanitizeString(field.Elem().String()))
			}

		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				for j := 0; j < field.Len(); j++ {
					field.Index(j).SetString(sanitizeString(field.Index(j).String()))
				}
			}
		}
	}
}

func sanitizeString(s string) string {
	return strings.TrimSpace(s)
}

// Merge copies fields, keyed by struct field name, onto the struct pointed
// to by dst. Fields not named in the map are left untouched.
func Merge(dst any, fields map[string]any) error {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("merge: expected pointer to struct, got %T", dst)
	}
	v = v.Elem()

	for name, value := range fields {
		field := v.FieldByName(name)
		if !field.IsValid() || !field.CanSet() {
			return fmt.Errorf("merge: %s has no settable field %q", v.Type().Name(), name)
		}

		if value == nil {
			field.Set(reflect.Zero(field.Type()))
			continue
		}

		val := reflect.ValueOf(value)
		switch {
		case val.Type().AssignableTo(field.Type()):
			field.Set(val)
		case val.Kind() == field.Kind() && val.Type().ConvertibleTo(field.Type()):
			field.Set(val.Convert(field.Type()))
		default:
			return fmt.Errorf("merge: cannot set %s.%s (%s) from %T", v.Type().Name(), name, field.Type(), value)
		}
	}
	return nil
}
