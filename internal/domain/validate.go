package domain

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// EarliestReleaseDate is the birthday of cinema. No film can be released
// before the first Lumiere screening.
var EarliestReleaseDate = NewDate(1895, time.December, 28)

// NewValidator returns a validator that understands the Date type and the
// date and login rules enforced at the API boundary.
func NewValidator() *validator.Validate {
	validate := validator.New()

	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(Date); ok {
			return d.Time
		}
		return nil
	}, Date{})

	validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	validate.RegisterValidation("nowhitespace", func(fl validator.FieldLevel) bool {
		return !strings.ContainsAny(fl.Field().String(), " \t\n\r")
	})

	// A zero date means the field was omitted; presence is a separate rule
	// where one applies.
	validate.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}
		return t.IsZero() || !t.After(time.Now())
	})

	validate.RegisterValidation("releasedate", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}
		if t.IsZero() {
			return true
		}
		return !t.Before(EarliestReleaseDate.Time) && !t.After(time.Now())
	})

	return validate
}
