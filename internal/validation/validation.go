// Package validation wraps go-playground/validator with the field rules of
// the fundi-finder API: Kenyan phone numbers, not-in-the-past dates and
// human-readable, accumulated error messages keyed by JSON field name.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mtaafundi/fundi-finder/internal/models"
)

// Now is the clock used by the notpast rule.
var Now = func() time.Time { return time.Now().UTC() }

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the shared validator instance.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if ts, ok := field.Interface().(models.Timestamp); ok {
				return ts.Time
			}
			return nil
		}, models.Timestamp{})
		_ = v.RegisterValidation("kephone", func(fl validator.FieldLevel) bool {
			return ValidatePhone(fl.Field().String())
		})
		_ = v.RegisterValidation("notpast", func(fl validator.FieldLevel) bool {
			t, ok := fl.Field().Interface().(time.Time)
			if !ok {
				return false
			}
			return !t.Before(Now())
		})
		instance = v
	})
	return instance
}

// Errors is the accumulated list of violations for one payload.
type Errors []string

func (e Errors) Error() string {
	return strings.Join(e, "; ")
}

// Struct validates s and returns Errors holding one message per violated field.
func Struct(s interface{}) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errors{err.Error()}
	}
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		if isString(fe) && fe.Param() == "1" {
			return field + " cannot be empty"
		}
		if isString(fe) {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if isString(fe) {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "kephone":
		return field + " must be a Kenyan number starting with +254, 254 or 0 followed by 9 digits"
	case "notpast":
		return field + " cannot be in the past"
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

func isString(fe validator.FieldError) bool {
	return fe.Kind() == reflect.String
}
