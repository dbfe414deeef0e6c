package validation

import (
	"reflect"
	"strings"

	"devhire-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

// New returns a validator that reports fields by their JSON names and knows
// the service's custom tags.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("availability", Availability)
	_ = v.RegisterValidation("not_blank", NotBlank)
}

// Availability accepts only the enumerated availability values.
func Availability(fl validator.FieldLevel) bool {
	return domain.IsValidAvailability(fl.Field().String())
}

// NotBlank rejects strings made only of whitespace.
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
