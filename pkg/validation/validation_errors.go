package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	field := fieldPath(e)
	param := e.Param()

	switch e.Tag() {
	case "required", "not_blank":
		return fmt.Sprintf("%s: is required", field)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s: must be at most %s", field, param)

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s: must be at least %s", field, param)

	case "url", "http_url":
		return fmt.Sprintf("%s: must be a valid URL", field)

	case "uuid":
		return fmt.Sprintf("%s: must be a valid UUID", field)

	case "datetime":
		return fmt.Sprintf("%s: must be a date formatted as YYYY-MM-DD", field)

	case "availability":
		return fmt.Sprintf("%s: must be one of: available, open-to-offers, not-available", field)

	case "oneof":
		return fmt.Sprintf("%s: must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))

	default:
		return fmt.Sprintf("%s: failed validation (%s)", field, e.Tag())
	}
}

// fieldPath drops the top-level struct name from the namespace, so
// "Project.technologies[1]" becomes "technologies[1]".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}
