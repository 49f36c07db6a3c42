// Package validator wraps go-playground/validator with json-tag field
// names and the project's domain rules.
package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError carries the per-field messages of a failed validation.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Errors))
}

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()

	// Report field names from json tags so errors match the wire format.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})

	registerDomainRules(v)

	return &Validator{validate: v}
}

// Validate checks any tagged struct. Returns *ValidationError on rule
// failures, a plain error on misuse (non-struct input).
func (v *Validator) Validate(obj interface{}) error {
	err := v.validate.Struct(obj)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	out := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		out[fe.Field()] = messageFor(fe)
	}
	return &ValidationError{Errors: out}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		return "Value is too small or too short (min " + fe.Param() + ")"
	case "max":
		return "Value is too large or too long (max " + fe.Param() + ")"
	case "is-user-role":
		return "Must be one of: worker, employer"
	case "is-job-type":
		return "Must be one of: full_time, part_time, contract, one_time"
	case "is-experience-level":
		return "Must be one of: entry, intermediate, expert"
	case "is-review-type":
		return "Must be one of: employer_to_employee, employee_to_employer"
	default:
		return "Invalid value"
	}
}
