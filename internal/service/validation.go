package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// FieldError is one field-level validation failure, surfaced to clients in
// 422 responses.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Fields []FieldError `json:"detail"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Password policy: 8-20 chars with at least one letter, one digit and
	// one special character.
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		pw := fl.Field().String()
		if len(pw) < 8 || len(pw) > 20 {
			return false
		}
		var hasLetter, hasDigit, hasSpecial bool
		for _, r := range pw {
			switch {
			case unicode.IsLetter(r):
				hasLetter = true
			case unicode.IsDigit(r):
				hasDigit = true
			default:
				hasSpecial = true
			}
		}
		return hasLetter && hasDigit && hasSpecial
	})
	return v
}

func validateStruct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return err
	}

	ve := &ValidationError{}
	for _, f := range invalid {
		ve.Fields = append(ve.Fields, FieldError{
			Field:   strings.ToLower(f.Field()),
			Message: messageForTag(f),
		})
	}
	return ve
}

func messageForTag(f validator.FieldError) string {
	switch f.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return fmt.Sprintf("must be at most %s characters", f.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", f.Param())
	case "password":
		return "must be 8-20 characters with a letter, a digit and a special character"
	default:
		return fmt.Sprintf("failed %s validation", f.Tag())
	}
}
