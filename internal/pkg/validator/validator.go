// Package validator wraps go-playground/validator behind a single call
// that returns a field-to-tag map ready for a 422 response body.
package validator

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks v's `validate` struct tags. It returns nil when the
// value is valid, otherwise a map of field name to the failed tag.
func Validate(v any) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	for _, fe := range err.(validator.ValidationErrors) {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}
