package service

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// IsValidationError reports whether err carries validator field errors raised
// at the repository write boundary.
func IsValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}
