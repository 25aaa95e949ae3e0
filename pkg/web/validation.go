package web

import (
	"github.com/go-playground/validator/v10"
)

// GetErrorMsg returns a user friendly message for the failed validation tag.
func GetErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return " is required"
	case "min":
		return " must be greater or equal to " + fe.Param()
	case "max":
		return " must be less or equal to " + fe.Param()
	case "email":
		return " must be a valid email address"
	case "alphanum":
		return " must contain only letters and numbers"
	case "oneof":
		return " must be one of " + fe.Param()
	case "money":
		return " must be a positive amount with at most 2 decimal places"
	}

	return " is invalid"
}
