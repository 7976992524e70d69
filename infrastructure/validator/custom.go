package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var nationalIDRegex = regexp.MustCompile(`^[0-9]{12}$`)
var rollNumberRegex = regexp.MustCompile(`^[A-Z0-9]{10}$`)

// national ids are exactly 12 digits
func validateNationalID(fl validator.FieldLevel) bool {
	return nationalIDRegex.MatchString(fl.Field().String())
}

// roll numbers are 10 uppercase alphanumeric characters
func validateRollNumber(fl validator.FieldLevel) bool {
	return rollNumberRegex.MatchString(fl.Field().String())
}
