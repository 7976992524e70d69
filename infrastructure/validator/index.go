package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func init() {
	validate.RegisterValidation("national_id", validateNationalID)
	validate.RegisterValidation("roll_number", validateRollNumber)
}

type Validator struct{}

func (v *Validator) ValidateStruct(payload interface{}) *[]error {
	return validateStruct(payload)
}

func (v *Validator) ValidateValue(value any, rules string) error {
	return validate.Var(value, rules)
}

func validateStruct(payload interface{}) *[]error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	var invalidValidation *validator.InvalidValidationError
	if errors.As(err, &invalidValidation) {
		errs := []error{errors.New("invalid payload structure")}
		return &errs
	}
	errs := []error{}
	for _, fieldErr := range err.(validator.ValidationErrors) {
		errs = append(errs, fmt.Errorf("%s failed validation for rule %s", strings.ToLower(fieldErr.Field()), fieldErr.Tag()))
	}
	if len(errs) == 0 {
		return nil
	}
	return &errs
}

var ValidatorInstance = Validator{}
