package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Reference keys are lowercase snake_case identifiers ("beginner",
// "describe_your_day"). Anything else never matches a stored phrase.
var referenceKeyPattern = regexp.MustCompile(`^[a-z][a-z0-9_]{0,63}$`)

// RequestValidator implements echo.Validator using go-playground/validator,
// extended with the reference_key rule used by the upload form.
type RequestValidator struct {
	v *validator.Validate
}

// New creates a RequestValidator with the domain rules registered.
func New() *RequestValidator {
	v := validator.New()
	_ = v.RegisterValidation("reference_key", func(fl validator.FieldLevel) bool {
		return referenceKeyPattern.MatchString(fl.Field().String())
	})
	return &RequestValidator{v: v}
}

// Validate performs struct validation
func (rv *RequestValidator) Validate(i interface{}) error {
	return rv.v.Struct(i)
}
