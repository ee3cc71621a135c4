package validator

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// PhoneRegex accepts "+" followed by 10-15 digits, or DDD-DDD-DDDD.
	PhoneRegex = regexp.MustCompile(`^(?:\+[0-9]{10,15}|[0-9]{3}-[0-9]{3}-[0-9]{4})$`)
)

// Validator validates structs and single values.
type Validator interface {
	// Validate validates the given struct
	Validate(s any) error
	// Var validates a single value against the given tag
	Var(field any, tag string) error
}

type DefaultValidator struct {
	v *validator.Validate
}

// NewDefaultValidator creates a new default validator.
// It returns a new DefaultValidator and an error if the validator registration fails.
func NewDefaultValidator() (*DefaultValidator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())

	if err := v.RegisterValidation("phone", validatePhone); err != nil {
		return nil, fmt.Errorf("register phone validator: %w", err)
	}

	return &DefaultValidator{v: v}, nil
}

// MustNewDefaultValidator is like NewDefaultValidator but panics on error.
func MustNewDefaultValidator() *DefaultValidator {
	v, err := NewDefaultValidator()
	if err != nil {
		panic(err)
	}
	return v
}

func (v DefaultValidator) Validate(s any) error {
	return v.v.Struct(s)
}

func (v DefaultValidator) Var(field any, tag string) error {
	return v.v.Var(field, tag)
}

// IsValidationError checks if the given error is a validation error
func IsValidationError(err error) bool {
	_, ok := err.(validator.ValidationErrors)
	return ok
}

func ValidationErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "uuid":
		return "must be a valid UUID"
	case "email":
		return "must be a valid email address"
	case "phone":
		return "must be +<10-15 digits> or DDD-DDD-DDDD"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	default:
		return "is invalid"
	}
}

func validatePhone(fl validator.FieldLevel) bool {
	return PhoneRegex.MatchString(fl.Field().String())
}
