package contact

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// emailShape accepts anything shaped like local@domain.tld.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	if err := v.RegisterValidation("contact_email", func(fl validator.FieldLevel) bool {
		return emailShape.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// ValidationError describes the first rule a ContactRequest broke.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Validate checks req. Missing required fields are reported before format
// problems, in the order name, email, message.
func Validate(req ContactRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Join(ErrValidation, err)
	}

	var first validator.FieldError
	for _, fe := range fieldErrs {
		if first == nil || rank(fe) < rank(first) {
			first = fe
		}
	}
	return &ValidationError{Field: first.Field(), Message: message(first)}
}

var fieldOrder = map[string]int{FieldName: 0, FieldEmail: 1, FieldMessage: 2}

func rank(fe validator.FieldError) int {
	r := fieldOrder[fe.Field()]
	if fe.Tag() != "required" {
		r += 10
	}
	return r
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		switch fe.Field() {
		case FieldName:
			return "Name is required"
		case FieldEmail:
			return "Email is required"
		case FieldMessage:
			return "Message is required"
		}
	case "contact_email":
		return "Invalid email format"
	case "max":
		return "Message is too long"
	}
	return "Invalid " + fe.Field()
}
