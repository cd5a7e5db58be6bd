package catalog

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewUser is the signup input. The password is plaintext here and only here;
// it is hashed before anything is persisted.
type NewUser struct {
	FirstName    string `json:"firstName" validate:"required"`
	LastName     string `json:"lastName" validate:"required"`
	EmailAddress string `json:"emailAddress" validate:"required,email"`
	Password     string `json:"password" validate:"required"`
}

// CourseInput is the create/update input for a course. The owner is never
// taken from the input; it comes from the authenticated user.
type CourseInput struct {
	Title           string `json:"title" validate:"required"`
	Description     string `json:"description" validate:"required"`
	EstimatedTime   string `json:"estimatedTime"`
	MaterialsNeeded string `json:"materialsNeeded"`
}

// FieldViolation is a single violated field rule.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every violated rule of a write, in field
// declaration order. Writes are never partially applied.
type ValidationError struct {
	Violations []FieldViolation
}

// Error satisfies [error].
func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// newValidator builds the validator with field names resolved from json tags,
// so violations are reported with the wire-level field names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// check runs the declarative rules on input and translates failures into a
// [*ValidationError] with all violations collected.
func (c *Catalog) check(input any) error {
	err := c.validate.Struct(input)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		verr.Violations = append(verr.Violations, FieldViolation{
			Field:   fe.Field(),
			Message: violationMessage(fe),
		})
	}
	return verr
}

// violationMessage renders the client-facing message for a failed rule. The
// message names mirror the upstream API contract, which calls the
// emailAddress field 'email'.
func violationMessage(fe validator.FieldError) string {
	name := fe.Field()
	if name == "emailAddress" {
		name = "email"
	}
	if fe.Tag() == "email" {
		return "Please enter a valid '" + name + "'"
	}
	return "Please enter a value for '" + name + "'"
}

// duplicateEmailError reports a unique-constraint violation on the email
// address in the same shape as any other validation failure.
func duplicateEmailError() *ValidationError {
	return &ValidationError{Violations: []FieldViolation{{
		Field:   "emailAddress",
		Message: "The 'email' you entered is already in use",
	}}}
}
