package api

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const msgInvalidBody = "Invalid request body"

// messages maps "<json field>.<rule>" to the message shown to clients.
var messages = map[string]string{
	"name.min":          "Name must be at least 2 characters",
	"email.email":       "Invalid email address",
	"password.min":      "Password must be at least 6 characters",
	"password.max":      "Password must be at most 72 characters",
	"password.required": "Password is required",
	"title.required":    "Title is required",
	"category.required": "Category is required",
	"priority.required": "Required",
	"priority.oneof":    "Invalid enum value. Expected 'LOW' | 'MEDIUM' | 'HIGH'",
	"status.oneof":      "Invalid enum value. Expected 'PENDING' | 'COMPLETED'",
	"ids.required":      "Required",
}

// Validator checks request bodies and reports failures in flattened form.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator that names fields by their JSON key.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Check validates s and returns nil when it is valid.
func (v *Validator) Check(s any) *FlattenedErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return formError(msgInvalidBody)
	}

	flat := &FlattenedErrors{
		FormErrors:  []string{},
		FieldErrors: make(map[string][]string, len(fieldErrs)),
	}
	for _, fe := range fieldErrs {
		field := fe.Field()
		msg, ok := messages[field+"."+fe.Tag()]
		if !ok {
			msg = "Invalid value"
		}
		flat.FieldErrors[field] = append(flat.FieldErrors[field], msg)
	}
	return flat
}

func formError(msg string) *FlattenedErrors {
	return &FlattenedErrors{
		FormErrors:  []string{msg},
		FieldErrors: map[string][]string{},
	}
}

func fieldErrors(errs map[string][]string) *FlattenedErrors {
	return &FlattenedErrors{
		FormErrors:  []string{},
		FieldErrors: errs,
	}
}

func validationError(c *fiber.Ctx, status int, errs *FlattenedErrors) error {
	return c.Status(status).JSON(ValidationErrorResponse{Error: *errs})
}
