package apperror

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-playground/validator/v10"
)

// FromValidation flattens ozzo-validation and go-playground/validator errors
// into a ValidationFailed error. It returns nil when err carries neither.
func FromValidation(err error) *Error {
	if err == nil {
		return nil
	}

	var ozzoErrs validation.Errors
	if errors.As(err, &ozzoErrs) {
		fields := make(map[string]string, len(ozzoErrs))
		flattenOzzo("", ozzoErrs, fields)
		return Validation(fields)
	}

	var bindErrs validator.ValidationErrors
	if errors.As(err, &bindErrs) {
		fields := make(map[string]string, len(bindErrs))
		for _, fe := range bindErrs {
			fields[fe.Field()] = bindingMessage(fe)
		}
		return Validation(fields)
	}

	return nil
}

func flattenOzzo(prefix string, errs validation.Errors, out map[string]string) {
	for field, fieldErr := range errs {
		key := field
		if prefix != "" {
			key = prefix + "." + field
		}
		var nested validation.Errors
		if errors.As(fieldErr, &nested) {
			flattenOzzo(key, nested, out)
			continue
		}
		out[key] = fieldErr.Error()
	}
}

func bindingMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "uuid", "uuid4":
		return fmt.Sprintf("%s must be a valid UUID", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}

// RegisterJSONTagNames makes validator report fields by their json name,
// matching the keys ozzo-validation produces.
func RegisterJSONTagNames(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}
