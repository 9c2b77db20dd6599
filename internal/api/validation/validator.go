package validation

import (
	"fmt"

	"github.com/blaisecz/meal-cycle/internal/domain"
	"github.com/blaisecz/meal-cycle/pkg/problem"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Register plausible reading range validator
	validate.RegisterValidation("reading", func(fl validator.FieldLevel) bool {
		v := fl.Field().Float()
		return v >= domain.MinReadingValue && v <= domain.MaxReadingValue
	})
}

// Validate validates a struct and returns field errors
func Validate(s interface{}) []problem.FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors []problem.FieldError
	for _, err := range err.(validator.ValidationErrors) {
		fieldErrors = append(fieldErrors, problem.FieldError{
			Field:   toSnakeCase(err.Field()),
			Message: getValidationMessage(err),
		})
	}
	return fieldErrors
}

func getValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + err.Param()
	case "gte", "min":
		return "must be at least " + err.Param()
	case "lte", "max":
		return "must be at most " + err.Param()
	case "reading":
		return fmt.Sprintf("must be between %d and %d mg/dL", domain.MinReadingValue, domain.MaxReadingValue)
	default:
		return "is invalid"
	}
}

func toSnakeCase(s string) string {
	var result []byte
	for i, c := range s {
		if c >= 'A' && c <= 'Z' {
			if i > 0 {
				result = append(result, '_')
			}
			result = append(result, byte(c+'a'-'A'))
		} else {
			result = append(result, byte(c))
		}
	}
	return string(result)
}
