package serverutils

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidationError aggregates per-field failures so controllers can return
// them before any downstream work happens.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

// ValidateRequest runs struct-tag validation on a request DTO.
// Returns a *ValidationError listing every failing field.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			fields = append(fields, fmt.Sprintf("%s is required", fe.Field()))
		case "email":
			fields = append(fields, fmt.Sprintf("%s must be a valid email", fe.Field()))
		case "max":
			fields = append(fields, fmt.Sprintf("%s exceeds max length %s", fe.Field(), fe.Param()))
		default:
			fields = append(fields, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}

	return &ValidationError{Fields: fields}
}
