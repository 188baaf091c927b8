package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ValidationErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var messageByTag = map[string]string{
	"required": "This field is required",
	"email":    "Invalid email format",
	"min":      "Value is too short",
	"max":      "Value is too long",
	"oneof":    "Value is not one of the allowed options",
	"url":      "Invalid URL format",
}

func messageFor(fieldError validator.FieldError) string {
	param := fieldError.Param()

	switch fieldError.Tag() {
	case "max":
		if fieldError.Kind() == reflect.Slice {
			return fmt.Sprintf("Must not contain more than %s items", param)
		}
		return fmt.Sprintf("Must not exceed %s characters", param)
	case "min":
		return fmt.Sprintf("Must be at least %s characters", param)
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(param, " ", ", "))
	}

	if message, ok := messageByTag[fieldError.Tag()]; ok {
		return message
	}
	return "Invalid value"
}

// jsonFieldName maps a Go field name such as "Interests[2]" to its JSON name
// ("interests[2]").
func jsonFieldName(structType reflect.Type, fieldName string) string {
	if structType == nil {
		return fieldName
	}

	base, index, _ := strings.Cut(fieldName, "[")
	field, found := structType.FieldByName(base)
	if !found {
		return fieldName
	}

	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		name = base
	}
	if index != "" {
		name += "[" + index
	}
	return name
}

// FormatValidationErrors turns binding errors into per-field messages. It
// returns nil for errors that are not about individual fields, such as
// malformed JSON.
func FormatValidationErrors(err error, model interface{}) []ValidationErrorResponse {
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []ValidationErrorResponse{{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("Invalid type for field %s. Expected %s, got %s", typeErr.Field, typeErr.Type, typeErr.Value),
		}}
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	var structType reflect.Type
	if model != nil {
		structType = reflect.TypeOf(model)
		if structType.Kind() == reflect.Ptr {
			structType = structType.Elem()
		}
	}

	out := make([]ValidationErrorResponse, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		out = append(out, ValidationErrorResponse{
			Field:   jsonFieldName(structType, fieldError.Field()),
			Message: messageFor(fieldError),
		})
	}
	return out
}
