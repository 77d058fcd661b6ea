package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/EgehanKilicarslan/bookmarks-api/internal/database/service"
)

// FieldError is one entry of a 422 response
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every error response. Errors is only set
// for validation failures.
type ErrorResponse struct {
	Detail string       `json:"detail"`
	Errors []FieldError `json:"errors,omitempty"`
}

// RegisterValidator makes gin's validator report json/form names instead of
// Go field names.
func RegisterValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, key := range []string{"json", "form"} {
			name, _, _ := strings.Cut(fld.Tag.Get(key), ",")
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
}

// NewValidationResponse converts a binding or service validation error into
// a 422 body.
func NewValidationResponse(err error) ErrorResponse {
	var (
		validationErrs validator.ValidationErrors
		serviceErr     *service.ValidationError
		syntaxErr      *json.SyntaxError
		typeErr        *json.UnmarshalTypeError
		numErr         *strconv.NumError
	)

	var fields []FieldError
	switch {
	case errors.As(err, &validationErrs):
		for _, e := range validationErrs {
			fields = append(fields, FieldError{Field: e.Field(), Message: friendlyMessage(e)})
		}
	case errors.As(err, &serviceErr):
		fields = append(fields, FieldError{Field: serviceErr.Field, Message: serviceErr.Message})
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		fields = append(fields, FieldError{Field: "body", Message: "malformed JSON body"})
	case errors.As(err, &typeErr):
		fields = append(fields, FieldError{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type.String()),
		})
	case errors.As(err, &numErr):
		fields = append(fields, FieldError{Field: "query", Message: fmt.Sprintf("invalid value %q", numErr.Num)})
	default:
		fields = append(fields, FieldError{Field: "request", Message: err.Error()})
	}

	messages := make([]string, 0, len(fields))
	for _, f := range fields {
		messages = append(messages, f.Message)
	}

	return ErrorResponse{
		Detail: strings.Join(messages, "; "),
		Errors: fields,
	}
}

func friendlyMessage(e validator.FieldError) string {
	field := e.Field()

	switch e.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "not a valid email address"
	case "http_url", "url":
		return "not a valid URL"
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, e.Param())
		}
		return fmt.Sprintf("%s must be greater than or equal to %s", field, e.Param())
	case "max":
		switch e.Kind() {
		case reflect.String:
			return fmt.Sprintf("%s must be at most %s characters", field, e.Param())
		case reflect.Slice:
			return fmt.Sprintf("%s must contain at most %s items", field, e.Param())
		}
		return fmt.Sprintf("%s must be less than or equal to %s", field, e.Param())
	default:
		return field + " is invalid"
	}
}
