package alphavantage

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields by their JSON names so errors point at the
// wire payload.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// decode builds model from a classified payload and validates its required
// fields. Every failure is a *ValidationError.
//
// A value of the wrong JSON kind inside a record leaves that field absent
// and decoding carries on; only a top-level collection of the wrong kind
// fails the payload. Key fields left empty this way are then caught by the
// required checks.
func decode(model string, body []byte, v interface{}) error {
	if err := json.Unmarshal(body, v); err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			return vErr
		}
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return &ValidationError{Model: model, Field: "(payload)", Reason: err.Error()}
		}
		if structural(typeErr) {
			return &ValidationError{
				Model:  model,
				Field:  typeErr.Field,
				Reason: "unexpected JSON " + typeErr.Value,
			}
		}
	}
	return validateModel(model, v)
}

// structural reports whether a kind mismatch hit one of the model's own
// collections rather than a field of a record.
func structural(err *json.UnmarshalTypeError) bool {
	if err.Field == "" {
		return true
	}
	if strings.Contains(err.Field, ".") || err.Type == nil {
		return false
	}
	switch err.Type.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Struct:
		return true
	}
	return false
}

func validateModel(model string, v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		reason := "failed " + fe.Tag()
		if fe.Tag() == "required" {
			reason = "required field is missing"
		}
		typeName := reflect.Indirect(reflect.ValueOf(v)).Type().Name()
		return &ValidationError{
			Model:  model,
			Field:  strings.TrimPrefix(fe.Namespace(), typeName+"."),
			Reason: reason,
		}
	}
	return &ValidationError{Model: model, Field: "(payload)", Reason: err.Error()}
}

// paramError maps a failed option check onto the parameter it names.
func paramError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		msg := fmt.Sprintf("value %v is not allowed", fe.Value())
		switch fe.Tag() {
		case "oneof":
			msg = fmt.Sprintf("must be one of [%s], got %v", fe.Param(), fe.Value())
		case "min", "max":
			msg = fmt.Sprintf("must be between 1 and %d, got %v", MaxNewsLimit, fe.Value())
		case "datetime":
			msg = fmt.Sprintf("must be formatted as YYYY-MM, got %v", fe.Value())
		}
		return &InvalidParameterError{Param: fe.Field(), Message: msg}
	}
	return &InvalidParameterError{Message: err.Error()}
}
