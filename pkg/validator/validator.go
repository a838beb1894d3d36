package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report config keys (link.addr) rather than Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Struct validates s and folds all failures into one readable error.
func Struct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return errors.New(GetErrorMsg(err))
	}
	return nil
}

// GetErrorMsg translates validation errors into user-friendly messages
func GetErrorMsg(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	errMsgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := e.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}
		param := e.Param()

		switch e.Tag() {
		case "required":
			errMsgs = append(errMsgs, fmt.Sprintf("%s is required", field))
		case "oneof":
			errMsgs = append(errMsgs, fmt.Sprintf("%s must be one of [%s], got %q", field, param, e.Value()))
		case "hostname_port":
			errMsgs = append(errMsgs, fmt.Sprintf("%s must be host:port, got %q", field, e.Value()))
		case "startswith":
			errMsgs = append(errMsgs, fmt.Sprintf("%s must start with %q", field, param))
		case "gte":
			errMsgs = append(errMsgs, fmt.Sprintf("%s must be at least %s", field, param))
		default:
			errMsgs = append(errMsgs, fmt.Sprintf("%s failed %s", field, e.Tag()))
		}
	}
	return strings.Join(errMsgs, "; ")
}
