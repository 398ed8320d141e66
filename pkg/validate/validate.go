package validate

import (
	stderrors "errors"
	"reflect"
	"strings"

	"shop-notification-srv/pkg/errors"

	"github.com/go-playground/validator/v10"
)

// v is the package-level validator. Field names are reported by their json
// tag so that errors match what callers actually sent.
var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return val
}

// Struct validates s against its validate tags. Rule failures come back as
// *errors.ValidationError; anything else (e.g. a non-struct argument) is
// returned unchanged.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !stderrors.As(err, &ve) {
		return err
	}
	fields := make([]errors.FieldError, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, errors.FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return errors.NewValidationError(fields...)
}
