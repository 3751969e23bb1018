package shared

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	})

	return v
}

// ValidationDetail renders validator errors as "field: rule" pairs using the
// JSON field names clients sent.
func ValidationDetail(err error) string {
	var fieldErrs validator.ValidationErrors

	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	details := make([]string, 0, len(fieldErrs))

	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			details = append(details, fmt.Sprintf("%s: failed on %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		details = append(details, fmt.Sprintf("%s: failed on %s", fe.Field(), fe.Tag()))
	}

	return strings.Join(details, "; ")
}
