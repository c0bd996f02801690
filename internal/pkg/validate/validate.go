package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var v = validator.New()

// Struct validates a struct against its validate tags and returns a single
// readable error naming the first offending field.
func Struct(s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("field %s failed on %s", strings.ToLower(fe.Field()), fe.Tag())
	}
	return err
}

// Var validates a single value against a tag expression, e.g. "required,email".
func Var(value interface{}, tag string) error {
	return v.Var(value, tag)
}
