package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate validates the configuration against the struct tags.
func (c *Config) Validate() error {
	err := newValidator().Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("validating configuration: %w", err)
	}

	errs := make([]error, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		errs = append(errs, errors.New(describe(fe)))
	}

	return fmt.Errorf("validating configuration: %w", errors.Join(errs...))
}

func newValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(label)
	validate.RegisterStructValidation(validateDistinct, Fields{})

	return validate
}

// label returns the name of a field as the user knows it.
func label(fld reflect.StructField) string {
	const splitSize = 2

	name := strings.SplitN(fld.Tag.Get("label"), ",", splitSize)[0]
	if name == "" || name == "-" {
		return fld.Name
	}

	return name
}

// validateDistinct reports every non-empty field id of Fields that repeats an earlier one.
// The error is attached to the earlier field, with the label of the repeating field as parameter.
func validateDistinct(sl validator.StructLevel) {
	fields := sl.Current()
	typ := fields.Type()

	first := make(map[string]int, typ.NumField())

	for i := range typ.NumField() {
		id := fields.Field(i).String()
		if id == "" {
			continue
		}

		j, seen := first[id]
		if !seen {
			first[id] = i

			continue
		}

		sl.ReportError(fields.Field(j).Interface(), label(typ.Field(j)), typ.Field(j).Name, "distinct", label(typ.Field(i)))
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("at least %s %s must be given", fe.Param(), fe.Field())
		}

		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "distinct":
		return fmt.Sprintf("%s must name a different field than %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag())
	}
}
