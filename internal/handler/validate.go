package handler

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pkordes/tzplanner/internal/domain"
)

// newValidator returns a validator that reports fields by their JSON name
// and understands the "clock" tag used on time-of-day fields.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	//nolint:errcheck // registration only fails for an empty tag or nil func.
	v.RegisterValidation("clock", validateClock)
	return v
}

// validateClock accepts the wall-clock forms the converter understands.
func validateClock(fl validator.FieldLevel) bool {
	_, _, _, err := domain.ParseClock(fl.Field().String())
	return err == nil
}
