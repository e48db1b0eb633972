package validation

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/reserve-se/reserve-se/internal/models"
)

// Validator validates request structs against their validate tags
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{
		validate: validator.New(),
	}
}

// Validate validates a struct and returns the first violation as a
// readable error.
func (v *Validator) Validate(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		e := errs[0]
		return fmt.Errorf("field %s failed validation (%s)", e.Field(), e.Tag())
	}
	return err
}

// ParseDate parses a calendar date in YYYY-MM-DD form. The result is
// midnight UTC of that day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(models.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}
