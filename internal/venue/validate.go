package venue

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nekogravitycat/venue-booking-backend/internal/availability"
)

// newValidator returns a validator that also understands the "clock" tag
// ("HH:MM", 00:00 to 24:00).
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := availability.ParseClock(fl.Field().String())
		return err == nil
	})
	return v
}

// describe flattens validator errors into one line like "Name: required, OpenTime: clock".
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidVenue, err)
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidVenue, strings.Join(parts, ", "))
}

// checkConfig runs the cross-field rules of the engine's resource model.
// Zero business hours would silently fall back to the engine default, so
// they are rejected here.
func checkConfig(v *Venue) error {
	if v.OpenMinute >= v.CloseMinute {
		return fmt.Errorf("%w: open time must be before close time", ErrInvalidVenue)
	}
	return v.ToResource().Validate()
}
