package availability

import (
	"net/http"

	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/apperror"
)

// All engine failures are local validation errors: the same inputs always produce the same error,
// so none of them is worth retrying. Detail is attached with fmt.Errorf("%w: ...").
var (
	ErrInvalidInterval      = apperror.New(http.StatusBadRequest, "invalid time interval")
	ErrInvalidDate          = apperror.New(http.StatusBadRequest, "invalid calendar date")
	ErrResourceNotFound     = apperror.New(http.StatusNotFound, "resource not found")
	ErrPackageNotFound      = apperror.New(http.StatusBadRequest, "package not found")
	ErrServiceNotFound      = apperror.New(http.StatusBadRequest, "add-on service not found")
	ErrGuestCountOutOfRange = apperror.New(http.StatusBadRequest, "guest count out of package range")
	ErrDurationRequired     = apperror.New(http.StatusBadRequest, "per-hour service requires a booking interval")
	ErrInvalidGuestCount    = apperror.New(http.StatusBadRequest, "guest count cannot be negative")
	ErrInvalidResource      = apperror.New(http.StatusBadRequest, "invalid resource configuration")
)
