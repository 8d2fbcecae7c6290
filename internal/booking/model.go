package booking

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/venue-booking-backend/internal/availability"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound             = apperror.New(http.StatusNotFound, "booking not found")
	ErrTimeConflict         = apperror.New(http.StatusConflict, "time slot already booked")
	ErrOutsideBusinessHours = apperror.New(http.StatusBadRequest, "requested time is outside business hours")
	ErrStartTimePast        = apperror.New(http.StatusBadRequest, "cannot book a time in the past")
	ErrCapacityExceeded     = apperror.New(http.StatusBadRequest, "guest count exceeds venue capacity")
	ErrInvalidTransition    = apperror.New(http.StatusConflict, "booking cannot move to that status")
	ErrInvalidStatus        = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrPermissionDenied     = apperror.New(http.StatusForbidden, "permission denied")
)

// Booking is a stored reservation of a venue time window.
type Booking struct {
	ID         string
	VenueID    string
	VenueName  string
	UserID     string
	Date       availability.Date
	Interval   availability.TimeInterval
	GuestCount int
	PackageID  string
	AddOnIDs   []string
	TotalPrice float64
	Status     availability.Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Reservation is the engine's view of the booking.
func (b *Booking) Reservation() availability.Reservation {
	return availability.Reservation{
		ID:         b.ID,
		ResourceID: b.VenueID,
		Date:       b.Date,
		Interval:   b.Interval,
		Status:     b.Status,
	}
}

type Filter struct {
	UserID    string
	VenueID   string
	OwnerID   string // venues owned by this user
	Status    availability.Status
	DateFrom  *availability.Date
	DateTo    *availability.Date
	Page      int
	PageSize  int
	SortOrder string
}

// CreateInput describes a new booking request.
type CreateInput struct {
	VenueID    string
	Date       availability.Date
	Interval   availability.TimeInterval
	GuestCount int
	PackageID  string
	AddOnIDs   []string
}

// QuoteInput is a price enquiry; Interval is needed only for per-hour add-ons.
type QuoteInput struct {
	Date       availability.Date
	GuestCount int
	PackageID  string
	AddOnIDs   []string
	Interval   *availability.TimeInterval
}
