package http

import (
	"fmt"
	"time"

	"github.com/nekogravitycat/venue-booking-backend/internal/availability"
	"github.com/nekogravitycat/venue-booking-backend/internal/booking"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/request"
)

// AvailabilityQuery: start and end are optional but must come together.
type AvailabilityQuery struct {
	Date  string `form:"date" binding:"required"`
	Start string `form:"start"`
	End   string `form:"end"`
}

type QuoteRequest struct {
	Date       string   `json:"date" binding:"required"`
	GuestCount int      `json:"guest_count"`
	PackageID  string   `json:"package_id"`
	AddOnIDs   []string `json:"add_on_ids"`
	Start      string   `json:"start"`
	End        string   `json:"end"`
}

type CreateBookingRequest struct {
	VenueID    string   `json:"venue_id" binding:"required,uuid"`
	Date       string   `json:"date" binding:"required"`
	Start      string   `json:"start" binding:"required"`
	End        string   `json:"end" binding:"required"`
	GuestCount int      `json:"guest_count" binding:"gte=0"`
	PackageID  string   `json:"package_id"`
	AddOnIDs   []string `json:"add_on_ids" binding:"max=50"`
}

type TransitionRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed rejected cancelled completed"`
}

type ListBookingsRequest struct {
	request.ListParams
	VenueID  string `form:"venue_id" binding:"omitempty,uuid"`
	Owned    bool   `form:"owned"`
	Status   string `form:"status" binding:"omitempty,oneof=pending confirmed cancelled rejected completed"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
}

// parseWindow turns optional start/end clocks into an interval; both empty means none.
func parseWindow(start, end string) (*availability.TimeInterval, error) {
	if start == "" && end == "" {
		return nil, nil
	}
	if start == "" || end == "" {
		return nil, fmt.Errorf("%w: start and end must be given together", availability.ErrInvalidInterval)
	}
	s, err := availability.ParseClock(start)
	if err != nil {
		return nil, err
	}
	e, err := availability.ParseClock(end)
	if err != nil {
		return nil, err
	}
	w, err := availability.NewTimeInterval(s, e)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func parseOptionalDate(s string) (*availability.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := availability.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

type WindowResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func newWindow(i availability.TimeInterval) WindowResponse {
	return WindowResponse{Start: availability.FormatClock(i.Start), End: availability.FormatClock(i.End)}
}

type SlotResponse struct {
	WindowResponse
	Status availability.SlotStatus `json:"status"`
}

type ConflictResponse struct {
	WindowResponse
	ReservationID string              `json:"reservation_id"`
	Status        availability.Status `json:"status"`
}

type RequestedResponse struct {
	WindowResponse
	Available           bool               `json:"available"`
	WithinBusinessHours bool               `json:"within_business_hours"`
	Conflicts           []ConflictResponse `json:"conflicts"`
}

type AvailabilityResponse struct {
	VenueID     string             `json:"venue_id"`
	Date        availability.Date  `json:"date"`
	Slots       []SlotResponse     `json:"slots"`
	FreeWindows []WindowResponse   `json:"free_windows"`
	Requested   *RequestedResponse `json:"requested,omitempty"`
}

func NewAvailabilityResponse(r *availability.AvailabilityResult) AvailabilityResponse {
	resp := AvailabilityResponse{
		VenueID:     r.ResourceID,
		Date:        r.Date,
		Slots:       make([]SlotResponse, len(r.Slots)),
		FreeWindows: make([]WindowResponse, len(r.FreeWindows)),
	}
	for i, s := range r.Slots {
		resp.Slots[i] = SlotResponse{WindowResponse: newWindow(s.Interval), Status: s.Status}
	}
	for i, w := range r.FreeWindows {
		resp.FreeWindows[i] = newWindow(w)
	}
	if r.Requested != nil {
		req := &RequestedResponse{
			WindowResponse:      newWindow(r.Requested.Interval),
			Available:           r.Requested.Available,
			WithinBusinessHours: r.Requested.WithinBusinessHours,
			Conflicts:           make([]ConflictResponse, len(r.Requested.Conflicts)),
		}
		for i, c := range r.Requested.Conflicts {
			req.Conflicts[i] = ConflictResponse{
				WindowResponse: newWindow(c.Interval),
				ReservationID:  c.ReservationID,
				Status:         c.Status,
			}
		}
		resp.Requested = req
	}
	return resp
}

type VenueTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type BookingResponse struct {
	ID         string              `json:"id"`
	Venue      VenueTag            `json:"venue"`
	UserID     string              `json:"user_id"`
	Date       availability.Date   `json:"date"`
	Start      string              `json:"start"`
	End        string              `json:"end"`
	GuestCount int                 `json:"guest_count"`
	PackageID  string              `json:"package_id,omitempty"`
	AddOnIDs   []string            `json:"add_on_ids"`
	TotalPrice float64             `json:"total_price"`
	Status     availability.Status `json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	addOns := b.AddOnIDs
	if addOns == nil {
		addOns = []string{}
	}
	return BookingResponse{
		ID:         b.ID,
		Venue:      VenueTag{ID: b.VenueID, Name: b.VenueName},
		UserID:     b.UserID,
		Date:       b.Date,
		Start:      availability.FormatClock(b.Interval.Start),
		End:        availability.FormatClock(b.Interval.End),
		GuestCount: b.GuestCount,
		PackageID:  b.PackageID,
		AddOnIDs:   addOns,
		TotalPrice: b.TotalPrice,
		Status:     b.Status,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

type CreateBookingResponse struct {
	Booking BookingResponse         `json:"booking"`
	Quote   availability.PriceQuote `json:"quote"`
}
