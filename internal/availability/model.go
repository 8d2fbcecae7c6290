package availability

import (
	"fmt"
)

// Defaults applied when a Resource leaves the fields zero-valued.
var DefaultBusinessHours = BusinessHours{StartMinute: 9 * 60, EndMinute: 18 * 60}

const DefaultSlotWidthMinutes = 60

// Status is the lifecycle state of a Reservation.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

// IsValid checks if the reservation status is one of the known values.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// Blocking reports whether a reservation in this status occupies its time window.
func (s Status) Blocking() bool {
	return s == StatusPending || s == StatusConfirmed
}

type BusinessHours struct {
	StartMinute int `json:"start_minute"`
	EndMinute   int `json:"end_minute"`
}

// Interval returns the business day as a TimeInterval.
func (h BusinessHours) Interval() TimeInterval {
	return TimeInterval{Start: h.StartMinute, End: h.EndMinute}
}

type BasePricing struct {
	BasePrice                    float64 `json:"base_price"`
	PerGuestPrice                float64 `json:"per_guest_price"`
	MinimumGuestsBeforeSurcharge int     `json:"minimum_guests_before_surcharge"`
}

// SeasonalRule adjusts the subtotal for dates whose month falls in [StartMonth, EndMonth].
// Ranges wrapping the year end are not supported; declare two rules instead.
type SeasonalRule struct {
	StartMonth        int     `json:"start_month"`
	EndMonth          int     `json:"end_month"`
	AdjustmentPercent float64 `json:"adjustment_percent"`
}

// Matches reports whether month (1-12) lies inside the rule.
func (r SeasonalRule) Matches(month int) bool {
	return r.StartMonth <= month && month <= r.EndMonth
}

type Package struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	MinGuests int     `json:"min_guests"`
	MaxGuests int     `json:"max_guests"`
}

type PriceType string

const (
	PriceFixed    PriceType = "fixed"
	PricePerGuest PriceType = "per_guest"
	PricePerHour  PriceType = "per_hour"
)

type AddOnService struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	PriceType PriceType `json:"price_type"`
	Required  bool      `json:"required"`
}

// Resource is a bookable venue as the engine sees it. Callers adapt their own
// storage shape into this one at the boundary.
type Resource struct {
	ID               string         `json:"id"`
	BusinessHours    BusinessHours  `json:"business_hours"`
	SlotWidthMinutes int            `json:"slot_width_minutes"`
	BasePricing      BasePricing    `json:"base_pricing"`
	SeasonalRules    []SeasonalRule `json:"seasonal_rules"`
	Packages         []Package      `json:"packages"`
	AddOnServices    []AddOnService `json:"add_on_services"`
}

// Hours returns the business hours, falling back to DefaultBusinessHours when unset.
func (r Resource) Hours() BusinessHours {
	if r.BusinessHours == (BusinessHours{}) {
		return DefaultBusinessHours
	}
	return r.BusinessHours
}

// SlotWidth returns the slot width, falling back to DefaultSlotWidthMinutes when unset.
func (r Resource) SlotWidth() int {
	if r.SlotWidthMinutes <= 0 {
		return DefaultSlotWidthMinutes
	}
	return r.SlotWidthMinutes
}

// Validate checks the configuration invariants. The engine itself tolerates
// a bad configuration; this is for the layer that stores resources.
func (r Resource) Validate() error {
	hours := r.Hours()
	if !hours.Interval().Valid() {
		return fmt.Errorf("%w: business hours %d-%d", ErrInvalidResource, hours.StartMinute, hours.EndMinute)
	}
	if r.SlotWidthMinutes < 0 {
		return fmt.Errorf("%w: slot width %d", ErrInvalidResource, r.SlotWidthMinutes)
	}
	if r.BasePricing.BasePrice < 0 || r.BasePricing.PerGuestPrice < 0 || r.BasePricing.MinimumGuestsBeforeSurcharge < 0 {
		return fmt.Errorf("%w: base pricing must not be negative", ErrInvalidResource)
	}

	for i, rule := range r.SeasonalRules {
		if rule.StartMonth < 1 || rule.EndMonth > 12 || rule.StartMonth > rule.EndMonth {
			return fmt.Errorf("%w: seasonal rule %d months %d-%d", ErrInvalidResource, i, rule.StartMonth, rule.EndMonth)
		}
	}

	seen := make(map[string]bool, len(r.Packages))
	for _, p := range r.Packages {
		if p.ID == "" || seen[p.ID] {
			return fmt.Errorf("%w: package id %q missing or duplicated", ErrInvalidResource, p.ID)
		}
		seen[p.ID] = true
		if p.Price < 0 || p.MinGuests < 0 || p.MaxGuests < p.MinGuests {
			return fmt.Errorf("%w: package %q", ErrInvalidResource, p.ID)
		}
	}

	seen = make(map[string]bool, len(r.AddOnServices))
	for _, s := range r.AddOnServices {
		if s.ID == "" || seen[s.ID] {
			return fmt.Errorf("%w: service id %q missing or duplicated", ErrInvalidResource, s.ID)
		}
		seen[s.ID] = true
		if s.Price < 0 {
			return fmt.Errorf("%w: service %q price", ErrInvalidResource, s.ID)
		}
		switch s.PriceType {
		case PriceFixed, PricePerGuest, PricePerHour:
		default:
			return fmt.Errorf("%w: service %q price type %q", ErrInvalidResource, s.ID, s.PriceType)
		}
	}
	return nil
}

// Reservation is an existing booking against a Resource. The engine only reads it.
type Reservation struct {
	ID         string       `json:"id"`
	ResourceID string       `json:"resource_id"`
	Date       Date         `json:"date"`
	Interval   TimeInterval `json:"interval"`
	Status     Status       `json:"status"`
}

type AvailabilityRequest struct {
	ResourceID        string        `json:"resource_id"`
	Date              Date          `json:"date"`
	RequestedInterval *TimeInterval `json:"requested_interval,omitempty"`
}

type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotOccupied  SlotStatus = "occupied"
)

type SlotAvailability struct {
	Interval TimeInterval `json:"interval"`
	Status   SlotStatus   `json:"status"`
}

// Conflict identifies a blocking reservation for caller display.
type Conflict struct {
	ReservationID string       `json:"reservation_id"`
	Interval      TimeInterval `json:"interval"`
	Status        Status       `json:"status"`
}

type RequestedWindow struct {
	Interval            TimeInterval `json:"interval"`
	Available           bool         `json:"available"`
	WithinBusinessHours bool         `json:"within_business_hours"`
	Conflicts           []Conflict   `json:"conflicts"`
}

type AvailabilityResult struct {
	ResourceID  string             `json:"resource_id"`
	Date        Date               `json:"date"`
	Slots       []SlotAvailability `json:"slots"`
	FreeWindows []TimeInterval     `json:"free_windows"`
	Requested   *RequestedWindow   `json:"requested,omitempty"`
}

type PriceQuoteRequest struct {
	ResourceID      string        `json:"resource_id"`
	Date            Date          `json:"date"`
	GuestCount      int           `json:"guest_count"`
	PackageID       string        `json:"package_id,omitempty"`
	AddOnServiceIDs []string      `json:"add_on_service_ids"`
	Interval        *TimeInterval `json:"interval,omitempty"`
}

type AddOnCharge struct {
	ServiceID string    `json:"service_id"`
	Name      string    `json:"name"`
	PriceType PriceType `json:"price_type"`
	Amount    float64   `json:"amount"`
	Required  bool      `json:"required"`
}

// PriceQuote breaks the total down into every pricing step.
type PriceQuote struct {
	BasePrice          float64       `json:"base_price"`
	GuestSurcharge     float64       `json:"guest_surcharge"`
	SeasonalAdjustment float64       `json:"seasonal_adjustment"`
	PackagePrice       float64       `json:"package_price"`
	AddOnTotal         float64       `json:"add_on_total"`
	AddOns             []AddOnCharge `json:"add_ons"`
	Total              float64       `json:"total"`
}
