// Package availability decides whether a venue is free on a given day and
// prices a prospective booking.
//
// Every function is a pure computation over its arguments: the caller supplies
// the resource configuration and a snapshot of its reservations on each call,
// and nothing is cached or mutated. Concurrent use needs no locking. Whether two
// bookings racing on the same window may both commit is the storage layer's
// concern; results here are advisory.
package availability

import (
	"fmt"
)

// CheckAvailability returns the slot breakdown of req.Date and, when a window
// is requested, whether that exact window is free. The window is evaluated
// directly against the reservations, not via slot boundaries, so it may span
// several slots or part of one.
//
// "Not available" is a normal result, never an error.
func CheckAvailability(r *Resource, reservations []Reservation, req AvailabilityRequest) (AvailabilityResult, error) {
	if r == nil {
		return AvailabilityResult{}, fmt.Errorf("%w: %q", ErrResourceNotFound, req.ResourceID)
	}
	if req.ResourceID != "" && r.ID != "" && req.ResourceID != r.ID {
		return AvailabilityResult{}, fmt.Errorf("%w: %q", ErrResourceNotFound, req.ResourceID)
	}
	if !req.Date.Valid() {
		return AvailabilityResult{}, fmt.Errorf("%w: %s", ErrInvalidDate, req.Date)
	}
	if req.RequestedInterval != nil && !req.RequestedInterval.Valid() {
		return AvailabilityResult{}, fmt.Errorf("%w: %s", ErrInvalidInterval, *req.RequestedInterval)
	}

	blocking := blockingOn(*r, reservations, req.Date)

	slots := GenerateSlots(*r)
	result := AvailabilityResult{
		ResourceID:  r.ID,
		Date:        req.Date,
		Slots:       make([]SlotAvailability, 0, len(slots)),
		FreeWindows: freeWindows(r.Hours().Interval(), blocking),
	}
	for _, s := range slots {
		result.Slots = append(result.Slots, SlotAvailability{Interval: s, Status: slotStatus(blocking, s)})
	}

	if req.RequestedInterval != nil {
		window := *req.RequestedInterval
		conflicts := conflictsWith(blocking, window)
		result.Requested = &RequestedWindow{
			Interval:            window,
			Available:           len(conflicts) == 0,
			WithinBusinessHours: Contains(r.Hours().Interval(), window),
			Conflicts:           conflicts,
		}
	}

	return result, nil
}

// QuotePrice prices a prospective booking of r. The breakdown keeps every
// step's contribution; only Total is rounded.
func QuotePrice(r *Resource, req PriceQuoteRequest) (PriceQuote, error) {
	if r == nil {
		return PriceQuote{}, fmt.Errorf("%w: %q", ErrResourceNotFound, req.ResourceID)
	}
	if req.ResourceID != "" && r.ID != "" && req.ResourceID != r.ID {
		return PriceQuote{}, fmt.Errorf("%w: %q", ErrResourceNotFound, req.ResourceID)
	}
	if !req.Date.Valid() {
		return PriceQuote{}, fmt.Errorf("%w: %s", ErrInvalidDate, req.Date)
	}
	if req.GuestCount < 0 {
		return PriceQuote{}, fmt.Errorf("%w: %d", ErrInvalidGuestCount, req.GuestCount)
	}
	if req.Interval != nil && !req.Interval.Valid() {
		return PriceQuote{}, fmt.Errorf("%w: %s", ErrInvalidInterval, *req.Interval)
	}

	return price(*r, req)
}
