package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nekogravitycat/venue-booking-backend/internal/auth"
	"github.com/nekogravitycat/venue-booking-backend/internal/availability"
	"github.com/nekogravitycat/venue-booking-backend/internal/events"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/logger"
	"github.com/nekogravitycat/venue-booking-backend/internal/venue"
)

// VenueReader is the part of the venue service bookings depend on.
type VenueReader interface {
	GetByID(ctx context.Context, id string) (*venue.Venue, error)
}

type Service interface {
	Availability(ctx context.Context, venueID string, date availability.Date, window *availability.TimeInterval) (*availability.AvailabilityResult, error)
	Quote(ctx context.Context, venueID string, in QuoteInput) (*availability.PriceQuote, error)
	Create(ctx context.Context, actor auth.Principal, in CreateInput) (*Booking, *availability.PriceQuote, error)
	Transition(ctx context.Context, actor auth.Principal, id string, to availability.Status) (*Booking, error)
	GetByID(ctx context.Context, actor auth.Principal, id string) (*Booking, error)
	List(ctx context.Context, actor auth.Principal, filter Filter) ([]*Booking, int, error)
}

type service struct {
	repo      Repository
	venues    VenueReader
	publisher events.Publisher
	log       *logger.Logger
	now       func() time.Time
}

func NewService(repo Repository, venues VenueReader, publisher events.Publisher, log *logger.Logger) Service {
	return &service{
		repo:      repo,
		venues:    venues,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

func (s *service) Availability(ctx context.Context, venueID string, date availability.Date, window *availability.TimeInterval) (*availability.AvailabilityResult, error) {
	v, err := s.venues.GetByID(ctx, venueID)
	if err != nil {
		return nil, err
	}
	if !date.Valid() {
		return nil, fmt.Errorf("%w: %s", availability.ErrInvalidDate, date)
	}

	reservations, err := s.repo.ListBlocking(ctx, venueID, date)
	if err != nil {
		return nil, err
	}

	result, err := availability.CheckAvailability(v.ToResource(), reservations, availability.AvailabilityRequest{
		ResourceID:        venueID,
		Date:              date,
		RequestedInterval: window,
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *service) Quote(ctx context.Context, venueID string, in QuoteInput) (*availability.PriceQuote, error) {
	v, err := s.venues.GetByID(ctx, venueID)
	if err != nil {
		return nil, err
	}

	q, err := availability.QuotePrice(v.ToResource(), availability.PriceQuoteRequest{
		ResourceID:      venueID,
		Date:            in.Date,
		GuestCount:      in.GuestCount,
		PackageID:       in.PackageID,
		AddOnServiceIDs: in.AddOnIDs,
		Interval:        in.Interval,
	})
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *service) Create(ctx context.Context, actor auth.Principal, in CreateInput) (*Booking, *availability.PriceQuote, error) {
	// 1. Validate the window and reject the past
	if !in.Interval.Valid() {
		return nil, nil, fmt.Errorf("%w: %s", availability.ErrInvalidInterval, in.Interval)
	}
	if !in.Date.Valid() {
		return nil, nil, fmt.Errorf("%w: %s", availability.ErrInvalidDate, in.Date)
	}
	now := s.now().UTC()
	today := availability.DateOf(now)
	if in.Date.Before(today) || (in.Date == today && in.Interval.Start < now.Hour()*60+now.Minute()) {
		return nil, nil, ErrStartTimePast
	}

	// 2. Load the venue
	v, err := s.venues.GetByID(ctx, in.VenueID)
	if err != nil {
		return nil, nil, err
	}
	if v.Capacity > 0 && in.GuestCount > v.Capacity {
		return nil, nil, fmt.Errorf("%w: %d > %d", ErrCapacityExceeded, in.GuestCount, v.Capacity)
	}
	resource := v.ToResource()

	// 3. Check the window against current reservations
	reservations, err := s.repo.ListBlocking(ctx, v.ID, in.Date)
	if err != nil {
		return nil, nil, err
	}
	avail, err := availability.CheckAvailability(resource, reservations, availability.AvailabilityRequest{
		ResourceID:        v.ID,
		Date:              in.Date,
		RequestedInterval: &in.Interval,
	})
	if err != nil {
		return nil, nil, err
	}
	if !avail.Requested.WithinBusinessHours {
		return nil, nil, fmt.Errorf("%w: %s not within %s", ErrOutsideBusinessHours, in.Interval, resource.Hours().Interval())
	}
	if !avail.Requested.Available {
		return nil, nil, conflictError(avail.Requested.Conflicts)
	}

	// 4. Price it
	quote, err := availability.QuotePrice(resource, availability.PriceQuoteRequest{
		ResourceID:      v.ID,
		Date:            in.Date,
		GuestCount:      in.GuestCount,
		PackageID:       in.PackageID,
		AddOnServiceIDs: in.AddOnIDs,
		Interval:        &in.Interval,
	})
	if err != nil {
		return nil, nil, err
	}

	// 5. Persist; the storage constraint settles races the check above cannot see
	b := &Booking{
		ID:         uuid.NewString(),
		VenueID:    v.ID,
		VenueName:  v.Name,
		UserID:     actor.UserID,
		Date:       in.Date,
		Interval:   in.Interval,
		GuestCount: in.GuestCount,
		PackageID:  in.PackageID,
		AddOnIDs:   in.AddOnIDs,
		TotalPrice: quote.Total,
		Status:     availability.StatusPending,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, nil, err
	}

	s.log.LogReservationTransition(ctx, b.ID, b.VenueID, actor.UserID, "", string(b.Status))
	s.publish(ctx, b, actor.UserID)
	return b, &quote, nil
}

func (s *service) Transition(ctx context.Context, actor auth.Principal, id string, to availability.Status) (*Booking, error) {
	if !to.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	roles, err := s.rolesFor(ctx, actor, b)
	if err != nil {
		return nil, err
	}
	if roles == 0 {
		return nil, ErrNotFound
	}
	if err := checkTransition(b.Status, to, roles); err != nil {
		return nil, err
	}

	updatedAt, err := s.repo.UpdateStatus(ctx, b.ID, b.Status, to)
	if err != nil {
		return nil, err
	}

	from := b.Status
	b.Status, b.UpdatedAt = to, updatedAt
	s.log.LogReservationTransition(ctx, b.ID, b.VenueID, actor.UserID, string(from), string(to))
	s.publish(ctx, b, actor.UserID)
	return b, nil
}

// GetByID hides bookings the caller has no part in.
func (s *service) GetByID(ctx context.Context, actor auth.Principal, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	roles, err := s.rolesFor(ctx, actor, b)
	if err != nil {
		return nil, err
	}
	if roles == 0 {
		return nil, ErrNotFound
	}
	return b, nil
}

// List scopes the filter: a venue listing needs vendor rights on the venue,
// otherwise callers see their own bookings. Admins see everything.
func (s *service) List(ctx context.Context, actor auth.Principal, filter Filter) ([]*Booking, int, error) {
	switch {
	case actor.IsAdmin:
	case filter.VenueID != "":
		v, err := s.venues.GetByID(ctx, filter.VenueID)
		if err != nil {
			return nil, 0, err
		}
		if !v.ManagedBy(actor) {
			return nil, 0, ErrPermissionDenied
		}
	case filter.OwnerID != "":
		if filter.OwnerID != actor.UserID {
			return nil, 0, ErrPermissionDenied
		}
	default:
		filter.UserID = actor.UserID
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	return s.repo.List(ctx, filter)
}

func (s *service) rolesFor(ctx context.Context, actor auth.Principal, b *Booking) (role, error) {
	var roles role
	if b.UserID == actor.UserID {
		roles |= roleBooker
	}
	if actor.IsAdmin {
		return roles | roleVendor, nil
	}
	v, err := s.venues.GetByID(ctx, b.VenueID)
	if err != nil {
		return 0, err
	}
	if v.ManagedBy(actor) {
		roles |= roleVendor
	}
	return roles, nil
}

// ReservationEvent is the payload of reservation.* events.
type ReservationEvent struct {
	ReservationID string              `json:"reservation_id"`
	VenueID       string              `json:"venue_id"`
	UserID        string              `json:"user_id"`
	ActorID       string              `json:"actor_id"`
	Date          availability.Date   `json:"date"`
	Start         string              `json:"start"`
	End           string              `json:"end"`
	Status        availability.Status `json:"status"`
	TotalPrice    float64             `json:"total_price"`
}

// publish is fire-and-forget; the booking is already committed.
func (s *service) publish(ctx context.Context, b *Booking, actorID string) {
	e, err := events.New("reservation."+string(b.Status), b.ID, ReservationEvent{
		ReservationID: b.ID,
		VenueID:       b.VenueID,
		UserID:        b.UserID,
		ActorID:       actorID,
		Date:          b.Date,
		Start:         availability.FormatClock(b.Interval.Start),
		End:           availability.FormatClock(b.Interval.End),
		Status:        b.Status,
		TotalPrice:    b.TotalPrice,
	})
	if err == nil {
		err = s.publisher.Publish(ctx, e)
	}
	if err != nil {
		s.log.ErrorWithContext(ctx, "failed to publish reservation event", err, map[string]any{
			"reservation_id": b.ID,
			"status":         string(b.Status),
		})
	}
}

func conflictError(conflicts []availability.Conflict) error {
	parts := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		parts = append(parts, c.Interval.String())
	}
	return fmt.Errorf("%w: overlaps %s", ErrTimeConflict, strings.Join(parts, ", "))
}
