package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nekogravitycat/venue-booking-backend/internal/availability"
)

type Repository interface {
	// Create fails with ErrTimeConflict when a concurrent insert already
	// holds an overlapping window.
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	// ListBlocking returns the blocking reservations of a venue on one day.
	ListBlocking(ctx context.Context, venueID string, date availability.Date) ([]availability.Reservation, error)
	// UpdateStatus moves a booking only if it is still in status from.
	UpdateStatus(ctx context.Context, id string, from, to availability.Status) (time.Time, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
	psql squirrel.StatementBuilderType
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{
		pool: pool,
		psql: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var bookingColumns = []string{
	"b.id", "b.venue_id", "v.name", "b.user_id", "b.date", "b.start_minute", "b.end_minute",
	"b.guest_count", "COALESCE(b.package_id, '')", "b.add_on_ids", "b.total_price",
	"b.status", "b.created_at", "b.updated_at",
}

func blockingStatuses() []string {
	return []string{string(availability.StatusPending), string(availability.StatusConfirmed)}
}

func scanBooking(row pgx.Row, extra ...any) (*Booking, error) {
	var b Booking
	var date time.Time
	dest := []any{
		&b.ID, &b.VenueID, &b.VenueName, &b.UserID, &date, &b.Interval.Start, &b.Interval.End,
		&b.GuestCount, &b.PackageID, &b.AddOnIDs, &b.TotalPrice,
		&b.Status, &b.CreatedAt, &b.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	b.Date = availability.DateOf(date)
	return &b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	var pkg *string
	if b.PackageID != "" {
		pkg = &b.PackageID
	}
	addOns := b.AddOnIDs
	if addOns == nil {
		addOns = []string{}
	}

	query, args, err := r.psql.Insert("bookings").
		Columns("id", "venue_id", "user_id", "date", "start_minute", "end_minute",
			"guest_count", "package_id", "add_on_ids", "total_price", "status").
		Values(b.ID, b.VenueID, b.UserID, b.Date.In(time.UTC), b.Interval.Start, b.Interval.End,
			b.GuestCount, pkg, addOns, b.TotalPrice, b.Status).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.CreatedAt, &b.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation {
			return ErrTimeConflict
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query, args, err := r.psql.Select(bookingColumns...).
		From("bookings b").
		Join("venues v ON b.venue_id = v.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	q := r.psql.Select(append(bookingColumns, "count(*) OVER() AS total_count")...).
		From("bookings b").
		Join("venues v ON b.venue_id = v.id")

	if filter.UserID != "" {
		q = q.Where(squirrel.Eq{"b.user_id": filter.UserID})
	}
	if filter.VenueID != "" {
		q = q.Where(squirrel.Eq{"b.venue_id": filter.VenueID})
	}
	if filter.OwnerID != "" {
		q = q.Where(squirrel.Eq{"v.owner_id": filter.OwnerID})
	}
	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"b.status": filter.Status})
	}
	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"b.date": filter.DateFrom.In(time.UTC)})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"b.date": filter.DateTo.In(time.UTC)})
	}

	order := "DESC"
	if filter.SortOrder == "ASC" {
		order = "ASC"
	}
	q = q.OrderBy("b.date "+order, "b.start_minute "+order).
		Limit(uint64(filter.PageSize)).
		Offset(uint64((filter.Page - 1) * filter.PageSize))

	query, args, err := q.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int
	for rows.Next() {
		b, err := scanBooking(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate bookings: %w", err)
	}
	return bookings, total, nil
}

func (r *pgxRepository) ListBlocking(ctx context.Context, venueID string, date availability.Date) ([]availability.Reservation, error) {
	query, args, err := r.psql.Select("id", "start_minute", "end_minute", "status").
		From("bookings").
		Where(squirrel.Eq{
			"venue_id": venueID,
			"date":     date.In(time.UTC),
			"status":   blockingStatuses(),
		}).
		OrderBy("start_minute").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	defer rows.Close()

	var out []availability.Reservation
	for rows.Next() {
		res := availability.Reservation{ResourceID: venueID, Date: date}
		if err := rows.Scan(&res.ID, &res.Interval.Start, &res.Interval.End, &res.Status); err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, from, to availability.Status) (time.Time, error) {
	query, args, err := r.psql.Update("bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to build query: %w", err)
	}

	var updatedAt time.Time
	err = r.pool.QueryRow(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// Someone else moved it first.
		return time.Time{}, fmt.Errorf("%w: booking is no longer %s", ErrInvalidTransition, from)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to update booking status: %w", err)
	}
	return updatedAt, nil
}
