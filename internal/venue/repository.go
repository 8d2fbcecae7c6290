package venue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists venues.
type Repository interface {
	Create(ctx context.Context, v *Venue) error
	GetByID(ctx context.Context, id string) (*Venue, error)
	List(ctx context.Context, filter Filter) ([]*Venue, int, error)
	Update(ctx context.Context, v *Venue) error
	Delete(ctx context.Context, id string) error
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

var venueColumns = []string{
	"id", "owner_id", "name", "description", "capacity",
	"open_minute", "close_minute", "slot_width_minutes", "pricing",
	"cover_path", "thumbnail_path", "created_at", "updated_at",
}

func scanVenue(row pgx.Row, extra ...any) (*Venue, error) {
	var v Venue
	var pricing []byte
	dest := []any{
		&v.ID, &v.OwnerID, &v.Name, &v.Description, &v.Capacity,
		&v.OpenMinute, &v.CloseMinute, &v.SlotWidthMinutes, &pricing,
		&v.CoverPath, &v.ThumbnailPath, &v.CreatedAt, &v.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(pricing, &v.Pricing); err != nil {
		return nil, fmt.Errorf("failed to decode pricing of venue %s: %w", v.ID, err)
	}
	return &v, nil
}

func (r *pgxRepository) Create(ctx context.Context, v *Venue) error {
	pricing, err := json.Marshal(v.Pricing)
	if err != nil {
		return fmt.Errorf("failed to encode pricing: %w", err)
	}

	query, args, err := r.psql.Insert("venues").
		Columns("id", "owner_id", "name", "description", "capacity",
			"open_minute", "close_minute", "slot_width_minutes", "pricing").
		Values(v.ID, v.OwnerID, v.Name, v.Description, v.Capacity,
			v.OpenMinute, v.CloseMinute, v.SlotWidthMinutes, pricing).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&v.CreatedAt, &v.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create venue: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Venue, error) {
	query, args, err := r.psql.Select(venueColumns...).
		From("venues").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	v, err := scanVenue(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}
	return v, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Venue, int, error) {
	q := r.psql.Select(append(venueColumns, "count(*) OVER() AS total_count")...).From("venues")

	if filter.OwnerID != "" {
		q = q.Where(squirrel.Eq{"owner_id": filter.OwnerID})
	}
	if filter.Name != "" {
		q = q.Where(squirrel.ILike{"name": "%" + filter.Name + "%"})
	}

	order := "DESC"
	if filter.SortOrder == "ASC" {
		order = "ASC"
	}
	q = q.OrderBy("created_at " + order).
		Limit(uint64(filter.PageSize)).
		Offset(uint64((filter.Page - 1) * filter.PageSize))

	query, args, err := q.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list venues: %w", err)
	}
	defer rows.Close()

	var venues []*Venue
	var total int
	for rows.Next() {
		v, err := scanVenue(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan venue: %w", err)
		}
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate venues: %w", err)
	}
	return venues, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, v *Venue) error {
	pricing, err := json.Marshal(v.Pricing)
	if err != nil {
		return fmt.Errorf("failed to encode pricing: %w", err)
	}

	query, args, err := r.psql.Update("venues").
		Set("name", v.Name).
		Set("description", v.Description).
		Set("capacity", v.Capacity).
		Set("open_minute", v.OpenMinute).
		Set("close_minute", v.CloseMinute).
		Set("slot_width_minutes", v.SlotWidthMinutes).
		Set("pricing", pricing).
		Set("cover_path", v.CoverPath).
		Set("thumbnail_path", v.ThumbnailPath).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": v.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&v.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update venue: %w", err)
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	query, args, err := r.psql.Delete("venues").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete venue: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
