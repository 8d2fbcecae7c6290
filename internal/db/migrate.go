package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// The bookings exclusion constraint is the last line of defence against two
// concurrent inserts that both passed the availability check.
const schemaSQL = `
CREATE EXTENSION IF NOT EXISTS btree_gist;

CREATE TABLE IF NOT EXISTS users (
	id            UUID PRIMARY KEY,
	email         TEXT UNIQUE NOT NULL,
	password_hash TEXT NOT NULL,
	display_name  TEXT,
	is_active     BOOLEAN NOT NULL DEFAULT TRUE,
	is_admin      BOOLEAN NOT NULL DEFAULT FALSE,
	last_login_at TIMESTAMPTZ,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS venues (
	id                 UUID PRIMARY KEY,
	owner_id           UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	name               TEXT NOT NULL,
	description        TEXT NOT NULL DEFAULT '',
	capacity           INT NOT NULL DEFAULT 0,
	open_minute        INT NOT NULL DEFAULT 540,
	close_minute       INT NOT NULL DEFAULT 1080,
	slot_width_minutes INT NOT NULL DEFAULT 60,
	pricing            JSONB NOT NULL DEFAULT '{}'::jsonb,
	cover_path         TEXT,
	thumbnail_path     TEXT,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_venues_owner ON venues(owner_id);

CREATE TABLE IF NOT EXISTS bookings (
	id           UUID PRIMARY KEY,
	venue_id     UUID NOT NULL REFERENCES venues(id) ON DELETE CASCADE,
	user_id      UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	date         DATE NOT NULL,
	start_minute INT NOT NULL CHECK (start_minute >= 0),
	end_minute   INT NOT NULL CHECK (end_minute <= 1440 AND end_minute > start_minute),
	guest_count  INT NOT NULL DEFAULT 0,
	package_id   TEXT,
	add_on_ids   TEXT[] NOT NULL DEFAULT '{}',
	total_price  DOUBLE PRECISION NOT NULL DEFAULT 0,
	status       TEXT NOT NULL DEFAULT 'pending',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_bookings_venue_date ON bookings(venue_id, date);
CREATE INDEX IF NOT EXISTS idx_bookings_user ON bookings(user_id);

DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'bookings_no_overlap') THEN
		ALTER TABLE bookings ADD CONSTRAINT bookings_no_overlap
			EXCLUDE USING gist (venue_id WITH =, date WITH =, int4range(start_minute, end_minute) WITH &&)
			WHERE (status IN ('pending', 'confirmed'));
	END IF;
END
$$;
`

// Migrate applies the idempotent schema.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
