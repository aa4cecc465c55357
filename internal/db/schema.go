package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate applies the schema. Every statement is idempotent so both
// binaries can run it on startup without coordination.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			email       TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			role        TEXT NOT NULL DEFAULT 'user',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS bikeparts (
			id             UUID PRIMARY KEY,
			name           TEXT NOT NULL,
			description    TEXT NOT NULL DEFAULT '',
			price_cents    BIGINT NOT NULL,
			min_order_qty  INT NOT NULL DEFAULT 1,
			available_qty  INT NOT NULL DEFAULT 0,
			image_url      TEXT NOT NULL DEFAULT '',
			created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS products (
			id           UUID PRIMARY KEY,
			name         TEXT NOT NULL,
			price_cents  BIGINT NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_products_name ON products (name)`,

		`CREATE TABLE IF NOT EXISTS bookings (
			id                UUID PRIMARY KEY,
			part_id           UUID NOT NULL,
			part_name         TEXT NOT NULL,
			owner_email       TEXT NOT NULL,
			quantity          INT NOT NULL,
			unit_price_cents  BIGINT NOT NULL,
			phone             TEXT NOT NULL DEFAULT '',
			address           TEXT NOT NULL DEFAULT '',
			paid              BOOLEAN NOT NULL DEFAULT FALSE,
			transaction_id    TEXT,
			created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_owner_email ON bookings (owner_email)`,

		`CREATE TABLE IF NOT EXISTS payments (
			id              UUID PRIMARY KEY,
			booking_id      UUID NOT NULL REFERENCES bookings (id),
			transaction_id  TEXT NOT NULL,
			amount_cents    BIGINT NOT NULL,
			owner_email     TEXT NOT NULL,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_booking_id ON payments (booking_id)`,

		`CREATE TABLE IF NOT EXISTS jobs (
			id               UUID PRIMARY KEY,
			type             TEXT NOT NULL,
			payload          JSONB NOT NULL,
			status           TEXT NOT NULL DEFAULT 'pending',
			attempts         INT NOT NULL DEFAULT 0,
			max_attempts     INT NOT NULL DEFAULT 10,
			run_at           TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			locked_at        TIMESTAMPTZ,
			locked_by        TEXT,
			last_error       TEXT,
			idempotency_key  TEXT UNIQUE,
			created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_status_run_at ON jobs (status, run_at)`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}
