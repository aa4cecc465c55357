package postgres

import (
	"context"
	"errors"

	"github.com/davesbikeparts/partshub/internal/domain/booking"
	"github.com/davesbikeparts/partshub/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewBookingsRepo(pool *pgxpool.Pool, prom *observability.Prom) *BookingsRepo {
	return &BookingsRepo{pool: pool, prom: prom}
}

func (r *BookingsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *BookingsRepo) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

func (r *BookingsRepo) Create(ctx context.Context, req booking.CreateBookingRequest) (booking.Booking, error) {
	b := booking.NewFromCreateRequest(req)

	err := r.observe("bookings.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO bookings(id, part_id, part_name, owner_email, quantity, unit_price_cents, phone, address, paid, transaction_id, created_at, updated_at)
			 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
			b.ID, b.PartID, b.PartName, b.OwnerEmail, b.Quantity, b.UnitPriceCents, b.Phone, b.Address, b.Paid, b.TransactionID, b.CreatedAt, b.UpdatedAt)
		return err
	})

	if err != nil {
		return booking.Booking{}, err
	}

	return b, nil
}

// ListByOwner returns only the caller's bookings. The self-service check
// (token email == requested email) happens in the handler before this read.
func (r *BookingsRepo) ListByOwner(ctx context.Context, ownerEmail string) ([]booking.Booking, error) {
	var out []booking.Booking

	err := r.observe("bookings.list_by_owner", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT id, part_id, part_name, owner_email, quantity, unit_price_cents, phone, address, paid, transaction_id, created_at, updated_at
			 FROM bookings
			 WHERE owner_email = $1
			 ORDER BY created_at ASC, id ASC`,
			ownerEmail)

		if err != nil {
			return err
		}

		defer rows.Close()

		out = make([]booking.Booking, 0)

		for rows.Next() {
			var b booking.Booking

			err = rows.Scan(&b.ID, &b.PartID, &b.PartName, &b.OwnerEmail, &b.Quantity, &b.UnitPriceCents, &b.Phone, &b.Address, &b.Paid, &b.TransactionID, &b.CreatedAt, &b.UpdatedAt)

			if err != nil {
				return err
			}

			out = append(out, b)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *BookingsRepo) GetByID(ctx context.Context, id string) (booking.Booking, error) {
	var b booking.Booking

	err := r.observe("bookings.get_by_id", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id, part_id, part_name, owner_email, quantity, unit_price_cents, phone, address, paid, transaction_id, created_at, updated_at
			 FROM bookings
			 WHERE id = $1`,
			id,
		).Scan(&b.ID, &b.PartID, &b.PartName, &b.OwnerEmail, &b.Quantity, &b.UnitPriceCents, &b.Phone, &b.Address, &b.Paid, &b.TransactionID, &b.CreatedAt, &b.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return booking.Booking{}, booking.ErrNotFound
		}

		return booking.Booking{}, err
	}

	return b, nil
}

// MarkPaidTx flips paid and attaches the transaction reference inside the
// caller's transaction, alongside the payment append and the receipt-job
// enqueue. The paid = FALSE guard makes the patch idempotent-safe: a second
// completion for the same booking reports ErrAlreadyPaid.
func (r *BookingsRepo) MarkPaidTx(ctx context.Context, tx pgx.Tx, id string, transactionID string) (booking.Booking, error) {
	var b booking.Booking

	err := r.observe("bookings.mark_paid_tx", func() error {
		return tx.QueryRow(ctx,
			`UPDATE bookings
			 SET paid = TRUE,
			     transaction_id = $2,
			     updated_at = NOW()
			 WHERE id = $1 AND paid = FALSE
			 RETURNING id, part_id, part_name, owner_email, quantity, unit_price_cents, phone, address, paid, transaction_id, created_at, updated_at`,
			id, transactionID,
		).Scan(&b.ID, &b.PartID, &b.PartName, &b.OwnerEmail, &b.Quantity, &b.UnitPriceCents, &b.Phone, &b.Address, &b.Paid, &b.TransactionID, &b.CreatedAt, &b.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either absent or already paid; disambiguate for the handler.
			_, gerr := r.GetByID(ctx, id)

			if errors.Is(gerr, booking.ErrNotFound) {
				return booking.Booking{}, booking.ErrNotFound
			}

			return booking.Booking{}, booking.ErrAlreadyPaid
		}

		return booking.Booking{}, err
	}

	return b, nil
}
