package postgres

import (
	"context"

	"github.com/davesbikeparts/partshub/internal/domain/payment"
	"github.com/davesbikeparts/partshub/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PaymentsRepo is append-only: payments are written once at completion time
// and never updated or deleted.
type PaymentsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewPaymentsRepo(pool *pgxpool.Pool, prom *observability.Prom) *PaymentsRepo {
	return &PaymentsRepo{pool: pool, prom: prom}
}

func (r *PaymentsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *PaymentsRepo) CreateTx(ctx context.Context, tx pgx.Tx, req payment.CreatePaymentRequest) (payment.Payment, error) {
	p := payment.NewFromCreateRequest(req)

	err := r.observe("payments.create_tx", func() error {
		_, err := tx.Exec(ctx,
			`INSERT INTO payments(id, booking_id, transaction_id, amount_cents, owner_email, created_at)
			 VALUES($1,$2,$3,$4,$5,$6)`,
			p.ID, p.BookingID, p.TransactionID, p.AmountCents, p.OwnerEmail, p.CreatedAt)
		return err
	})

	if err != nil {
		return payment.Payment{}, err
	}

	return p, nil
}

func (r *PaymentsRepo) ListByBooking(ctx context.Context, bookingID string) ([]payment.Payment, error) {
	var out []payment.Payment

	err := r.observe("payments.list_by_booking", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT id, booking_id, transaction_id, amount_cents, owner_email, created_at
			 FROM payments
			 WHERE booking_id = $1
			 ORDER BY created_at ASC`,
			bookingID)

		if err != nil {
			return err
		}

		defer rows.Close()

		out = make([]payment.Payment, 0)

		for rows.Next() {
			var p payment.Payment

			err = rows.Scan(&p.ID, &p.BookingID, &p.TransactionID, &p.AmountCents, &p.OwnerEmail, &p.CreatedAt)

			if err != nil {
				return err
			}

			out = append(out, p)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}
