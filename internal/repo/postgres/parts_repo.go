package postgres

import (
	"context"

	"github.com/davesbikeparts/partshub/internal/domain/part"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PartsRepo struct {
	pool *pgxpool.Pool
}

func NewPartsRepo(pool *pgxpool.Pool) *PartsRepo {
	return &PartsRepo{pool: pool}
}

func (r *PartsRepo) Create(ctx context.Context, req part.CreatePartRequest) (part.Part, error) {
	p := part.NewFromCreateRequest(req)

	_, err := r.pool.Exec(ctx,
		`INSERT INTO bikeparts(id, name, description, price_cents, min_order_qty, available_qty, image_url, created_at, updated_at)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		p.ID, p.Name, p.Description, p.PriceCents, p.MinOrderQty, p.AvailableQty, p.ImageURL, p.CreatedAt, p.UpdatedAt)

	if err != nil {
		return part.Part{}, err
	}

	return p, nil
}

// List returns the full catalog. No pagination: full-table-scan semantics
// are accepted at this scale.
func (r *PartsRepo) List(ctx context.Context) ([]part.Part, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, description, price_cents, min_order_qty, available_qty, image_url, created_at, updated_at
		 FROM bikeparts
		 ORDER BY created_at ASC, id ASC`)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]part.Part, 0)

	for rows.Next() {
		var p part.Part

		err = rows.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.MinOrderQty, &p.AvailableQty, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)

		if err != nil {
			return nil, err
		}

		out = append(out, p)
	}

	err = rows.Err()

	if err != nil {
		return nil, err
	}

	return out, nil
}
