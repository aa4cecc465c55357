package postgres

import (
	"context"

	"github.com/davesbikeparts/partshub/internal/domain/product"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductsRepo struct {
	pool *pgxpool.Pool
}

func NewProductsRepo(pool *pgxpool.Pool) *ProductsRepo {
	return &ProductsRepo{pool: pool}
}

func (r *ProductsRepo) Create(ctx context.Context, req product.CreateProductRequest) (product.Product, error) {
	p := product.NewFromCreateRequest(req)

	_, err := r.pool.Exec(ctx,
		`INSERT INTO products(id, name, price_cents, created_at) VALUES($1,$2,$3,$4)`,
		p.ID, p.Name, p.PriceCents, p.CreatedAt)

	if err != nil {
		return product.Product{}, err
	}

	return p, nil
}

func (r *ProductsRepo) List(ctx context.Context) ([]product.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, price_cents, created_at
		 FROM products
		 ORDER BY created_at ASC, id ASC`)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]product.Product, 0)

	for rows.Next() {
		var p product.Product

		err = rows.Scan(&p.ID, &p.Name, &p.PriceCents, &p.CreatedAt)

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

// DeleteByName removes every product carrying the given name and reports
// how many rows went away. Name is not unique, so this can delete more
// than one row.
func (r *ProductsRepo) DeleteByName(ctx context.Context, name string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE name = $1`, name)

	if err != nil {
		return 0, err
	}

	if tag.RowsAffected() == 0 {
		return 0, product.ErrNotFound
	}

	return tag.RowsAffected(), nil
}
