package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/davesbikeparts/partshub/internal/domain/user"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UsersRepo struct {
	pool *pgxpool.Pool
}

func NewUsersRepo(pool *pgxpool.Pool) *UsersRepo {
	return &UsersRepo{pool: pool}
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User

	err := r.pool.QueryRow(
		ctx,
		`SELECT email, name, role, created_at, updated_at
		 FROM users
		 WHERE email = $1`,
		email,
	).Scan(
		&u.Email,
		&u.Name,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}

		return user.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) List(ctx context.Context) ([]user.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT email, name, role, created_at, updated_at
		 FROM users
		 ORDER BY created_at ASC, email ASC`)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]user.User, 0)

	for rows.Next() {
		var u user.User

		err = rows.Scan(&u.Email, &u.Name, &u.Role, &u.CreatedAt, &u.UpdatedAt)

		if err != nil {
			return nil, err
		}

		out = append(out, u)
	}

	err = rows.Err()

	if err != nil {
		return nil, err
	}

	return out, nil
}

// Upsert creates or updates the profile keyed by email. The role is only
// set on first insert; an upsert never changes an existing role (promotion
// is a separate operation).
func (r *UsersRepo) Upsert(ctx context.Context, email string, req user.UpsertUserRequest) (user.User, error) {
	now := time.Now().UTC()

	var u user.User

	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (email, name, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (email) DO UPDATE
		 SET name = EXCLUDED.name,
		     updated_at = EXCLUDED.updated_at
		 RETURNING email, name, role, created_at, updated_at`,
		email, req.Name, user.RoleUser, now, now,
	).Scan(&u.Email, &u.Name, &u.Role, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) PromoteToAdmin(ctx context.Context, email string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users
		 SET role = $2,
		     updated_at = NOW()
		 WHERE email = $1`,
		email, user.RoleAdmin)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}
